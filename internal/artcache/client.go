package artcache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Hint is the pre-resolved artwork record the backend cache keeps per
// collection/token. Any field may be empty. Priority when consuming:
// DropURI > UnrevealedURI > BaseURI.
type Hint struct {
	DropURI       string `json:"drop_uri"`
	UnrevealedURI string `json:"unrevealed_uri"`
	BaseURI       string `json:"base_uri"`
}

// Empty reports whether the hint carries no usable value at all.
func (h *Hint) Empty() bool {
	return h == nil || (h.DropURI == "" && h.UnrevealedURI == "" && h.BaseURI == "")
}

// Client reads the backend artwork cache. A configured cache lets the
// resolver skip all RPC round-trips for known collections.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a cache client. baseURL may be empty — every lookup
// then misses, which the resolver treats as "no hint", not an error.
// token is the optional bearer credential from the keystore.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup fetches the cached artwork hint for one token. A 404 (or an
// unconfigured client) returns (nil, nil): cache misses are expected and
// never abort resolution.
func (c *Client) Lookup(ctx context.Context, collection common.Address, tokenID *big.Int) (*Hint, error) {
	if c.baseURL == "" {
		return nil, nil
	}
	if tokenID == nil {
		tokenID = new(big.Int)
	}

	u := fmt.Sprintf("%s/collections/%s/tokens/%s/artwork",
		c.baseURL, strings.ToLower(collection.Hex()), tokenID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cache lookup: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading cache response: %w", err)
	}

	var h Hint
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("parsing cache response: %w", err)
	}
	if h.Empty() {
		return nil, nil
	}
	return &h, nil
}
