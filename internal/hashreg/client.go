package hashreg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IsHash reports whether a value is a raw 32-byte hash rather than a URI:
// exactly 64 hex characters, optionally 0x-prefixed.
func IsHash(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// Client resolves raw content hashes to URIs through the external
// hash-registry service. The service is an opaque collaborator; only its
// input/output contract matters here.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a registry client. baseURL may be empty, in which case
// every lookup misses.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Resolve maps a hash (or passes through an already-resolved URI) to a URI
// string. A miss returns "" with no error; lookupContext tells the registry
// which collection family the hash belongs to.
func (c *Client) Resolve(ctx context.Context, hashOrURI, lookupContext string) (string, error) {
	if !IsHash(hashOrURI) {
		return hashOrURI, nil
	}
	if c.baseURL == "" {
		return "", nil
	}

	q := url.Values{}
	q.Set("value", strings.TrimPrefix(hashOrURI, "0x"))
	if lookupContext != "" {
		q.Set("context", lookupContext)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/resolve?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("registry lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry lookup: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading registry response: %w", err)
	}

	var out struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parsing registry response: %w", err)
	}
	return out.URI, nil
}
