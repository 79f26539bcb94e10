package artcache

import (
	"context"
	"io"
	"math/big"
	"net/http"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// fixedTransport: replaces the HTTP client without needing a real server.
// ---------------------------------------------------------------------------

type fixedTransport struct {
	body string
	code int
	err  error

	lastReq *http.Request
}

func (ft *fixedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ft.lastReq = req
	if ft.err != nil {
		return nil, ft.err
	}
	return &http.Response{
		StatusCode: ft.code,
		Body:       io.NopCloser(strings.NewReader(ft.body)),
		Header:     make(http.Header),
	}, nil
}

func newMockClient(body string, code int) (*Client, *fixedTransport) {
	ft := &fixedTransport{body: body, code: code}
	c := NewClient("https://cache.test/api", "tok123")
	c.client = &http.Client{Transport: ft}
	return c, ft
}

func testCollection() common.Address {
	return common.HexToAddress("0xAbCdEF0000000000000000000000000000000001")
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestLookupHit(t *testing.T) {
	c, ft := newMockClient(`{"drop_uri":"https://cdn.test/drop/","base_uri":"ipfs://QmBase/"}`, http.StatusOK)

	h, err := c.Lookup(context.Background(), testCollection(), big.NewInt(42))
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "https://cdn.test/drop/", h.DropURI)
	assert.Equal(t, "ipfs://QmBase/", h.BaseURI)
	assert.Empty(t, h.UnrevealedURI)

	// Collection addresses are lowercased in the path.
	assert.Equal(t,
		"/api/collections/0xabcdef0000000000000000000000000000000001/tokens/42/artwork",
		ft.lastReq.URL.Path)
	assert.Equal(t, "Bearer tok123", ft.lastReq.Header.Get("Authorization"))
}

func TestLookupMiss(t *testing.T) {
	c, _ := newMockClient("", http.StatusNotFound)

	h, err := c.Lookup(context.Background(), testCollection(), big.NewInt(1))
	require.NoError(t, err, "cache misses are expected, not errors")
	assert.Nil(t, h)
}

func TestLookupAllEmptyFieldsIsMiss(t *testing.T) {
	c, _ := newMockClient(`{"drop_uri":"","unrevealed_uri":"","base_uri":""}`, http.StatusOK)

	h, err := c.Lookup(context.Background(), testCollection(), big.NewInt(1))
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestLookupUnconfigured(t *testing.T) {
	c := NewClient("", "")

	h, err := c.Lookup(context.Background(), testCollection(), big.NewInt(1))
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestLookupNoTokenNoAuthHeader(t *testing.T) {
	ft := &fixedTransport{body: `{"base_uri":"x"}`, code: http.StatusOK}
	c := NewClient("https://cache.test", "")
	c.client = &http.Client{Transport: ft}

	_, err := c.Lookup(context.Background(), testCollection(), big.NewInt(1))
	require.NoError(t, err)
	assert.Empty(t, ft.lastReq.Header.Get("Authorization"))
}

func TestLookupServerError(t *testing.T) {
	c, _ := newMockClient("oops", http.StatusInternalServerError)

	_, err := c.Lookup(context.Background(), testCollection(), big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLookupNilTokenID(t *testing.T) {
	c, ft := newMockClient(`{"base_uri":"x"}`, http.StatusOK)

	_, err := c.Lookup(context.Background(), testCollection(), nil)
	require.NoError(t, err)
	assert.Contains(t, ft.lastReq.URL.Path, "/tokens/0/artwork")
}

// ---------------------------------------------------------------------------
// Hint priority
// ---------------------------------------------------------------------------

func TestHintEmpty(t *testing.T) {
	assert.True(t, (*Hint)(nil).Empty())
	assert.True(t, (&Hint{}).Empty())
	assert.False(t, (&Hint{BaseURI: "x"}).Empty())
}
