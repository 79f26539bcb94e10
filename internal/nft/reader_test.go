package nft

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehouse/artcli/internal/chain"
)

// encodeStringResult ABI-encodes s the way eth_call returns a string:
// offset word, length word, then the right-padded data.
func encodeStringResult(s string) string {
	data := fmt.Sprintf("%x", s)
	if pad := len(data) % 64; pad != 0 {
		data += strings.Repeat("0", 64-pad)
	}
	return fmt.Sprintf("0x%064x%064x%s", 0x20, len(s), data)
}

// selectorServer routes eth_call requests by calldata prefix to canned
// results. Unknown selectors get a revert-style RPC error.
func selectorServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
			ID     int               `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "eth_call", req.Method)

		var callObj struct {
			To   string `json:"to"`
			Data string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(req.Params[0], &callObj))

		for prefix, result := range results {
			if strings.HasPrefix(callObj.Data, prefix) {
				fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%q}`, req.ID, result)
				return
			}
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":3,"message":"execution reverted"}}`, req.ID)
	}))
}

func testCollection() common.Address {
	return common.HexToAddress("0x00000000000000000000000000000000000000AA")
}

// ---------------------------------------------------------------------------
// Selector derivation
// ---------------------------------------------------------------------------

func TestSelectorKnownSignatures(t *testing.T) {
	assert.Equal(t, "0xc87b56dd", Selector("tokenURI(uint256)"))
	assert.Equal(t, "0x0e89341c", Selector("uri(uint256)"))
	assert.Equal(t, "0x01ffc9a7", Selector("supportsInterface(bytes4)"))
	assert.Equal(t, "0x06fdde03", Selector("name()"))
}

// ---------------------------------------------------------------------------
// String reads
// ---------------------------------------------------------------------------

func TestReaderTokenURI(t *testing.T) {
	srv := selectorServer(t, map[string]string{
		selTokenURI: encodeStringResult("ipfs://QmHash/42.json"),
	})
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.TokenURI(context.Background(), big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmHash/42.json", got)
}

func TestReaderTokenURIEncodesID(t *testing.T) {
	want := selTokenURI + fmt.Sprintf("%064x", 42)

	var gotData string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params []json.RawMessage `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		var callObj struct {
			Data string `json:"data"`
		}
		json.Unmarshal(req.Params[0], &callObj)
		gotData = callObj.Data
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":%q}`, encodeStringResult("x"))
	}))
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	_, err := r.TokenURI(context.Background(), big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, want, gotData)
}

func TestReaderURIRevertSurfacesError(t *testing.T) {
	srv := selectorServer(t, nil) // everything reverts
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	_, err := r.URI(context.Background(), big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution reverted")
}

func TestReaderUnrevealedBaseURI(t *testing.T) {
	srv := selectorServer(t, map[string]string{
		selUnrevealedBaseURI: encodeStringResult("https://cdn.test/drop/"),
	})
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.UnrevealedBaseURI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/drop/", got)
}

func TestReaderName(t *testing.T) {
	srv := selectorServer(t, map[string]string{
		selName: encodeStringResult("Raffle Prizes"),
	})
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.Name(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Raffle Prizes", got)
}

// ---------------------------------------------------------------------------
// Bool / bytes32 / address reads
// ---------------------------------------------------------------------------

func TestReaderIsRevealed(t *testing.T) {
	srv := selectorServer(t, map[string]string{
		selIsRevealed: "0x" + strings.Repeat("0", 63) + "1",
	})
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.IsRevealed(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestReaderUnrevealedURIHash(t *testing.T) {
	hash := "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	srv := selectorServer(t, map[string]string{
		selUnrevealedURIHash: "0x" + hash,
	})
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.UnrevealedURIHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash, got)
}

func TestReaderUnrevealedURIHashZeroWordIsEmpty(t *testing.T) {
	srv := selectorServer(t, map[string]string{
		selUnrevealedURIHash: "0x" + strings.Repeat("0", 64),
	})
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.UnrevealedURIHash(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got, "all-zero word means the hash is unset")
}

func TestReaderSupportsInterface(t *testing.T) {
	var gotData string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params []json.RawMessage `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		var callObj struct {
			Data string `json:"data"`
		}
		json.Unmarshal(req.Params[0], &callObj)
		gotData = callObj.Data
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%s1"}`, strings.Repeat("0", 63))
	}))
	defer srv.Close()

	r := NewReader(chain.NewEVMClient(srv.URL), testCollection())
	got, err := r.SupportsInterface(context.Background(), InterfaceERC721)
	require.NoError(t, err)
	assert.True(t, got)

	// bytes4 arg is right-padded to a full word.
	assert.Equal(t, selSupportsInterface+InterfaceERC721+strings.Repeat("0", 56), gotData)
	assert.Len(t, strings.TrimPrefix(gotData, "0x"), 8+64)
}

func TestReaderSupportsInterfaceRejectsBadID(t *testing.T) {
	r := NewReader(chain.NewEVMClient("http://127.0.0.1:19993"), testCollection())
	_, err := r.SupportsInterface(context.Background(), "0x1234")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// ABI decode helpers
// ---------------------------------------------------------------------------

func TestDecodeStringEmpty(t *testing.T) {
	assert.Empty(t, decodeString(encodeStringResult("")))
	assert.Empty(t, decodeString("0x"))
	assert.Empty(t, decodeString(""))
}

func TestDecodeStringUnpadded(t *testing.T) {
	// 31-char string, data padded to one word.
	s := strings.Repeat("a", 31)
	assert.Equal(t, s, decodeString(encodeStringResult(s)))
}

func TestEncodeUint256(t *testing.T) {
	assert.Equal(t, strings.Repeat("0", 63)+"0", encodeUint256(nil))
	assert.Equal(t, strings.Repeat("0", 62)+"2a", encodeUint256(big.NewInt(42)))
	assert.Len(t, encodeUint256(big.NewInt(1)), 64)
}

func TestDecodeAddress(t *testing.T) {
	word := strings.Repeat("0", 24) + "00000000000000000000000000000000000000aa"
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", decodeAddress("0x"+word))
	assert.Empty(t, decodeAddress("0x"+strings.Repeat("0", 64)))
}
