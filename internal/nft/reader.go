package nft

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/rafflehouse/artcli/internal/chain"
)

// Function selectors for the standard ERC-721/1155 read surface.
const (
	selName              = "0x06fdde03" // name()
	selSymbol            = "0x95d89b41" // symbol()
	selOwner             = "0x8da5cb5b" // owner()
	selTokenURI          = "0xc87b56dd" // tokenURI(uint256)
	selURI               = "0x0e89341c" // uri(uint256)
	selSupportsInterface = "0x01ffc9a7" // supportsInterface(bytes4)
)

// Selectors for the raffle-pool collection extensions, derived from their
// signatures at startup.
var (
	selUnrevealedBaseURI = Selector("unrevealedBaseURI()")
	selUnrevealedURI     = Selector("unrevealedURI()")
	selIsRevealed        = Selector("isRevealed()")
	selUnrevealedURIHash = Selector("unrevealedURIHash()")
)

// Reader issues read-only calls against one prize collection contract.
// Every method treats a failed or reverting call as "value absent": callers
// get the zero value plus the error and decide whether absence is fatal.
type Reader struct {
	client *chain.EVMClient
	addr   string
}

// NewReader binds a Reader to a collection address.
func NewReader(client *chain.EVMClient, collection common.Address) *Reader {
	return &Reader{client: client, addr: collection.Hex()}
}

// Selector computes the 4-byte selector for a Solidity function signature.
func Selector(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	sum := h.Sum(nil)
	return "0x" + fmt.Sprintf("%x", sum[:4])
}

// Name returns the collection name().
func (r *Reader) Name(ctx context.Context) (string, error) {
	return r.callString(ctx, selName)
}

// Symbol returns the collection symbol().
func (r *Reader) Symbol(ctx context.Context) (string, error) {
	return r.callString(ctx, selSymbol)
}

// Owner returns the collection owner() address.
func (r *Reader) Owner(ctx context.Context) (string, error) {
	result, err := r.client.CallContract(ctx, r.addr, selOwner)
	if err != nil {
		return "", err
	}
	return decodeAddress(result), nil
}

// TokenURI returns tokenURI(id) for an ERC-721 token.
func (r *Reader) TokenURI(ctx context.Context, id *big.Int) (string, error) {
	return r.callString(ctx, selTokenURI+encodeUint256(id))
}

// URI returns uri(id) for an ERC-1155 token.
func (r *Reader) URI(ctx context.Context, id *big.Int) (string, error) {
	return r.callString(ctx, selURI+encodeUint256(id))
}

// UnrevealedBaseURI returns the collection-level unrevealed base URI.
func (r *Reader) UnrevealedBaseURI(ctx context.Context) (string, error) {
	return r.callString(ctx, selUnrevealedBaseURI)
}

// UnrevealedURI returns the collection-level unrevealed URI.
func (r *Reader) UnrevealedURI(ctx context.Context) (string, error) {
	return r.callString(ctx, selUnrevealedURI)
}

// UnrevealedURIHash returns the registry hash behind the unrevealed URI,
// as a bare 64-hex-char string (no 0x prefix). Empty when unset.
func (r *Reader) UnrevealedURIHash(ctx context.Context) (string, error) {
	result, err := r.client.CallContract(ctx, r.addr, selUnrevealedURIHash)
	if err != nil {
		return "", err
	}
	return decodeBytes32(result), nil
}

// IsRevealed returns the collection's reveal flag. Collections that do not
// implement isRevealed() revert, which surfaces here as an error — callers
// treat that as "reveal status unknown".
func (r *Reader) IsRevealed(ctx context.Context) (bool, error) {
	result, err := r.client.CallContract(ctx, r.addr, selIsRevealed)
	if err != nil {
		return false, err
	}
	return decodeBool(result)
}

// SupportsInterface probes ERC-165 support for a 4-byte interface id
// (hex, no 0x prefix).
func (r *Reader) SupportsInterface(ctx context.Context, interfaceID string) (bool, error) {
	id := strings.TrimPrefix(interfaceID, "0x")
	if len(id) != 8 {
		return false, fmt.Errorf("invalid interface id %q", interfaceID)
	}
	// bytes4 is right-padded with zeros to a 32-byte word.
	calldata := selSupportsInterface + id + strings.Repeat("0", 56)
	result, err := r.client.CallContract(ctx, r.addr, calldata)
	if err != nil {
		return false, err
	}
	return decodeBool(result)
}

func (r *Reader) callString(ctx context.Context, calldata string) (string, error) {
	result, err := r.client.CallContract(ctx, r.addr, calldata)
	if err != nil {
		return "", err
	}
	return decodeString(result), nil
}

// encodeUint256 encodes an unsigned big integer as a 32-byte hex word.
func encodeUint256(n *big.Int) string {
	if n == nil {
		n = new(big.Int)
	}
	return fmt.Sprintf("%064x", n)
}

// decodeString decodes an ABI-encoded string return value.
func decodeString(hexResult string) string {
	clean := strings.TrimPrefix(hexResult, "0x")
	if len(clean) < 128 { // offset (64) + length (64) minimum
		return ""
	}

	// First word is the offset to the string data, second word its length.
	length := 0
	for _, c := range clean[64:128] {
		length = length*16 + hexDigit(byte(c))
	}
	if length == 0 {
		return ""
	}

	dataStart := 128
	dataEnd := dataStart + length*2
	if dataEnd > len(clean) {
		dataEnd = len(clean)
	}

	result := make([]byte, 0, length)
	for i := dataStart; i+1 < dataEnd; i += 2 {
		b := byte(hexDigit(clean[i])<<4 | hexDigit(clean[i+1]))
		result = append(result, b)
	}
	return string(result)
}

// decodeBool decodes an ABI-encoded bool return value.
func decodeBool(hexResult string) (bool, error) {
	clean := strings.TrimPrefix(hexResult, "0x")
	if len(clean) < 64 {
		return false, fmt.Errorf("short bool result")
	}
	return clean[63] == '1', nil
}

// decodeBytes32 extracts a 32-byte word as a bare hex string. All-zero
// words decode to "" (unset).
func decodeBytes32(hexResult string) string {
	clean := strings.TrimPrefix(hexResult, "0x")
	if len(clean) < 64 {
		return ""
	}
	word := clean[:64]
	if strings.Trim(word, "0") == "" {
		return ""
	}
	return word
}

// decodeAddress extracts a 20-byte address from a 32-byte ABI-encoded word.
func decodeAddress(hexResult string) string {
	clean := strings.TrimPrefix(hexResult, "0x")
	if len(clean) < 64 {
		return ""
	}
	addr := clean[24:64]
	if strings.Trim(addr, "0") == "" {
		return ""
	}
	return "0x" + addr
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return 0
	}
}
