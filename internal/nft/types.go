package nft

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Standard identifies the token standard of a prize collection.
type Standard string

const (
	ERC721  Standard = "erc721"
	ERC1155 Standard = "erc1155"
)

// ERC-165 interface ids, used for best-effort standard detection.
const (
	InterfaceERC721  = "80ac58cd"
	InterfaceERC1155 = "d9b67a26"
)

// ParseStandard parses a user-supplied standard string ("721", "erc1155", ...).
func ParseStandard(s string) (Standard, error) {
	switch s {
	case "721", "erc721", "ERC721", "erc-721":
		return ERC721, nil
	case "1155", "erc1155", "ERC1155", "erc-1155":
		return ERC1155, nil
	}
	return "", fmt.Errorf("unknown token standard %q (want 721 or 1155)", s)
}

// PrizeReference identifies what artwork to resolve. Immutable per request.
type PrizeReference struct {
	Collection common.Address
	TokenID    *big.Int
	Standard   Standard
	Escrowed   bool // a pre-existing token held by the pool, vs. freshly mintable
}

// Key is the identity under which a prize's resolution result is cached.
// Escrowed is deliberately excluded: the escrow flag can flip from unrelated
// real-time updates and must not invalidate an already-resolved artwork.
type Key struct {
	Collection common.Address
	TokenID    string
	Standard   Standard
}

// Key returns the cache identity for this reference.
func (r PrizeReference) Key() Key {
	id := ""
	if r.TokenID != nil {
		id = r.TokenID.String()
	}
	return Key{Collection: r.Collection, TokenID: id, Standard: r.Standard}
}

// ShouldFetch reports whether this reference is resolvable at all.
// A zero collection address or unknown standard renders nothing — not an error.
func (r PrizeReference) ShouldFetch() bool {
	if r.Collection == (common.Address{}) {
		return false
	}
	if r.Standard != ERC721 && r.Standard != ERC1155 {
		return false
	}
	return r.TokenID != nil && r.TokenID.Sign() >= 0
}
