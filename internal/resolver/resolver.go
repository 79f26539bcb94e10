package resolver

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rafflehouse/artcli/internal/artcache"
	"github.com/rafflehouse/artcli/internal/gateway"
	"github.com/rafflehouse/artcli/internal/hashreg"
	"github.com/rafflehouse/artcli/internal/metadata"
	"github.com/rafflehouse/artcli/internal/nft"
	"github.com/rafflehouse/artcli/internal/variant"
)

// ErrNotAvailable marks a prize that is not eligible or not yet revealed.
// Callers suppress the artwork silently — this is not an error state.
var ErrNotAvailable = errors.New("artwork not available")

// CollectionReader is the on-chain read surface the resolver consumes.
// Implemented by nft.Reader; tests substitute fakes. Every method may fail
// individually, which the resolver treats as "value absent".
type CollectionReader interface {
	TokenURI(ctx context.Context, id *big.Int) (string, error)
	URI(ctx context.Context, id *big.Int) (string, error)
	UnrevealedBaseURI(ctx context.Context) (string, error)
	UnrevealedURI(ctx context.Context) (string, error)
	UnrevealedURIHash(ctx context.Context) (string, error)
	IsRevealed(ctx context.Context) (bool, error)
}

// HashRegistry resolves raw 32-byte hashes to URIs. Implemented by
// hashreg.Client.
type HashRegistry interface {
	Resolve(ctx context.Context, hashOrURI, lookupContext string) (string, error)
}

// ArtworkCache supplies pre-resolved artwork hints. Implemented by
// artcache.Client. May be nil (no backend configured).
type ArtworkCache interface {
	Lookup(ctx context.Context, collection common.Address, tokenID *big.Int) (*artcache.Hint, error)
}

// Resolver turns a PrizeReference into displayable image candidates:
// base-URI decision tree → variant construction → gateway expansion →
// fetch cascade.
type Resolver struct {
	Readers        func(common.Address) CollectionReader
	Registry       HashRegistry
	Cache          ArtworkCache
	Gateways       gateway.Set
	FastTimeout    time.Duration // mintable ERC-721: metadata on controlled hosting
	SlowTimeout    time.Duration // escrowed / ERC-1155: third-party hosting likely
	PrioritizeRoot bool
}

// Resolve runs the whole pipeline for one prize reference. Returns
// ErrNotAvailable when the prize should render nothing, metadata.ErrNoMetadata
// when every candidate was exhausted, and a populated result otherwise.
func (r *Resolver) Resolve(ctx context.Context, ref nft.PrizeReference) (*metadata.Result, error) {
	if !ref.ShouldFetch() {
		return nil, ErrNotAvailable
	}

	baseURI, err := r.BaseURI(ctx, ref)
	if err != nil {
		return nil, err
	}

	variants := variant.Build(baseURI, ref.TokenID, ref.Standard, r.PrioritizeRoot)
	if len(variants) == 0 {
		return nil, ErrNotAvailable
	}

	candidates := r.expandAll(variants)

	cascade := metadata.NewCascade(r.Gateways)
	return cascade.Resolve(ctx, candidates, r.timeoutFor(ref))
}

// BaseURI decides which base URI feeds the variant constructor. The backend
// hint wins when present (no RPC round-trips); otherwise a small ordered
// sequence of on-chain reads runs, branched on standard and mint type.
func (r *Resolver) BaseURI(ctx context.Context, ref nft.PrizeReference) (string, error) {
	if hint := r.lookupHint(ctx, ref); hint != "" {
		return hint, nil
	}

	reader := r.Readers(ref.Collection)

	var value string
	switch {
	case ref.Standard == nft.ERC721 && !ref.Escrowed:
		value = r.mintable721(ctx, reader)
	case ref.Standard == nft.ERC721:
		value, _ = reader.TokenURI(ctx, ref.TokenID)
	case ref.Standard == nft.ERC1155 && !ref.Escrowed:
		value = r.mintable1155(ctx, reader, ref.TokenID)
	default: // ERC-1155 escrowed
		value, _ = reader.URI(ctx, ref.TokenID)
	}

	if value == "" {
		return "", ErrNotAvailable
	}

	// A raw 32-byte hash is not a URI yet — indirect through the registry.
	if hashreg.IsHash(value) {
		resolved, err := r.Registry.Resolve(ctx, value, strings.ToLower(ref.Collection.Hex()))
		if err != nil || resolved == "" {
			return "", ErrNotAvailable
		}
		return resolved, nil
	}

	return value, nil
}

// lookupHint consults the backend cache and returns the first usable URI by
// priority drop > unrevealed > base. Raw hashes are skipped — the hint must
// save work, not add a registry round-trip.
func (r *Resolver) lookupHint(ctx context.Context, ref nft.PrizeReference) string {
	if r.Cache == nil {
		return ""
	}
	hint, err := r.Cache.Lookup(ctx, ref.Collection, ref.TokenID)
	if err != nil || hint == nil {
		return ""
	}
	for _, v := range []string{hint.DropURI, hint.UnrevealedURI, hint.BaseURI} {
		if v != "" && !hashreg.IsHash(v) {
			return v
		}
	}
	return ""
}

// mintable721 reads the collection's unrevealed base URI. Empty means the
// prize is defined as not yet revealed; the registry hash is the last
// resort before giving up.
func (r *Resolver) mintable721(ctx context.Context, reader CollectionReader) string {
	if uri, err := reader.UnrevealedBaseURI(ctx); err == nil && uri != "" {
		return uri
	}
	hash, err := reader.UnrevealedURIHash(ctx)
	if err != nil {
		return ""
	}
	return hash
}

// mintable1155 reads the reveal flag plus all three URI sources concurrently
// (independent lookups, no ordering dependency) and then applies the
// preference order for the reveal tri-state:
//
//	revealed true:    tokenURI > unrevealedURI > uri(id)
//	revealed false:   unrevealedURI > tokenURI > uri(id)
//	revealed unknown: tokenURI > unrevealedURI > uri(id)
//
// Unknown is treated like revealed: a collection without isRevealed() is
// almost always a live static set, and preferring the per-token URI avoids
// showing a placeholder for it.
func (r *Resolver) mintable1155(ctx context.Context, reader CollectionReader, tokenID *big.Int) string {
	var (
		wg            sync.WaitGroup
		revealed      bool
		revealKnown   bool
		tokenURI      string
		unrevealedURI string
		genericURI    string
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		v, err := reader.IsRevealed(ctx)
		if err == nil {
			revealed, revealKnown = v, true
		}
	}()
	go func() {
		defer wg.Done()
		tokenURI, _ = reader.TokenURI(ctx, tokenID)
	}()
	go func() {
		defer wg.Done()
		unrevealedURI, _ = reader.UnrevealedURI(ctx)
	}()
	go func() {
		defer wg.Done()
		genericURI, _ = reader.URI(ctx, tokenID)
	}()
	wg.Wait()

	order := []string{tokenURI, unrevealedURI, genericURI}
	if revealKnown && !revealed {
		order = []string{unrevealedURI, tokenURI, genericURI}
	}
	for _, v := range order {
		if v != "" {
			return v
		}
	}
	return ""
}

// expandAll runs every variant through the gateway expander, flattening into
// one ordered candidate list and dropping duplicate URLs.
func (r *Resolver) expandAll(variants []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range variants {
		for _, u := range r.Gateways.Expand(v) {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}

func (r *Resolver) timeoutFor(ref nft.PrizeReference) time.Duration {
	if ref.Standard == nft.ERC721 && !ref.Escrowed {
		if r.FastTimeout > 0 {
			return r.FastTimeout
		}
		return 5 * time.Second
	}
	if r.SlowTimeout > 0 {
		return r.SlowTimeout
	}
	return 10 * time.Second
}
