package variant

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/rafflehouse/artcli/internal/nft"
)

// terminalSegment matches a base URI that already ends in a token-id-shaped
// segment: decimal digits or a 64-hex-char id, optionally ".json"-suffixed.
var terminalSegment = regexp.MustCompile(`(?:^|/)([0-9]+|[0-9a-fA-F]{64})(\.json)?$`)

// Build produces the ordered, de-duplicated list of every plausible location
// of a token's JSON metadata, given the base URI a contract call returned.
// The order encodes priority (more specific locations first) and is
// deterministic: identical inputs always yield the identical sequence.
//
// prioritizeRoot moves the root-level candidates (index.json/metadata.json
// next to a terminal id segment) ahead of the literal URI, which some
// ERC-721 drops need.
func Build(baseURI string, tokenID *big.Int, standard nft.Standard, prioritizeRoot bool) []string {
	if baseURI == "" {
		return nil
	}
	if tokenID == nil {
		tokenID = new(big.Int)
	}

	dec := tokenID.String()
	// The token id as an unsigned big integer, zero-padded to 32 bytes,
	// per the ERC-1155 metadata convention.
	hexLower := fmt.Sprintf("%064x", tokenID)
	hexUpper := strings.ToUpper(hexLower)

	b := newBuilder()

	if loc := terminalSegment.FindStringIndex(baseURI); loc != nil {
		buildTerminal(b, baseURI, baseURI[:loc[0]], dec, hexLower, hexUpper, standard, prioritizeRoot)
	} else {
		buildAppended(b, baseURI, dec, hexLower, hexUpper, standard)
	}

	if strings.Contains(baseURI, "{id}") {
		for _, form := range []string{dec, hexLower, hexUpper} {
			b.add(strings.ReplaceAll(baseURI, "{id}", form))
		}
	}

	return b.out
}

// buildTerminal handles base URIs that already name a specific token.
func buildTerminal(b *builder, baseURI, root, dec, hexLower, hexUpper string, standard nft.Standard, prioritizeRoot bool) {
	rootFirst := standard == nft.ERC1155 || prioritizeRoot
	if rootFirst {
		addRootCandidates(b, root)
	}

	b.add(baseURI)
	if !strings.HasSuffix(baseURI, ".json") {
		b.add(baseURI + ".json")
	}

	if !rootFirst {
		addRootCandidates(b, root)
	}

	if standard == nft.ERC1155 {
		// Some 1155 hosts key files by the zero-padded hex id even when the
		// contract reports a decimal path. Substitute at every id-shaped
		// segment, mid-path or trailing.
		for _, form := range []string{hexLower, hexUpper} {
			v := replaceIDSegments(baseURI, dec, form)
			bare := strings.TrimSuffix(v, ".json")
			b.add(bare)
			b.add(bare + ".json")
		}
	}
}

// buildAppended handles base URIs that still need the token id appended.
func buildAppended(b *builder, baseURI, dec, hexLower, hexUpper string, standard nft.Standard) {
	b.add(baseURI)
	base := strings.TrimSuffix(baseURI, "/")
	b.add(base)

	b.add(base + ".json")
	b.add(base + "/index.json")
	b.add(base + "/metadata.json")

	idForms := []string{dec}
	if standard == nft.ERC1155 {
		idForms = []string{dec, hexLower, hexUpper}
	}

	for _, sep := range []string{"/", ""} {
		for _, form := range idForms {
			c := base + sep + form
			b.add(c)
			b.add(c + ".json")
		}
	}
}

// addRootCandidates emits the directory-level metadata locations next to a
// stripped id segment.
func addRootCandidates(b *builder, root string) {
	root = strings.TrimSuffix(root, "/")
	if root == "" {
		return
	}
	b.add(root)
	b.add(root + "/")
	b.add(root + "/index.json")
	b.add(root + "/metadata.json")
}

// replaceIDSegments swaps every path segment equal to the decimal id (with
// or without a .json suffix) for the replacement form.
func replaceIDSegments(uri, dec, repl string) string {
	parts := strings.Split(uri, "/")
	for i, p := range parts {
		switch p {
		case dec:
			parts[i] = repl
		case dec + ".json":
			parts[i] = repl + ".json"
		}
	}
	return strings.Join(parts, "/")
}

// builder accumulates candidates, de-duplicating while preserving
// first-occurrence order.
type builder struct {
	out  []string
	seen map[string]struct{}
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]struct{})}
}

func (b *builder) add(s string) {
	if s == "" {
		return
	}
	if _, ok := b.seen[s]; ok {
		return
	}
	b.seen[s] = struct{}{}
	b.out = append(b.out, s)
}
