package gateway

import (
	"net/url"
	"strings"
)

// Set holds the ordered public gateway endpoints used to expand
// decentralized-storage URIs into plain HTTP URLs. Order is significant:
// the first entry is the most preferred. IPNS gateways are derived from the
// IPFS list by path substitution.
type Set struct {
	IPFS    []string // e.g. "https://ipfs.io/ipfs/"
	Arweave []string // e.g. "https://arweave.net/"
}

// Default returns the built-in gateway set. Production callers inject the
// configured set instead; this is the fallback and the test baseline.
func Default() Set {
	return Set{
		IPFS: []string{
			"https://ipfs.io/ipfs/",
			"https://cloudflare-ipfs.com/ipfs/",
			"https://gateway.pinata.cloud/ipfs/",
			"https://dweb.link/ipfs/",
		},
		Arweave: []string{
			"https://arweave.net/",
		},
	}
}

// IPNS returns the IPNS gateway list, derived from the IPFS list.
func (s Set) IPNS() []string {
	out := make([]string, 0, len(s.IPFS))
	for _, g := range s.IPFS {
		out = append(out, strings.Replace(g, "/ipfs/", "/ipns/", 1))
	}
	return out
}

// All returns every configured endpoint (for listing and health checks).
func (s Set) All() []string {
	out := make([]string, 0, len(s.IPFS)+len(s.Arweave))
	out = append(out, s.IPFS...)
	out = append(out, s.Arweave...)
	return out
}

// Expand converts a decentralized-storage URI into an ordered list of HTTP
// candidate URLs, one per matching gateway. URIs with no recognized scheme
// (including unparseable strings) come back unchanged as a single-element
// list, so the result is never empty.
func (s Set) Expand(uri string) []string {
	switch {
	case strings.HasPrefix(uri, "ipfs://"):
		path := strings.TrimPrefix(uri, "ipfs://")
		// Tolerate the redundant "ipfs://ipfs/Qm..." form.
		path = strings.TrimPrefix(path, "ipfs/")
		return s.expandIPFS(path)

	case strings.HasPrefix(uri, "ipns://"):
		path := strings.TrimPrefix(uri, "ipns://")
		path = strings.TrimPrefix(path, "ipns/")
		return s.expandIPNS(path)

	case strings.HasPrefix(uri, "ar://"):
		id := strings.TrimPrefix(uri, "ar://")
		return s.expandArweave(id)
	}

	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return []string{uri}
	}

	// A well-formed URL embedding an /ipfs/<hash> or /ipns/<name> segment
	// gets re-expanded across all gateways, covering one-gateway-pinned
	// metadata and the double "ipfs/ipfs/" typo.
	if path, ok := embeddedPath(u.Path, "/ipfs/"); ok {
		return s.expandIPFS(path)
	}
	if path, ok := embeddedPath(u.Path, "/ipns/"); ok {
		return s.expandIPNS(path)
	}

	if isArweaveHost(u.Host) {
		return s.expandArweave(strings.TrimPrefix(u.Path, "/"))
	}

	return []string{uri}
}

func (s Set) expandIPFS(path string) []string {
	if len(s.IPFS) == 0 || path == "" {
		return []string{"ipfs://" + path}
	}
	out := make([]string, 0, len(s.IPFS))
	for _, g := range s.IPFS {
		out = append(out, g+path)
	}
	return out
}

func (s Set) expandIPNS(path string) []string {
	gws := s.IPNS()
	if len(gws) == 0 || path == "" {
		return []string{"ipns://" + path}
	}
	out := make([]string, 0, len(gws))
	for _, g := range gws {
		out = append(out, g+path)
	}
	return out
}

func (s Set) expandArweave(id string) []string {
	if len(s.Arweave) == 0 || id == "" {
		return []string{"ar://" + id}
	}
	out := make([]string, 0, len(s.Arweave))
	for _, g := range s.Arweave {
		out = append(out, g+id)
	}
	return out
}

// embeddedPath extracts the hash/name path following marker ("/ipfs/" or
// "/ipns/") in a URL path, skipping a doubled marker segment.
func embeddedPath(urlPath, marker string) (string, bool) {
	idx := strings.Index(urlPath, marker)
	if idx < 0 {
		return "", false
	}
	rest := urlPath[idx+len(marker):]
	rest = strings.TrimPrefix(rest, strings.TrimPrefix(marker, "/"))
	if rest == "" {
		return "", false
	}
	return rest, true
}

func isArweaveHost(host string) bool {
	host = strings.ToLower(host)
	return host == "arweave.net" || strings.HasSuffix(host, ".arweave.net") ||
		strings.HasSuffix(host, ".arweave.dev")
}
