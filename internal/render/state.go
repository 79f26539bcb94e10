package render

import (
	"sync"

	"github.com/rafflehouse/artcli/internal/nft"
)

// State tracks which image candidate is currently being shown for one
// prize. A load failure advances to the next candidate; running past the
// end is the terminal "artwork unavailable" display.
type State struct {
	Candidates []string
	Index      int
}

// NewState starts at the first candidate.
func NewState(candidates []string) *State {
	return &State{Candidates: candidates}
}

// Current returns the candidate to render, or ("", false) when exhausted.
func (s *State) Current() (string, bool) {
	if s.Index >= len(s.Candidates) {
		return "", false
	}
	return s.Candidates[s.Index], true
}

// Advance moves to the next candidate after a load failure. Returns false
// once the candidate list is exhausted.
func (s *State) Advance() bool {
	if s.Index < len(s.Candidates) {
		s.Index++
	}
	return s.Index < len(s.Candidates)
}

// Exhausted reports whether every candidate has failed.
func (s *State) Exhausted() bool {
	return s.Index >= len(s.Candidates)
}

// Cache holds render state per prize identity. The key is strictly
// (collection, tokenId, standard) — see nft.Key — so a transient escrow-flag
// recalculation never discards an already-resolved artwork, while any change
// to the identity triple starts fresh.
type Cache struct {
	mu sync.Mutex
	m  map[nft.Key]*State
}

// NewCache creates an empty render-state cache.
func NewCache() *Cache {
	return &Cache{m: make(map[nft.Key]*State)}
}

// Get returns the cached state for a prize, or nil when resolution has not
// run (or was invalidated) for this identity.
func (c *Cache) Get(ref nft.PrizeReference) *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[ref.Key()]
}

// Put stores freshly resolved candidates for a prize, replacing any prior
// state for the same identity.
func (c *Cache) Put(ref nft.PrizeReference, candidates []string) *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := NewState(candidates)
	c.m[ref.Key()] = s
	return s
}

// Invalidate drops the state for one prize identity.
func (c *Cache) Invalidate(ref nft.PrizeReference) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, ref.Key())
}

// Len reports how many prize identities currently hold state.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
