package graph

import (
	"sync"
)

// LinkCache memoizes the computed link list per layout mode. Link sets for
// the similarity and co-actor modes are computed once per dataset load and
// reused across mode switches; changing the base attraction strength does
// not invalidate them. A dataset reload invalidates the cache wholesale.
type LinkCache struct {
	mu      sync.Mutex
	entries map[Mode][]*Link
}

// NewLinkCache creates an empty cache.
func NewLinkCache() *LinkCache {
	return &LinkCache{entries: make(map[Mode][]*Link)}
}

// Get returns the cached link list for a mode, if computed.
func (c *LinkCache) Get(mode Mode) ([]*Link, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	links, ok := c.entries[mode]
	return links, ok
}

// GetOrCompute returns the cached link list for a mode, computing and
// storing it on first use.
func (c *LinkCache) GetOrCompute(mode Mode, compute func() []*Link) []*Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	if links, ok := c.entries[mode]; ok {
		return links
	}
	links := compute()
	c.entries[mode] = links
	return links
}

// Invalidate drops every cached entry. Called on dataset reload.
func (c *LinkCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Mode][]*Link)
}
