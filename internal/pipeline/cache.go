package pipeline

import (
	"sync"

	"github.com/dmelo/ticketstats/internal/model"
)

// Cache is a content-addressed store of normalized batches. The key is
// derived from the exact bytes of the input file set, so changing a file's
// content or the set itself is a miss. Entries are treated as immutable.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	dataset *model.Dataset
	summary *model.LoadSummary
}

// NewCache returns an empty batch cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) get(key string) (*model.Dataset, *model.LoadSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil, false
	}
	return e.dataset, e.summary, true
}

func (c *Cache) put(key string, ds *model.Dataset, sum *model.LoadSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{dataset: ds, summary: sum}
}

// Clear drops every cached batch. The explicit invalidation path; there is
// no implicit eviction.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports the number of cached batches.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
