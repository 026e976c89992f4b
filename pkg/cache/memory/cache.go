// Package memory implements the session-lifetime response cache.
package memory

import (
	"sync"
	"sync/atomic"

	"github.com/pokedex-cli/pokedex/pkg/models"
)

// Cache is an unbounded in-memory record cache. Entries never expire; the
// catalog is small and finite so growth is bounded in practice.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]models.Pokemon
	hits    atomic.Int64
	misses  atomic.Int64
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]models.Pokemon)}
}

// Get retrieves a cached record.
func (c *Cache) Get(key string) (models.Pokemon, bool) {
	c.mu.RLock()
	p, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return models.Pokemon{}, false
	}
	c.hits.Add(1)
	return p, true
}

// Put stores a record. Concurrent puts for one key are last-write-wins.
func (c *Cache) Put(key string, record models.Pokemon) error {
	c.mu.Lock()
	c.entries[key] = record
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	return models.CacheStats{
		Entries: int64(c.Len()),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}
