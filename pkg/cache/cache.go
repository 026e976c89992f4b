// Package cache defines the record cache contract used by the catalog client
// and a two-level composition of cache stores.
package cache

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pokedex-cli/pokedex/pkg/models"
)

// Store defines the contract for all record cache backends.
// Keys are normalized request keys (lowercased name or numeric id).
type Store interface {
	Get(key string) (models.Pokemon, bool)
	Put(key string, record models.Pokemon) error
	Stats() (models.CacheStats, error)
}

// Tiered looks up Front first and falls back to Back, promoting hits from
// Back into Front. Writes go to both.
type Tiered struct {
	Front  Store
	Back   Store
	log    *zap.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewTiered creates a Tiered cache. A nil log discards promotion failures.
func NewTiered(front, back Store, log *zap.Logger) *Tiered {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tiered{Front: front, Back: back, log: log}
}

// Get returns the record for key from the first level that has it.
func (t *Tiered) Get(key string) (models.Pokemon, bool) {
	if p, ok := t.Front.Get(key); ok {
		t.hits.Add(1)
		return p, true
	}
	p, ok := t.Back.Get(key)
	if !ok {
		t.misses.Add(1)
		return models.Pokemon{}, false
	}
	if err := t.Front.Put(key, p); err != nil {
		t.log.Warn("cache promotion failed", zap.String("key", key), zap.Error(err))
	}
	t.hits.Add(1)
	return p, true
}

// Put stores record in both levels.
func (t *Tiered) Put(key string, record models.Pokemon) error {
	if err := t.Front.Put(key, record); err != nil {
		return err
	}
	if err := t.Back.Put(key, record); err != nil {
		return fmt.Errorf("tiered put: %w", err)
	}
	return nil
}

// Stats reports hits and misses seen by the composition and the entry count
// of the back level, which holds a superset of the front.
func (t *Tiered) Stats() (models.CacheStats, error) {
	back, err := t.Back.Stats()
	if err != nil {
		return models.CacheStats{}, err
	}
	return models.CacheStats{
		Entries: back.Entries,
		Hits:    t.hits.Load(),
		Misses:  t.misses.Load(),
	}, nil
}
