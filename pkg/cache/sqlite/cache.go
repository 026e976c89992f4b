// Package sqlite implements a persisted record cache for use behind the
// in-memory session cache.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pokedex-cli/pokedex/pkg/models"
)

// Cache is a record cache backed by SQLite with a per-entry TTL.
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS record_cache (
	cache_key TEXT PRIMARY KEY,
	record BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL
);
`

// New creates a Cache with the given database path and default TTL.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get retrieves a cached record. Expired or undecodable rows are misses.
func (c *Cache) Get(key string) (models.Pokemon, bool) {
	var raw []byte
	var createdAt time.Time
	var ttlSeconds int64

	err := c.db.QueryRow(
		`SELECT record, created_at, ttl_seconds FROM record_cache WHERE cache_key = ?`,
		key,
	).Scan(&raw, &createdAt, &ttlSeconds)

	if err != nil {
		c.misses.Add(1)
		return models.Pokemon{}, false
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if time.Since(createdAt) > ttl {
		c.misses.Add(1)
		return models.Pokemon{}, false
	}

	var p models.Pokemon
	if err := json.Unmarshal(raw, &p); err != nil {
		c.misses.Add(1)
		return models.Pokemon{}, false
	}

	c.hits.Add(1)
	return p, true
}

// Put stores a record in the cache.
func (c *Cache) Put(key string, record models.Pokemon) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO record_cache (cache_key, record, created_at, ttl_seconds)
		 VALUES (?, ?, ?, ?)`,
		key, raw, time.Now().UTC(), int64(c.ttl.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM record_cache`).Scan(&count)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: count,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Clear removes cache entries. If expiredOnly is true, only expired entries are removed.
func (c *Cache) Clear(expiredOnly bool) (int64, error) {
	var query string
	if expiredOnly {
		query = `DELETE FROM record_cache WHERE (julianday('now') - julianday(created_at)) * 86400 > ttl_seconds`
	} else {
		query = `DELETE FROM record_cache`
	}
	res, err := c.db.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("cache clear: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
