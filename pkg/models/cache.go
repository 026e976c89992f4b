package models

import "time"

// CacheEntry stores a cached catalog record.
type CacheEntry struct {
	Key       string        `json:"key"`
	Record    Pokemon       `json:"record"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

// CacheStats reports cache performance metrics.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
