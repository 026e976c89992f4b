package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pokedex-cli/pokedex/pkg/models"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache_test.db")
	c, err := New(dbPath, ttl)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func samplePokemon() models.Pokemon {
	return models.Pokemon{
		ID:      25,
		Name:    "pikachu",
		Sprites: models.Sprites{FrontDefault: "https://img.example/25.png"},
		Weight:  60,
		Height:  4,
		Types:   []models.TypeSlot{{Slot: 1, Type: models.NamedResource{Name: "electric"}}},
		Stats: []models.StatEntry{
			{BaseStat: 35, Stat: models.NamedResource{Name: "hp"}},
			{BaseStat: 90, Stat: models.NamedResource{Name: "speed"}},
		},
	}
}

func TestPutAndGet(t *testing.T) {
	c := newTestCache(t, time.Hour)

	if err := c.Put("pikachu", samplePokemon()); err != nil {
		t.Fatal(err)
	}

	p, ok := c.Get("pikachu")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if p.ID != 25 || p.Name != "pikachu" {
		t.Errorf("unexpected record: %+v", p)
	}
	if len(p.Stats) != 2 || p.Stats[1].BaseStat != 90 {
		t.Errorf("stats not round-tripped: %+v", p.Stats)
	}

	// Miss for a different key
	_, ok = c.Get("raichu")
	if ok {
		t.Error("expected cache miss for different key")
	}
}

func TestTTLExpiration(t *testing.T) {
	c := newTestCache(t, 1*time.Millisecond)

	if err := c.Put("pikachu", samplePokemon()); err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get("pikachu")
	if ok {
		t.Error("expected cache miss after TTL expiration")
	}
}

func TestStats(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_ = c.Put("pikachu", samplePokemon())
	c.Get("pikachu") // hit
	c.Get("raichu")  // miss

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.Entries)
	}
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
}

func TestClear(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_ = c.Put("pikachu", samplePokemon())
	_ = c.Put("25", samplePokemon())

	n, err := c.Clear(false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows deleted, got %d", n)
	}

	stats, _ := c.Stats()
	if stats.Entries != 0 {
		t.Errorf("expected 0 entries after clear, got %d", stats.Entries)
	}
}
