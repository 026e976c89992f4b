// Package favorites keeps the user's favorite entity ids and persists the
// full set to local storage after every change.
package favorites

import (
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// StorageKey is the single storage key holding the JSON array of ids.
const StorageKey = "pokedex-favorites"

// Storage is a string key/value store with localStorage semantics.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Store is the in-memory favorites set backed by Storage. It is not safe
// for concurrent use; callers drive it from a single goroutine.
type Store struct {
	storage Storage
	log     *zap.Logger
	ids     []int
	index   map[int]struct{}
}

// Load reads the persisted set. Absent, unreadable, or corrupt data yields
// an empty set; the problem is logged and never returned.
func Load(storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{storage: storage, log: log, index: make(map[int]struct{})}

	raw, ok, err := storage.GetItem(StorageKey)
	if err != nil {
		log.Warn("favorites storage unreadable, starting empty", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Warn("favorites data corrupt, starting empty", zap.Error(err))
		return s
	}
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// Toggle removes id when present and adds it otherwise, then persists the
// whole set. It reports whether id is a favorite afterwards. When persisting
// fails the change is rolled back.
func (s *Store) Toggle(id int) (bool, error) {
	prev := slices.Clone(s.ids)

	_, present := s.index[id]
	if present {
		s.ids = slices.DeleteFunc(s.ids, func(v int) bool { return v == id })
		delete(s.index, id)
	} else {
		s.ids = append(s.ids, id)
		s.index[id] = struct{}{}
	}

	if err := s.save(); err != nil {
		s.ids = prev
		if present {
			s.index[id] = struct{}{}
		} else {
			delete(s.index, id)
		}
		return present, err
	}

	s.log.Debug("favorite toggled", zap.Int("id", id), zap.Bool("favorite", !present))
	return !present, nil
}

// Clear removes every favorite and deletes the persisted key. The set is
// left unchanged when the key cannot be removed.
func (s *Store) Clear() error {
	if err := s.storage.RemoveItem(StorageKey); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	s.ids = nil
	s.index = make(map[int]struct{})
	s.log.Debug("favorites cleared")
	return nil
}

// Contains reports whether id is a favorite.
func (s *Store) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the favorites in insertion order.
func (s *Store) IDs() []int {
	return slices.Clone(s.ids)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return len(s.ids)
}

func (s *Store) save() error {
	ids := s.ids
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
