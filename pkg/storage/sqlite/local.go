// Package sqlite implements local key/value storage with the semantics of a
// browser's localStorage: string keys, string values, whole-value overwrite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Local is a key/value store in a SQLite database.
type Local struct {
	db *sql.DB
}

const createItemsTable = `
CREATE TABLE IF NOT EXISTS local_storage (
	item_key TEXT PRIMARY KEY,
	item_value TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// New opens the storage database and creates the schema.
func New(dbPath string) (*Local, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	if _, err := db.Exec(createItemsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate storage db: %w", err)
	}

	return &Local{db: db}, nil
}

// GetItem returns the value stored under key. ok is false when the key is absent.
func (l *Local) GetItem(key string) (value string, ok bool, err error) {
	err = l.db.QueryRow(`SELECT item_value FROM local_storage WHERE item_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem replaces the value stored under key.
func (l *Local) SetItem(key, value string) error {
	_, err := l.db.Exec(
		`INSERT INTO local_storage (item_key, item_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing an absent key is not an error.
func (l *Local) RemoveItem(key string) error {
	if _, err := l.db.Exec(`DELETE FROM local_storage WHERE item_key = ?`, key); err != nil {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	return nil
}

// Close releases the database connection.
func (l *Local) Close() error {
	return l.db.Close()
}
