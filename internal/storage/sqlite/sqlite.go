// Package sqlite implements storage.Store over a local SQLite database.
//
// Records live in a single key-value table. SQLite gives the same durability
// as the file backend but keeps all records in one file, which is convenient
// when the data directory is synced or backed up as a unit.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// Store persists records in a records(key, value) table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
// SQLite serializes writers itself; a single connection avoids lock contention.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %v: %w", path, err, errs.ErrStorageUnavailable)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %v: %w", err, errs.ErrStorageUnavailable)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the record stored under key, or errs.ErrNotFound if absent.
func (s *Store) Get(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("record %s: %w", key, errs.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	return v, nil
}

// Set writes the record under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	return nil
}

// Remove deletes the record under key. Removing an absent key succeeds.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	return nil
}
