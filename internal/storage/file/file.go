// Package file implements storage.Store with one JSON-encoded file per key.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps each record in <dir>/<key>.json. Writes go through a temp file
// plus rename so a crash mid-write never truncates an existing record.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a file-backed store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir %s: %v: %w", dir, err, errs.ErrStorageUnavailable)
	}
	return &Store{dir: dir}, nil
}

// path maps a record key to its backing file. Keys are simple identifiers;
// anything resembling a path traversal is rejected up front.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("bad record key %q: %w", key, errs.ErrStorageUnavailable)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get returns the record stored under key, or errs.ErrNotFound if absent.
func (s *Store) Get(key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("record %s: %w", key, errs.ErrNotFound)
		}
		return "", fmt.Errorf("read record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return "", fmt.Errorf("decode record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	return v, nil
}

// Set writes the record under key atomically.
func (s *Store) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	return nil
}

// Remove deletes the record under key. Removing an absent key succeeds.
func (s *Store) Remove(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove record %s: %v: %w", key, err, errs.ErrStorageUnavailable)
	}
	return nil
}
