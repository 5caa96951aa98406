// Package memory implements storage.Store in memory.
//
// It keeps tests lightweight and intentionally favors clarity over performance.
// FailWith lets tests exercise storage-unavailable paths.
package memory

import (
	"fmt"
	"sync"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is a map-backed store safe for concurrent access.
type Store struct {
	mu      sync.RWMutex
	records map[string]string
	failErr error
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[string]string)}
}

// FailWith makes every subsequent operation return err (pass nil to recover).
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Get returns the record stored under key, or errs.ErrNotFound if absent.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return "", s.failErr
	}
	v, ok := s.records[key]
	if !ok {
		return "", fmt.Errorf("record %s: %w", key, errs.ErrNotFound)
	}
	return v, nil
}

// Set writes the record under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.records[key] = value
	return nil
}

// Remove deletes the record under key.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	delete(s.records, key)
	return nil
}
