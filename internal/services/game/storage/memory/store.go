// Package memory keeps save records in process memory. It backs tests and
// the "memory" store driver, where nothing should outlive the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/krishicash/internal/services/game/storage"
)

// Store is a concurrency-safe in-memory RecordStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]storage.Record
}

var (
	_ storage.RecordStore = (*Store)(nil)
	_ storage.Lister      = (*Store)(nil)
)

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[string]storage.Record)}
}

// Get returns the record for accountID.
func (s *Store) Get(_ context.Context, accountID string) (storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[accountID]
	if !ok {
		return storage.Record{}, storage.ErrNotFound
	}
	rec.Payload = append([]byte(nil), rec.Payload...)
	return rec, nil
}

// Put stores rec, replacing any previous record for the account.
func (s *Store) Put(_ context.Context, rec storage.Record) error {
	rec.Payload = append([]byte(nil), rec.Payload...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.AccountID] = rec
	return nil
}

// Delete removes the record for accountID.
func (s *Store) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, accountID)
	return nil
}

// Len reports how many accounts have a save.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List returns every record, most recent first, without payloads.
func (s *Store) List(_ context.Context) ([]storage.Record, error) {
	s.mu.RLock()
	out := make([]storage.Record, 0, len(s.records))
	for _, rec := range s.records {
		rec.Payload = nil
		out = append(out, rec)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}
