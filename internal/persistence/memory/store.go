// Package memory provides an in-process persistence.Store used for ephemeral
// runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/trainee-timetable/internal/persistence"
)

// Store keeps the last saved snapshot in memory.
type Store struct {
	mu       sync.RWMutex
	snapshot persistence.Snapshot
	saves    int
	failure  error
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// NewWithSnapshot returns a store preloaded with snapshot.
func NewWithSnapshot(snapshot persistence.Snapshot) *Store {
	return &Store{snapshot: cloneSnapshot(snapshot)}
}

// Load returns a copy of the stored snapshot.
func (s *Store) Load(ctx context.Context) (persistence.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failure != nil {
		return persistence.Snapshot{}, fmt.Errorf("%w: load: %w", persistence.ErrStorageUnavailable, s.failure)
	}
	return cloneSnapshot(s.snapshot), nil
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, snapshot persistence.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failure != nil {
		return fmt.Errorf("%w: save: %w", persistence.ErrStorageUnavailable, s.failure)
	}
	s.snapshot = cloneSnapshot(snapshot)
	s.saves++
	return nil
}

// Saves reports how many snapshots have been saved successfully.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Fail makes subsequent loads and saves fail with err. Passing nil restores
// normal operation.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	s.failure = err
	s.mu.Unlock()
}

func cloneSnapshot(snapshot persistence.Snapshot) persistence.Snapshot {
	return persistence.FromRecords(snapshot.Records())
}
