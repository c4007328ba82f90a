// Package memstore keeps the entries in process memory.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/models"
)

// EntryRepository is an in-memory implementation of the EntryStorage
// interface. It holds the last persisted snapshot of the collection.
//
// The mutex only protects the snapshot itself: like the other stores,
// concurrent Load-Persist sequences may overwrite each other.
type EntryRepository struct {
	// entries is the persisted snapshot.
	entries []models.Entry
	// mu is a mutex that protects entries from concurrent access.
	mu sync.RWMutex
}

// NewEntryRepository creates a new in-memory repository holding
// an empty collection.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{entries: make([]models.Entry, 0)}
}

// Load returns a copy of the persisted snapshot.
func (r *EntryRepository) Load(_ context.Context) ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]models.Entry, len(r.entries))
	copy(entries, r.entries)

	return entries, nil
}

// Persist replaces the snapshot with a copy of entries.
func (r *EntryRepository) Persist(_ context.Context, entries []models.Entry) error {
	snapshot := make([]models.Entry, len(entries))
	copy(snapshot, entries)

	r.mu.Lock()
	r.entries = snapshot
	r.mu.Unlock()

	return nil
}

// GetByIndex returns the entry at index.
// If the index is out of range, it returns ErrNotFound.
func (r *EntryRepository) GetByIndex(_ context.Context, index int) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.entries) {
		return nil, fmt.Errorf("index %d: %w", index, errs.ErrNotFound)
	}

	entry := r.entries[index]
	return &entry, nil
}

// Ping is a placeholder method that returns an error
// indicating that the database is not connected [ErrDBNotConnected].
func (r *EntryRepository) Ping(_ context.Context) error {
	return errs.ErrDBNotConnected
}
