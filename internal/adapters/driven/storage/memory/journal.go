package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
)

// Ensure JournalStore implements the interface.
var _ driven.JournalStore = (*JournalStore)(nil)

// JournalStore is an in-memory implementation of driven.JournalStore.
type JournalStore struct {
	mu   sync.RWMutex
	runs map[string][]domain.JournalEntry
}

// NewJournalStore creates a new in-memory journal.
func NewJournalStore() *JournalStore {
	return &JournalStore{
		runs: make(map[string][]domain.JournalEntry),
	}
}

// Record appends an entry.
func (s *JournalStore) Record(_ context.Context, entry domain.JournalEntry) error {
	if entry.RunID == "" {
		return domain.ErrInvalidInput
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[entry.RunID] = append(s.runs[entry.RunID], entry)
	return nil
}

// ListRun returns a copy of the entries of a run.
func (s *JournalStore) ListRun(_ context.Context, runID string) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.JournalEntry(nil), entries...), nil
}

// Close is a no-op for the memory store.
func (s *JournalStore) Close() error {
	return nil
}
