package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Used when search history persistence is disabled.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Add records an entry, newest first. Re-recording an existing query
// moves it to the front.
func (s *HistoryStore) Add(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if !strings.EqualFold(e.Query, entry.Query) {
			kept = append(kept, e)
		}
	}
	s.entries = append([]domain.HistoryEntry{entry}, kept...)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	result := make([]domain.HistoryEntry, limit)
	copy(result, s.entries[:limit])
	return result, nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Close is a no-op for the in-memory store.
func (s *HistoryStore) Close() error {
	return nil
}
