package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

const defaultRecentLimit = 20

// HistoryService records executed queries and serves them back as
// recency-ordered lists and prefix suggestions. Recording is
// best-effort: a storage failure never propagates to the caller.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates the history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record stores a query. Blank queries are ignored.
func (h *HistoryService) Record(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	entry := domain.HistoryEntry{
		ID:         uuid.New().String(),
		Query:      query,
		SearchedAt: time.Now().UTC(),
	}
	if err := h.store.Add(ctx, entry); err != nil {
		logger.Warn("History: could not record query: %v", err)
	}
}

// Recent returns the most recent queries, newest first.
func (h *HistoryService) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return h.store.Recent(ctx, limit)
}

// Suggestions returns past queries matching the prefix as suggestion
// items, for backfilling when the backend has nothing to offer.
func (h *HistoryService) Suggestions(ctx context.Context, prefix string, limit int) []domain.SuggestionItem {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || limit <= 0 {
		return nil
	}

	entries, err := h.store.Recent(ctx, defaultRecentLimit)
	if err != nil {
		logger.Warn("History: could not read history: %v", err)
		return nil
	}

	lowered := strings.ToLower(prefix)
	var items []domain.SuggestionItem
	for _, entry := range entries {
		if !strings.HasPrefix(strings.ToLower(entry.Query), lowered) {
			continue
		}
		if strings.EqualFold(entry.Query, prefix) {
			continue
		}
		items = append(items, domain.SuggestionItem{
			Text: entry.Query,
			Kind: domain.SuggestionQuery,
		})
		if len(items) >= limit {
			break
		}
	}
	return items
}

// Clear removes all recorded history.
func (h *HistoryService) Clear(ctx context.Context) error {
	return h.store.Clear(ctx)
}
