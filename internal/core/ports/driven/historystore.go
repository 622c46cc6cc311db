package driven

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// HistoryStore persists executed searches.
type HistoryStore interface {
	// Add records an entry. Re-recording an existing query text moves
	// it to the front rather than duplicating it.
	Add(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
