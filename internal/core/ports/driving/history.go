package driving

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// HistoryService records executed searches and serves them back as
// recent-query suggestions.
type HistoryService interface {
	// Record notes an executed query. Best effort: storage failures
	// are logged, not returned.
	Record(ctx context.Context, query string)

	// Recent returns the most recent distinct queries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Suggestions returns recent queries shaped as suggestion items,
	// optionally filtered to those with the given prefix.
	Suggestions(ctx context.Context, prefix string, limit int) []domain.SuggestionItem

	// Clear removes all recorded history.
	Clear(ctx context.Context) error
}
