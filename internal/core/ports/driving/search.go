package driving

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// SearchOrchestrator owns the search session and is its only writer.
// External actors issue searches and read immutable state snapshots.
type SearchOrchestrator interface {
	// Search executes a query scoped by the active tab, the filter set
	// and the authentication status. The access policy reduces the
	// filter sources to the permitted set before the request is built.
	// It blocks until the request settles and returns the session state
	// as of that moment. A query that trims to empty is a no-op.
	// A newer Search call supersedes an older in-flight one: the older
	// resolution never writes to session state.
	Search(ctx context.Context, query string, tab domain.Tab, filters domain.SearchFilters, authenticated bool) domain.SessionState

	// RetrySearch re-issues the last recorded query, tab and filters.
	// It is a no-op returning the current state when none are recorded.
	RetrySearch(ctx context.Context, authenticated bool) domain.SessionState

	// ClearResults resets the session to its empty initial state and
	// forgets the recorded query/filters. Idempotent.
	ClearResults()

	// ApplySuggestions stores the live suggestion list in session
	// state. The suggestion pipeline produces the list; the
	// orchestrator stays the single session writer.
	ApplySuggestions(items []domain.SuggestionItem)

	// Snapshot returns a copy of the current session state.
	Snapshot() domain.SessionState
}
