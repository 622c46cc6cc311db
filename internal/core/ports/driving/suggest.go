package driving

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// SuggestionService provides debounced, best-effort query completions.
// Failures never surface: every path resolves to a (possibly empty) list.
type SuggestionService interface {
	// Observe notes the live query text. Each call resets the debounce
	// timer; only a value that survives the quiet period triggers a
	// fetch, whose result is delivered on Updates. Superseded values
	// never cause a request.
	Observe(query string)

	// Updates delivers suggestion lists for queries that survived the
	// debounce window. The channel is closed by Close.
	Updates() <-chan []domain.SuggestionItem

	// Fetch resolves suggestions for the query immediately, bypassing
	// the debounce but honouring the minimum-length rule and the cache.
	// It never returns an error; failures yield an empty list.
	Fetch(ctx context.Context, query string) []domain.SuggestionItem

	// Close cancels any pending debounce timer and closes Updates.
	Close()
}
