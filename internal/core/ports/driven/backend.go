package driven

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// SearchRequest is a fully resolved search call: the query plus the
// policy-filtered source set and the authentication flag the backend
// uses to independently enforce access control.
type SearchRequest struct {
	// Query is the trimmed query text.
	Query string

	// Sources is the permitted source set from the access policy.
	Sources []domain.Source

	// TopK is the maximum number of results to return.
	TopK int

	// SortBy is the requested ordering.
	SortBy domain.SortBy

	// TimeRange restricts results by recency.
	TimeRange domain.TimeRange

	// Authenticated tells the backend whether the caller holds a session.
	Authenticated bool
}

// SearchBackend is the remote search API.
type SearchBackend interface {
	// Search executes a search request. Transport failures and
	// undecodable payloads surface as errors; the caller decides how
	// to degrade.
	Search(ctx context.Context, req SearchRequest) (*domain.SearchResponse, error)

	// Suggest returns query completions for a prefix. Errors surface;
	// callers absorb them to an empty list.
	Suggest(ctx context.Context, query string) ([]domain.SuggestionItem, error)
}
