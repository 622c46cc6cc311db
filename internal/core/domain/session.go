package domain

import "time"

// SessionState is the observable search session: everything the results
// surface renders. It is created empty, mutated only by the search service
// in response to issue/success/error/clear events, and handed to readers
// as a copy.
type SessionState struct {
	// Query is the query of the most recent search.
	Query string

	// Filters are the filters of the most recent search.
	Filters SearchFilters

	// Results are the hits of the last settled search, in backend order.
	Results []SearchResult

	// TotalResults is the backend's total match count.
	TotalResults int

	// SearchTimeMs is the backend-reported execution time.
	SearchTimeMs int

	// Answer is the generated answer, empty when the backend produced none.
	Answer string

	// Citations back the answer's [n] markers.
	Citations []Citation

	// DidYouMean is the backend's spelling correction, if any.
	DidYouMean string

	// Suggestions is the live suggestion list for the input surface.
	Suggestions []SuggestionItem

	// IsLoading is true while a search is in flight.
	IsLoading bool

	// Error is the surfaced failure message. At any settled instant
	// exactly one of Results and Error is fresh, never both.
	Error string
}

// EmptySessionState returns the state of a session before any search.
func EmptySessionState() SessionState {
	return SessionState{}
}

// Settled returns true once no request is in flight.
func (s SessionState) Settled() bool {
	return !s.IsLoading
}

// HistoryEntry is one recorded past search.
type HistoryEntry struct {
	// ID is the unique identifier (UUID).
	ID string

	// Query is the executed query text.
	Query string

	// SearchedAt is when the search ran.
	SearchedAt time.Time
}
