// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// SearchCompleted carries the settled session state back to the model.
// The orchestrator already folded any failure into the state, so there
// is no separate error field.
type SearchCompleted struct {
	State domain.SessionState
}

// SuggestionsReady carries a suggestion list that survived the debounce
// window.
type SuggestionsReady struct {
	Items []domain.SuggestionItem
}

// SuggestionStreamClosed is sent when the suggestion service shuts its
// update channel. No further SuggestionsReady messages will arrive.
type SuggestionStreamClosed struct{}

// AuthResolved carries the resolved authentication snapshot after the
// initial session check settles.
type AuthResolved struct {
	Snapshot domain.AuthSnapshot
}

// TabChanged is sent when the active tab switches.
type TabChanged struct {
	Tab domain.Tab
}

// HistoryLoaded carries recent queries for the empty-input surface.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
}

// ErrorOccurred signals an error to be displayed.
type ErrorOccurred struct {
	Err error
}
