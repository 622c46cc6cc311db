// Package tui provides the interactive terminal user interface for isearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search owns the search session.
	Search driving.SearchOrchestrator

	// Suggest provides debounced query suggestions. Optional: when nil
	// the input surface simply shows no suggestions.
	Suggest driving.SuggestionService

	// Auth resolves and owns the authentication state.
	Auth driving.AuthService

	// History records executed searches. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchOrchestrator
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	return nil
}
