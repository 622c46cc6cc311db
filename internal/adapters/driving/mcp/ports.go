package mcp

import (
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs searches through the orchestration layer.
	Search driving.SearchOrchestrator

	// Suggest serves typeahead suggestions.
	Suggest driving.SuggestionService

	// Auth resolves the session so searches carry the right access level.
	Auth driving.AuthService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	// Suggest is optional; the suggest tool is skipped without it
	return nil
}
