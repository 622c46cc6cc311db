// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants run platform searches through the same
// orchestration layer the CLI and TUI use.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search orchestrator is not provided.
var ErrMissingSearchService = errors.New("mcp: search orchestrator is required")

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("mcp: auth service is required")
