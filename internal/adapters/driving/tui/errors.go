package tui

import "errors"

// ErrMissingSearchOrchestrator is returned when the search orchestrator is not provided.
var ErrMissingSearchOrchestrator = errors.New("tui: search orchestrator is required")

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("tui: auth service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
