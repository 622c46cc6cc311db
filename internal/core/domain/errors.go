package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendUnavailable indicates the search backend could not be
	// reached or returned a non-success status.
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrMalformedResponse indicates the backend returned a payload the
	// client could not decode. Treated like a transport failure for
	// search; absorbed to an empty list for suggestions.
	ErrMalformedResponse = errors.New("malformed response")

	// Authentication Errors.

	// ErrUnauthorized indicates the backend rejected the session (HTTP
	// 401). Treated as "no user", never propagated as a hard failure.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession indicates no local session is persisted.
	ErrNoSession = errors.New("no session")

	// Search Errors.

	// ErrNoPreviousSearch indicates retry was requested before any
	// search had been recorded.
	ErrNoPreviousSearch = errors.New("no previous search")
)
