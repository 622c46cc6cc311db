package driven

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// AuthAPI is the remote authentication API.
type AuthAPI interface {
	// Me resolves the user the token belongs to.
	// Returns domain.ErrUnauthorized when the backend answers 401.
	Me(ctx context.Context, token string) (*domain.User, error)

	// ExchangeCode trades an authorization code for a session.
	ExchangeCode(ctx context.Context, code string) (*domain.Session, error)

	// Logout invalidates the session server-side. Best effort; the
	// caller has already cleared local state when this runs.
	Logout(ctx context.Context, token string) error

	// LoginURL returns the URL the user must visit to authenticate.
	// redirectURI is where the browser lands afterwards; it must match
	// the port the local callback listener actually bound.
	LoginURL(state, redirectURI string) string
}

// SessionStore persists the local session: an opaque token and the
// serialized user record. Both must be present for the startup fast path.
type SessionStore interface {
	// Load reads the persisted session.
	// Returns domain.ErrNoSession when none is stored.
	Load() (*domain.Session, error)

	// Save persists the session, replacing any previous one.
	Save(session *domain.Session) error

	// Clear removes the persisted session. Idempotent.
	Clear() error

	// Watch invokes onChange whenever the persisted session changes
	// outside this process. It blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
