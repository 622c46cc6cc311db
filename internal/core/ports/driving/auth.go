package driving

import (
	"context"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// AuthService owns authentication truth for the process lifetime.
// It is the single writer; readers take immutable snapshots.
type AuthService interface {
	// Init resolves the session state: local cache fast path first,
	// then a single backend check. Safe to call repeatedly; only the
	// first call does work. Never fails - any failure resolves to
	// the anonymous state.
	Init(ctx context.Context) domain.AuthSnapshot

	// Snapshot returns the current authentication state without
	// triggering initialisation.
	Snapshot() domain.AuthSnapshot

	// LoginURL returns the external login URL the user must visit.
	// The state parameter binds the redirect back to this client;
	// redirectURI is the address of the listener waiting for it.
	LoginURL(state, redirectURI string) string

	// HandleCallback exchanges the authorization code for a session,
	// persists it, and returns the authenticated user.
	HandleCallback(ctx context.Context, code string) (*domain.User, error)

	// Logout clears the local session synchronously, then attempts a
	// best-effort backend invalidation. The local anonymous state is
	// authoritative immediately; Logout never fails.
	Logout(ctx context.Context)

	// HasPermission reports whether the current user holds the
	// permission. False when anonymous.
	HasPermission(permission string) bool

	// HasGroup reports whether the current user belongs to the group.
	// False when anonymous.
	HasGroup(group string) bool

	// Token returns the current session token, empty when anonymous.
	Token() string

	// Invalidate drops the cached state so the next Init re-resolves.
	// Used when the persisted session changes underneath the process.
	Invalidate()
}
