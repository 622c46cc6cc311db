package services

import (
	"context"
	"errors"
	"sync"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure AuthSession implements the interface.
var _ driving.AuthService = (*AuthSession)(nil)

// AuthSession is the process-wide owner of authentication truth.
// Lifecycle: uninitialized -> loading -> authenticated | anonymous.
// Initialisation prefers the locally persisted session; only when none
// exists does it make a single backend check. Every failure resolves to
// the anonymous state - authentication is never fatal.
type AuthSession struct {
	api   driven.AuthAPI
	store driven.SessionStore

	mu          sync.Mutex
	initialized bool
	loading     bool
	user        *domain.User
	token       string
}

// NewAuthSession creates the auth service.
func NewAuthSession(api driven.AuthAPI, store driven.SessionStore) *AuthSession {
	return &AuthSession{
		api:   api,
		store: store,
	}
}

// Init resolves the session state. Only the first call does work;
// subsequent calls return the cached snapshot until Invalidate.
func (a *AuthSession) Init(ctx context.Context) domain.AuthSnapshot {
	a.mu.Lock()
	if a.initialized {
		snap := a.snapshotLocked()
		a.mu.Unlock()
		return snap
	}
	a.loading = true
	a.mu.Unlock()

	user, token := a.resolve(ctx)

	a.mu.Lock()
	a.user = user
	a.token = token
	a.loading = false
	a.initialized = true
	snap := a.snapshotLocked()
	a.mu.Unlock()
	return snap
}

// resolve determines the current user: local cache first, then one
// backend check. Never fails; failures mean anonymous.
func (a *AuthSession) resolve(ctx context.Context) (*domain.User, string) {
	session, err := a.store.Load()
	if err == nil && session.IsValid() {
		logger.Debug("Auth: using cached session for %s", session.User.Email)
		user := session.User
		return &user, session.Token
	}
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		// A corrupt session file must not block startup.
		logger.Warn("Auth: discarding unreadable session: %v", err)
		_ = a.store.Clear()
	}

	user, err := a.api.Me(ctx, "")
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			logger.Debug("Auth: no active session")
		} else {
			logger.Warn("Auth: session check failed: %v", err)
		}
		return nil, ""
	}
	return user, ""
}

// Snapshot returns the current state without triggering initialisation.
func (a *AuthSession) Snapshot() domain.AuthSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// snapshotLocked builds a snapshot. Caller must hold the lock.
func (a *AuthSession) snapshotLocked() domain.AuthSnapshot {
	var user *domain.User
	if a.user != nil {
		u := *a.user
		user = &u
	}
	return domain.AuthSnapshot{
		User:            user,
		IsAuthenticated: a.user != nil,
		IsLoading:       a.loading || !a.initialized,
	}
}

// LoginURL returns the external login URL.
func (a *AuthSession) LoginURL(state, redirectURI string) string {
	return a.api.LoginURL(state, redirectURI)
}

// HandleCallback exchanges the authorization code and persists the session.
func (a *AuthSession) HandleCallback(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	session, err := a.api.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := a.store.Save(session); err != nil {
		// The session is live even if persistence failed; next start
		// just re-authenticates.
		logger.Warn("Auth: could not persist session: %v", err)
	}

	a.mu.Lock()
	user := session.User
	a.user = &user
	a.token = session.Token
	a.loading = false
	a.initialized = true
	a.mu.Unlock()

	logger.Info("Auth: signed in as %s", session.User.Email)
	u := session.User
	return &u, nil
}

// Logout clears the local session first, then best-effort invalidates
// server-side. The local anonymous state is authoritative immediately.
func (a *AuthSession) Logout(ctx context.Context) {
	a.mu.Lock()
	token := a.token
	a.user = nil
	a.token = ""
	a.initialized = true
	a.loading = false
	a.mu.Unlock()

	if err := a.store.Clear(); err != nil {
		logger.Warn("Auth: could not clear local session: %v", err)
	}

	if token != "" {
		if err := a.api.Logout(ctx, token); err != nil {
			logger.Warn("Auth: backend logout failed (local session already cleared): %v", err)
		}
	}
}

// HasPermission reports whether the current user holds the permission.
func (a *AuthSession) HasPermission(permission string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user.HasPermission(permission)
}

// HasGroup reports whether the current user belongs to the group.
func (a *AuthSession) HasGroup(group string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user.HasGroup(group)
}

// Token returns the current session token, empty when anonymous.
func (a *AuthSession) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// Invalidate drops the cached state so the next Init re-resolves.
func (a *AuthSession) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initialized = false
	a.user = nil
	a.token = ""
}
