package memory

import (
	"context"
	"sync"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
)

// Interface guard.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps the session in process memory. Used in tests and
// wherever persistence across runs is not wanted.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the stored session, or domain.ErrNoSession.
func (s *SessionStore) Load() (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || !s.session.IsValid() {
		return nil, domain.ErrNoSession
	}
	copied := *s.session
	return &copied, nil
}

// Save stores the session. Invalid sessions are rejected.
func (s *SessionStore) Save(session *domain.Session) error {
	if session == nil || !session.IsValid() {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.session = &copied
	return nil
}

// Clear removes the stored session. Idempotent.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// Watch blocks until the context is cancelled. In-memory sessions
// cannot change from outside the process.
func (s *SessionStore) Watch(ctx context.Context, _ func()) error {
	<-ctx.Done()
	return ctx.Err()
}
