package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/adapters/driven/storage/memory"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockAuthAPI implements driven.AuthAPI for testing.
type mockAuthAPI struct {
	meUser      *domain.User
	meErr       error
	session     *domain.Session
	exchangeErr error
	logoutErr   error

	meCalls     int
	logoutCalls int
	logoutToken string
}

func (m *mockAuthAPI) Me(_ context.Context, _ string) (*domain.User, error) {
	m.meCalls++
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.meUser, nil
}

func (m *mockAuthAPI) ExchangeCode(_ context.Context, _ string) (*domain.Session, error) {
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.session, nil
}

func (m *mockAuthAPI) Logout(_ context.Context, token string) error {
	m.logoutCalls++
	m.logoutToken = token
	return m.logoutErr
}

func (m *mockAuthAPI) LoginURL(state, redirectURI string) string {
	return "https://auth.example.com/login?state=" + state + "&redirect_uri=" + redirectURI
}

// mockSessionStore implements driven.SessionStore for testing.
type mockSessionStore struct {
	session *domain.Session
	loadErr error
	saveErr error

	saved      *domain.Session
	clearCalls int
}

func (m *mockSessionStore) Load() (*domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.session, nil
}

func (m *mockSessionStore) Save(session *domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = session
	return nil
}

func (m *mockSessionStore) Clear() error {
	m.clearCalls++
	m.session = nil
	return nil
}

func (m *mockSessionStore) Watch(ctx context.Context, _ func()) error {
	<-ctx.Done()
	return ctx.Err()
}

// --- Test helpers ---

func testUser() *domain.User {
	return &domain.User{
		ID:          "user-1",
		Email:       "dev@example.com",
		Name:        "Dev",
		Groups:      []string{"engineering"},
		Permissions: []string{"search:tickets"},
	}
}

func testSession() *domain.Session {
	return &domain.Session{Token: "tok-123", User: *testUser()}
}

// --- Tests ---

func TestAuthSession_Init_CachedSessionFastPath(t *testing.T) {
	api := &mockAuthAPI{}
	store := &mockSessionStore{session: testSession()}
	auth := NewAuthSession(api, store)

	snap := auth.Init(context.Background())

	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	require.NotNil(t, snap.User)
	assert.Equal(t, "dev@example.com", snap.User.Email)
	assert.Equal(t, 0, api.meCalls, "cached session must skip the network")
	assert.Equal(t, "tok-123", auth.Token())
}

func TestAuthSession_Init_NoSessionChecksBackend(t *testing.T) {
	api := &mockAuthAPI{meUser: testUser()}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)

	snap := auth.Init(context.Background())

	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, 1, api.meCalls)
}

func TestAuthSession_Init_UnauthorizedMeansAnonymous(t *testing.T) {
	api := &mockAuthAPI{meErr: domain.ErrUnauthorized}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)

	snap := auth.Init(context.Background())

	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.Nil(t, snap.User)
}

func TestAuthSession_Init_BackendFailureMeansAnonymous(t *testing.T) {
	api := &mockAuthAPI{meErr: errors.New("connection refused")}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)

	snap := auth.Init(context.Background())

	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading, "auth failures must still settle the state")
}

func TestAuthSession_Init_CorruptSessionCleared(t *testing.T) {
	api := &mockAuthAPI{meErr: domain.ErrUnauthorized}
	store := &mockSessionStore{loadErr: errors.New("toml: invalid")}
	auth := NewAuthSession(api, store)

	snap := auth.Init(context.Background())

	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, 1, store.clearCalls)
}

func TestAuthSession_Init_SecondCallIsCached(t *testing.T) {
	api := &mockAuthAPI{meUser: testUser()}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)

	auth.Init(context.Background())
	auth.Init(context.Background())

	assert.Equal(t, 1, api.meCalls)
}

func TestAuthSession_HandleCallback(t *testing.T) {
	api := &mockAuthAPI{session: testSession()}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)

	user, err := auth.HandleCallback(context.Background(), "code-abc")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "dev@example.com", user.Email)
	require.NotNil(t, store.saved)
	assert.Equal(t, "tok-123", store.saved.Token)
	assert.True(t, auth.Snapshot().IsAuthenticated)
}

func TestAuthSession_HandleCallback_EmptyCode(t *testing.T) {
	auth := NewAuthSession(&mockAuthAPI{}, &mockSessionStore{})

	_, err := auth.HandleCallback(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthSession_HandleCallback_ExchangeFailure(t *testing.T) {
	api := &mockAuthAPI{exchangeErr: errors.New("invalid code")}
	auth := NewAuthSession(api, &mockSessionStore{})

	_, err := auth.HandleCallback(context.Background(), "code-abc")

	assert.Error(t, err)
	assert.False(t, auth.Snapshot().IsAuthenticated)
}

func TestAuthSession_HandleCallback_PersistFailureStillSignsIn(t *testing.T) {
	api := &mockAuthAPI{session: testSession()}
	store := &mockSessionStore{saveErr: errors.New("disk full")}
	auth := NewAuthSession(api, store)

	user, err := auth.HandleCallback(context.Background(), "code-abc")

	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.True(t, auth.Snapshot().IsAuthenticated)
}

func TestAuthSession_Logout(t *testing.T) {
	api := &mockAuthAPI{}
	store := &mockSessionStore{session: testSession()}
	auth := NewAuthSession(api, store)
	auth.Init(context.Background())
	require.True(t, auth.Snapshot().IsAuthenticated)

	auth.Logout(context.Background())

	snap := auth.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Empty(t, auth.Token())
	assert.Equal(t, 1, store.clearCalls)
	assert.Equal(t, 1, api.logoutCalls)
	assert.Equal(t, "tok-123", api.logoutToken)
}

func TestAuthSession_Logout_BackendFailureStillClearsLocally(t *testing.T) {
	api := &mockAuthAPI{logoutErr: errors.New("backend down")}
	store := &mockSessionStore{session: testSession()}
	auth := NewAuthSession(api, store)
	auth.Init(context.Background())

	auth.Logout(context.Background())

	assert.False(t, auth.Snapshot().IsAuthenticated)
	assert.Empty(t, auth.Token())
}

func TestAuthSession_Logout_AnonymousSkipsBackend(t *testing.T) {
	api := &mockAuthAPI{meErr: domain.ErrUnauthorized}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)
	auth.Init(context.Background())

	auth.Logout(context.Background())

	assert.Equal(t, 0, api.logoutCalls)
}

func TestAuthSession_Permissions(t *testing.T) {
	api := &mockAuthAPI{}
	store := &mockSessionStore{session: testSession()}
	auth := NewAuthSession(api, store)
	auth.Init(context.Background())

	assert.True(t, auth.HasPermission("search:tickets"))
	assert.False(t, auth.HasPermission("admin:users"))
	assert.True(t, auth.HasGroup("engineering"))
	assert.False(t, auth.HasGroup("sales"))
}

func TestAuthSession_Permissions_Anonymous(t *testing.T) {
	api := &mockAuthAPI{meErr: domain.ErrUnauthorized}
	store := &mockSessionStore{loadErr: domain.ErrNoSession}
	auth := NewAuthSession(api, store)
	auth.Init(context.Background())

	assert.False(t, auth.HasPermission("search:tickets"))
	assert.False(t, auth.HasGroup("engineering"))
}

func TestAuthSession_Invalidate(t *testing.T) {
	api := &mockAuthAPI{}
	store := &mockSessionStore{session: testSession()}
	auth := NewAuthSession(api, store)
	auth.Init(context.Background())
	require.True(t, auth.Snapshot().IsAuthenticated)

	auth.Invalidate()
	assert.True(t, auth.Snapshot().IsLoading, "invalidated state awaits re-init")

	// Re-init picks the store back up.
	snap := auth.Init(context.Background())
	assert.True(t, snap.IsAuthenticated)
}

func TestAuthSession_RoundTripWithMemoryStore(t *testing.T) {
	api := &mockAuthAPI{session: testSession()}
	store := memory.NewSessionStore()
	auth := NewAuthSession(api, store)

	_, err := auth.HandleCallback(context.Background(), "code-abc")
	require.NoError(t, err)

	// A fresh service over the same store resolves without the network.
	again := NewAuthSession(api, store)
	snap := again.Init(context.Background())
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, 0, api.meCalls)

	again.Logout(context.Background())
	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestAuthSession_LoginURL(t *testing.T) {
	auth := NewAuthSession(&mockAuthAPI{}, &mockSessionStore{})

	url := auth.LoginURL("xyz", "http://localhost:41234/callback")

	assert.Equal(t, "https://auth.example.com/login?state=xyz&redirect_uri=http://localhost:41234/callback", url)
}
