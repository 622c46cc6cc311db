package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

func testSession() *domain.Session {
	return &domain.Session{
		Token: "tok-123",
		User:  domain.User{ID: "user-1", Email: "dev@example.com"},
	}
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store := NewSessionStore()

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", loaded.Token)
	assert.Equal(t, "user-1", loaded.User.ID)
}

func TestSessionStore_Load_Empty(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionStore_Save_RejectsInvalid(t *testing.T) {
	store := NewSessionStore()

	err := store.Save(&domain.Session{Token: "tok-only"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionStore_Clear(t *testing.T) {
	store := NewSessionStore()
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear()) // idempotent

	_, err := store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionStore_Watch_StopsOnCancel(t *testing.T) {
	store := NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Watch(ctx, func() {})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionStore_LoadReturnsCopy(t *testing.T) {
	store := NewSessionStore()
	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	loaded.Token = "mutated"

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", again.Token)
}
