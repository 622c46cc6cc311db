package file

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

func sessionFixture() *domain.Session {
	return &domain.Session{
		Token: "tok-123",
		User: domain.User{
			ID:          "user-1",
			Email:       "dev@example.com",
			Name:        "Dev",
			Groups:      []string{"engineering"},
			Permissions: []string{"search:tickets"},
		},
	}
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(sessionFixture()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", loaded.Token)
	assert.Equal(t, "user-1", loaded.User.ID)
	assert.Equal(t, []string{"engineering"}, loaded.User.Groups)
	assert.True(t, loaded.IsValid())
}

func TestSessionStore_Load_NoSession(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionStore_Load_IncompleteSession(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("token = \"tok\"\n"), 0600))

	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession, "token without user is not a usable session")
}

func TestSessionStore_Save_RejectsInvalid(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save(&domain.Session{Token: "tok"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionStore_Clear(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(sessionFixture()))

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)

	// Clearing again is not an error.
	require.NoError(t, store.Clear())
}

func TestSessionStore_RestrictedFilePermissions(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(sessionFixture()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSessionStore_Watch_NotifiesOnChange(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Watch(ctx, func() { changes.Add(1) })
	}()

	// Give the watcher a moment to attach before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, store.Save(sessionFixture()))

	require.Eventually(t, func() bool {
		return changes.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}
