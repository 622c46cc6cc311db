package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

func historyEntry(id, query string, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{ID: id, Query: query, SearchedAt: at}
}

func TestHistoryStore_AddAndRecent(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Add(ctx, historyEntry("1", "first", now)))
	require.NoError(t, store.Add(ctx, historyEntry("2", "second", now.Add(time.Second))))
	require.NoError(t, store.Add(ctx, historyEntry("3", "third", now.Add(2*time.Second))))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Query)
	assert.Equal(t, "first", entries[2].Query)
}

func TestHistoryStore_Recent_Limit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for i, q := range []string{"a", "b", "c"} {
		require.NoError(t, store.Add(ctx, historyEntry(string(rune('1'+i)), q, time.Now())))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryStore_Add_DeduplicatesQuery(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Add(ctx, historyEntry("1", "install agent", now)))
	require.NoError(t, store.Add(ctx, historyEntry("2", "other", now.Add(time.Second))))
	require.NoError(t, store.Add(ctx, historyEntry("3", "Install Agent", now.Add(2*time.Second))))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Install Agent", entries[0].Query, "re-recorded query moves to the front")
	assert.Equal(t, "other", entries[1].Query)
}

func TestHistoryStore_Clear(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, historyEntry("1", "q", time.Now())))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
