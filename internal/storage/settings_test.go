package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklist_EmptyByDefault(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	list, err := store.Blacklist(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	has, err := store.HasBlacklist(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBlacklist_RoundtripPreservesOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetBlacklist(ctx, []string{"KeePassXC", "1Password", "bank"}))
	list, err := store.Blacklist(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"KeePassXC", "1Password", "bank"}, list)

	require.NoError(t, store.SetBlacklist(ctx, nil))
	list, err = store.Blacklist(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	has, err := store.HasBlacklist(ctx)
	require.NoError(t, err)
	assert.True(t, has, "an explicitly emptied blacklist still counts as saved")
}

func TestBlacklist_CorruptValue(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutSetting(ctx, KeyBlacklist, "{not json"))
	_, err := store.Blacklist(ctx)
	assert.Error(t, err)
}

func TestRecentSearches_MoveToFront(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, q := range []string{"a", "b", "a", "c"} {
		require.NoError(t, store.SaveRecentSearch(ctx, q))
	}

	recent, err := store.RecentSearches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, recent)
}

func TestRecentSearches_KeepsTen(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 11; i++ {
		require.NoError(t, store.SaveRecentSearch(ctx, fmt.Sprintf("q%d", i)))
	}

	recent, err := store.RecentSearches(ctx)
	require.NoError(t, err)
	require.Len(t, recent, MaxRecentSearches)
	assert.Equal(t, "q11", recent[0])
	assert.Equal(t, "q2", recent[9])
	assert.NotContains(t, recent, "q1")
}

func TestRecentSearches_CorruptListIsReplaced(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutSetting(ctx, KeyRecentSearches, "[broken"))
	require.NoError(t, store.SaveRecentSearch(ctx, "fresh"))

	recent, err := store.RecentSearches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, recent)
}
