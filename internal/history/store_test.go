package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamilpajak/mendeleev/internal/regression"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestLatestRunEmptyStore(t *testing.T) {
	store := openTestStore(t)

	run, err := store.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	identities := []regression.Record{
		{Fingerprint: "fp-1", RootCause: "Element not found"},
		{Fingerprint: "fp-2", RootCause: "Timeout exceeded"},
	}
	saved, err := store.SaveRun(ctx, "results.json", 10, 3, identities)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	latest, err := store.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, saved.ID, latest.ID)
	assert.Equal(t, "results.json", latest.Source)
	assert.Equal(t, 10, latest.TotalTests)
	assert.Equal(t, 3, latest.Failed)

	loaded, err := store.Identities(ctx, saved.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, identities, loaded)
}

func TestLatestRunPicksNewest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.SaveRun(ctx, "first.json", 5, 1, nil)
	require.NoError(t, err)
	second, err := store.SaveRun(ctx, "second.json", 5, 2, nil)
	require.NoError(t, err)

	latest, err := store.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.SaveRun(ctx, "run.json", i, 0, nil)
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	all, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.False(t, all[0].CreatedAt.Before(all[1].CreatedAt), "newest first")
}

func TestIdentitiesUnknownRun(t *testing.T) {
	store := openTestStore(t)

	identities, err := store.Identities(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, identities)
}

func TestSaveRunEmptyIdentities(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveRun(ctx, "green.json", 8, 0, nil)
	require.NoError(t, err)

	identities, err := store.Identities(ctx, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, identities)
}
