package cache

import (
	"context"
	"testing"
	"time"

	testutil "github.com/aristath/pension/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, cleanup := testutil.NewTestDB(t, "cache")
	t.Cleanup(cleanup)
	return NewSQLiteStore(db.Conn())
}

func countRows(t *testing.T, store *SQLiteStore) int {
	t.Helper()

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM analysis_cache").Scan(&n))
	return n
}

func TestSQLiteStore_SetGet(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "analysis:1", []byte{0x81, 0xa1, 0x61}, time.Minute))

	got, found, err := store.Get(ctx, "analysis:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte{0x81, 0xa1, 0x61}, got)

	_, found, err = store.Get(ctx, "analysis:missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("first"), time.Minute))
	require.NoError(t, store.Set(ctx, "k", []byte("second"), time.Minute))

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, 1, countRows(t, store))
}

func TestSQLiteStore_ExpiredEntries(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "stale", []byte("old"), -time.Minute))
	require.NoError(t, store.Set(ctx, "fresh", []byte("new"), time.Hour))

	_, found, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, 1, countRows(t, store))
}

func TestCleanupJob(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), -time.Second))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), -time.Second))
	require.NoError(t, store.Set(ctx, "c", []byte("3"), time.Hour))

	job := NewCleanupJob(store, zerolog.Nop())
	assert.Equal(t, "cache_cleanup", job.Name())

	require.NoError(t, job.Run())
	assert.Equal(t, 1, countRows(t, store))

	// Nothing left to remove
	require.NoError(t, job.Run())
	assert.Equal(t, 1, countRows(t, store))
}

func TestCleanupJob_PropagatesErrors(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.db.Close())

	job := NewCleanupJob(store, zerolog.Nop())
	assert.Error(t, job.Run())
}
