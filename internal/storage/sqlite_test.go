package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteStore {
	// Use in-memory database for testing
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	store := setupTestDB(t)
	assert.NotNil(t, store.db)
}

func TestSaveRunAssignsDefaults(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	run := &Run{
		Shop:      "dev-store.myshopify.com",
		Kind:      RunKindOrders,
		Requested: 10,
		Succeeded: 8,
		Failed:    2,
		Payload:   []byte(`{"message":"Successfully created 8 orders, 2 failed"}`),
	}
	require.NoError(t, store.SaveRun(ctx, run))

	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestGetRun(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	run := &Run{Shop: "dev-store.myshopify.com", Kind: RunKindClear, Succeeded: 3}
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, RunKindClear, got.Kind)
	assert.Equal(t, 3, got.Succeeded)
}

func TestGetRunNotFound(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRecentRuns(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		kind := RunKindOrders
		if i%2 == 1 {
			kind = RunKindInventory
		}
		require.NoError(t, store.SaveRun(ctx, &Run{
			Shop:      "dev-store.myshopify.com",
			Kind:      kind,
			Requested: i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	// Different shop, must not leak into results.
	require.NoError(t, store.SaveRun(ctx, &Run{Shop: "other.myshopify.com", Kind: RunKindOrders}))

	runs, err := store.ListRecentRuns(ctx, "dev-store.myshopify.com", "", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, 4, runs[0].Requested)
	assert.Equal(t, 3, runs[1].Requested)

	// Kind filter.
	runs, err = store.ListRecentRuns(ctx, "dev-store.myshopify.com", RunKindInventory, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, run := range runs {
		assert.Equal(t, RunKindInventory, run.Kind)
	}
}

func TestListRecentRunsEmptyShop(t *testing.T) {
	store := setupTestDB(t)

	runs, err := store.ListRecentRuns(context.Background(), "nobody.myshopify.com", "", 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
