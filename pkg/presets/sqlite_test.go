package presets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "presets.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, Preset{
		Model:  "box.scad",
		Name:   "tall",
		Values: map[string]any{"height": 80.0, "style": "snap"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(ctx, "box.scad", "tall")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 80.0, got.Values["height"])
	assert.Equal(t, "snap", got.Values["style"])
}

func TestSQLiteStore_SaveUpdatesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, Preset{
		Model:  "box.scad",
		Name:   "tall",
		Values: map[string]any{"height": 80.0},
	})
	require.NoError(t, err)

	second, err := store.Save(ctx, Preset{
		Model:  "box.scad",
		Name:   "tall",
		Values: map[string]any{"height": 120.0},
	})
	require.NoError(t, err)

	// Same logical preset: the original row id and creation time survive.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 120.0, second.Values["height"])

	all, err := store.List(ctx, "box.scad")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "box.scad", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ListFiltersByModel(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, Preset{Model: "box.scad", Name: "a", Values: map[string]any{}})
	require.NoError(t, err)
	_, err = store.Save(ctx, Preset{Model: "box.scad", Name: "b", Values: map[string]any{}})
	require.NoError(t, err)
	_, err = store.Save(ctx, Preset{Model: "vase.scad", Name: "c", Values: map[string]any{}})
	require.NoError(t, err)

	box, err := store.List(ctx, "box.scad")
	require.NoError(t, err)
	assert.Len(t, box, 2)

	vase, err := store.List(ctx, "vase.scad")
	require.NoError(t, err)
	assert.Len(t, vase, 1)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, Preset{Model: "box.scad", Name: "tall", Values: map[string]any{}})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "box.scad", "tall"))
	_, err = store.Get(ctx, "box.scad", "tall")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, store.Delete(ctx, "box.scad", "tall"))
}

func TestSQLiteStore_RequiresModelAndName(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Save(context.Background(), Preset{Name: "tall"})
	assert.Error(t, err)
}
