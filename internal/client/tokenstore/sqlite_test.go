package tokenstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmptySlot(t *testing.T) {
	store := openTemp(t)

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	require.NoError(t, store.Save(ctx, "first"))
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	// Save replaces, never appends.
	require.NoError(t, store.Save(ctx, "second"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "durable"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "durable", token)
}
