package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "registry.json")
	ctx := context.Background()

	store, err := NewSnapshotStore(path)
	require.NoError(t, err)
	r, err := New(ctx, testDomain, store)
	require.NoError(t, err)

	minted, err := r.MintNamed(ctx, 100, "keeper")
	require.NoError(t, err)
	random, err := r.MintRandom(ctx, 100)
	require.NoError(t, err)
	require.NoError(t, r.Block(ctx, 999))
	require.NoError(t, r.Close())

	// A fresh registry over the same file sees everything back.
	store2, err := NewSnapshotStore(path)
	require.NoError(t, err)
	r2, err := New(ctx, testDomain, store2)
	require.NoError(t, err)
	defer r2.Close()

	owner, ok := r2.OwnerOf(minted)
	require.True(t, ok)
	assert.Equal(t, int64(100), owner)
	assert.Equal(t, []string{minted, random}, r2.Addresses(100))

	last, ok := r2.LastAddress(100)
	require.True(t, ok)
	assert.Equal(t, random, last)
	assert.True(t, r2.IsBlocked(999))
}

func TestSnapshotStoreWritePublishesCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	ctx := context.Background()

	store, err := NewSnapshotStore(path)
	require.NoError(t, err)
	r, err := New(ctx, testDomain, store)
	require.NoError(t, err)
	defer r.Close()

	for _, name := range []string{"one", "two", "three"} {
		_, err := r.MintNamed(ctx, 100, name)
		require.NoError(t, err)

		// Each mutation ends with the final file in place and no
		// scratch file left over from the write.
		_, statErr := os.Stat(path)
		require.NoError(t, statErr)
		_, tmpErr := os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(tmpErr))

		snap, loadErr := store.Load(ctx)
		require.NoError(t, loadErr)
		require.NotNil(t, snap)
		assert.Equal(t, int64(100), snap.OwnerOf[name+"@"+testDomain])
	}
}

func TestSnapshotStoreMissingFileStartsEmpty(t *testing.T) {
	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "never-written.json"))
	require.NoError(t, err)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewSnapshotStore(path)
	require.NoError(t, err)
	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestMemoryStoreForgetsEverything(t *testing.T) {
	ctx := context.Background()
	r, err := New(ctx, testDomain, NewMemoryStore())
	require.NoError(t, err)

	_, err = r.MintNamed(ctx, 100, "ephemeral")
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r2, err := New(ctx, testDomain, NewMemoryStore())
	require.NoError(t, err)
	_, ok := r2.OwnerOf("ephemeral@inbox.example")
	assert.False(t, ok)
}
