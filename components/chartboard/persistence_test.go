package chartboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlobStoreRoundTrip(t *testing.T) {
	store := NewMemoryBlobStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, store.Set(ctx, "key", []byte("payload")))
	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestFileBlobStorePersistsToDisk(t *testing.T) {
	dir := t.TempDir()
	store := &FileBlobStore{Dir: dir}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "chartboard/snapshot", []byte(`{"a":1}`)))
	assert.FileExists(t, filepath.Join(dir, "chartboard", "snapshot.json"))

	data, err := store.Get(ctx, "chartboard/snapshot")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	_, err = store.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestSnapshotPersisterRoundTrip(t *testing.T) {
	persister := &SnapshotPersister{Store: NewMemoryBlobStore(), Key: DefaultSnapshotKey}
	ctx := context.Background()

	_, ok, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, persister.Persist(ctx, snapshotFixture()))

	loaded, ok, err := persister.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded.Dashboards, 1)
	assert.Equal(t, "Main Dashboard", loaded.Dashboards[0].Name)
}
