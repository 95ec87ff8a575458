package chartboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSnapshotKey is the blob key the persister writes under when none is
// configured.
const DefaultSnapshotKey = "chartboard/snapshot"

// BlobStore is the key-value blob storage the dashboard state is persisted
// into. Only the payload layout is in scope here; the store itself is an
// external collaborator.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// ErrBlobNotFound is returned by Get when the key has never been written.
var ErrBlobNotFound = errors.New("chartboard: blob not found")

// MemoryBlobStore keeps blobs in process memory. Useful for tests and demos.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore builds an empty in-memory store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: map[string][]byte{}}
}

func (s *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	return append([]byte{}, data...), nil
}

func (s *MemoryBlobStore) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte{}, data...)
	return nil
}

// FileBlobStore maps blob keys onto files under a base directory.
type FileBlobStore struct {
	Dir string
}

func (s FileBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
		}
		return nil, fmt.Errorf("chartboard: read blob %s: %w", key, err)
	}
	return data, nil
}

func (s FileBlobStore) Set(_ context.Context, key string, data []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartboard: mkdir for blob %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("chartboard: write blob %s: %w", key, err)
	}
	return nil
}

func (s FileBlobStore) path(key string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(key)+".json")
}

// SnapshotPersister adapts a BlobStore to the Service's Persister hook.
type SnapshotPersister struct {
	Store BlobStore
	Key   string
}

// Persist encodes and writes the snapshot.
func (p SnapshotPersister) Persist(ctx context.Context, snapshot Snapshot) error {
	if p.Store == nil {
		return errors.New("chartboard: snapshot persister requires a blob store")
	}
	data, err := snapshot.Encode()
	if err != nil {
		return err
	}
	return p.Store.Set(ctx, p.key(), data)
}

// Load reads back the persisted snapshot. The second return value is false
// when nothing has been persisted yet.
func (p SnapshotPersister) Load(ctx context.Context) (Snapshot, bool, error) {
	if p.Store == nil {
		return Snapshot{}, false, errors.New("chartboard: snapshot persister requires a blob store")
	}
	data, err := p.Store.Get(ctx, p.key())
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	snapshot, err := DecodeSnapshot(data)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (p SnapshotPersister) key() string {
	if p.Key == "" {
		return DefaultSnapshotKey
	}
	return p.Key
}
