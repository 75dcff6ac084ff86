// Package blob stores uploaded 3D model files keyed by filename, the
// way the original kept them in a KV namespace. The Redis
// implementation is the production store; the memory implementation
// backs tests and degraded startup when Redis is unreachable.
package blob

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when no blob exists under the given name.
var ErrNotFound = errors.New("model file not found")

// Metadata travels with every stored blob.
type Metadata struct {
	OriginalName string
	Size         int64
	UploadedAt   time.Time
}

// Store is a binary blob store keyed by filename.
type Store interface {
	Put(ctx context.Context, name string, data []byte, meta Metadata) error
	Get(ctx context.Context, name string) ([]byte, Metadata, error)
}

// MemoryStore keeps blobs in process memory. Contents do not survive a
// restart, which is acceptable for local development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	metas map[string]Metadata
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}, metas: map[string]Metadata{}}
}

func (s *MemoryStore) Put(_ context.Context, name string, data []byte, meta Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[name] = cp
	s.metas[name] = meta
	return nil
}

func (s *MemoryStore) Get(_ context.Context, name string) ([]byte, Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, Metadata{}, ErrNotFound
	}
	return data, s.metas[name], nil
}
