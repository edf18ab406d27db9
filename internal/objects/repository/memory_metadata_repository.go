// Package repository implements persistence for object metadata and access
// policies. The in-memory variant is the default store; the PostgreSQL and
// MySQL variants back deployments that need metadata to survive restarts.
package repository

import (
	"context"
	"sync"

	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// MemoryMetadataRepository keeps object metadata in process memory, keyed by
// storage path. Safe for concurrent use.
type MemoryMetadataRepository struct {
	mu      sync.RWMutex
	entries map[string]objectsDomain.ObjectMetadata
}

// Save records metadata for a path, replacing any previous entry.
func (m *MemoryMetadataRepository) Save(ctx context.Context, metadata *objectsDomain.ObjectMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[metadata.Path] = *metadata
	return nil
}

// Get retrieves metadata for a path.
func (m *MemoryMetadataRepository) Get(ctx context.Context, path string) (*objectsDomain.ObjectMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[path]
	if !ok {
		return nil, objectsDomain.ErrMetadataNotFound
	}
	return &entry, nil
}

// Delete removes metadata for a path. Deleting an absent path is not an error.
func (m *MemoryMetadataRepository) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, path)
	return nil
}

// ListPaths returns every path with recorded metadata.
func (m *MemoryMetadataRepository) ListPaths(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.entries))
	for path := range m.entries {
		paths = append(paths, path)
	}
	return paths, nil
}

// NewMemoryMetadataRepository creates an empty in-memory metadata repository.
func NewMemoryMetadataRepository() *MemoryMetadataRepository {
	return &MemoryMetadataRepository{entries: make(map[string]objectsDomain.ObjectMetadata)}
}
