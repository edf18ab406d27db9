package repository

import (
	"context"
	"sync"

	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// MemoryPolicyRepository keeps access policies in process memory, keyed by
// storage path. Safe for concurrent use.
type MemoryPolicyRepository struct {
	mu      sync.RWMutex
	entries map[string]objectsDomain.AccessPolicy
}

// Save records the policy for a path, replacing any previous entry.
func (m *MemoryPolicyRepository) Save(ctx context.Context, path string, policy objectsDomain.AccessPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[path] = policy
	return nil
}

// Get retrieves the policy for a path.
func (m *MemoryPolicyRepository) Get(ctx context.Context, path string) (objectsDomain.AccessPolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	policy, ok := m.entries[path]
	if !ok {
		return objectsDomain.AccessPolicy{}, objectsDomain.ErrPolicyNotFound
	}
	return policy, nil
}

// Delete removes the policy for a path. Deleting an absent path is not an error.
func (m *MemoryPolicyRepository) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, path)
	return nil
}

// ListPaths returns every path with a recorded policy.
func (m *MemoryPolicyRepository) ListPaths(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.entries))
	for path := range m.entries {
		paths = append(paths, path)
	}
	return paths, nil
}

// NewMemoryPolicyRepository creates an empty in-memory policy repository.
func NewMemoryPolicyRepository() *MemoryPolicyRepository {
	return &MemoryPolicyRepository{entries: make(map[string]objectsDomain.AccessPolicy)}
}
