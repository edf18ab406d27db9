// Package mocks provides mock implementations for testing object storage
// use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// MockBlobBackend is a mock implementation of BlobBackend for testing.
type MockBlobBackend struct {
	mock.Mock
}

// Upload mocks the Upload method of BlobBackend.
func (m *MockBlobBackend) Upload(ctx context.Context, path, contentType string, content []byte) error {
	args := m.Called(ctx, path, contentType, content)
	return args.Error(0)
}

// Download mocks the Download method of BlobBackend.
func (m *MockBlobBackend) Download(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Delete mocks the Delete method of BlobBackend.
func (m *MockBlobBackend) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// Exists mocks the Exists method of BlobBackend.
func (m *MockBlobBackend) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// List mocks the List method of BlobBackend.
func (m *MockBlobBackend) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMetadataRepository is a mock implementation of MetadataRepository for testing.
type MockMetadataRepository struct {
	mock.Mock
}

// Save mocks the Save method of MetadataRepository.
func (m *MockMetadataRepository) Save(ctx context.Context, metadata *objectsDomain.ObjectMetadata) error {
	args := m.Called(ctx, metadata)
	return args.Error(0)
}

// Get mocks the Get method of MetadataRepository.
func (m *MockMetadataRepository) Get(ctx context.Context, path string) (*objectsDomain.ObjectMetadata, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*objectsDomain.ObjectMetadata), args.Error(1)
}

// Delete mocks the Delete method of MetadataRepository.
func (m *MockMetadataRepository) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// ListPaths mocks the ListPaths method of MetadataRepository.
func (m *MockMetadataRepository) ListPaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPolicyRepository is a mock implementation of PolicyRepository for testing.
type MockPolicyRepository struct {
	mock.Mock
}

// Save mocks the Save method of PolicyRepository.
func (m *MockPolicyRepository) Save(ctx context.Context, path string, policy objectsDomain.AccessPolicy) error {
	args := m.Called(ctx, path, policy)
	return args.Error(0)
}

// Get mocks the Get method of PolicyRepository.
func (m *MockPolicyRepository) Get(ctx context.Context, path string) (objectsDomain.AccessPolicy, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(objectsDomain.AccessPolicy), args.Error(1)
}

// Delete mocks the Delete method of PolicyRepository.
func (m *MockPolicyRepository) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// ListPaths mocks the ListPaths method of PolicyRepository.
func (m *MockPolicyRepository) ListPaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
