package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
	objectsRepository "github.com/allisson/receiptvault/internal/objects/repository"
	objectsService "github.com/allisson/receiptvault/internal/objects/service"
	objectsUsecaseMocks "github.com/allisson/receiptvault/internal/objects/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testPrivateRoot = ".private"

// newTestGateway wires a gateway over an in-memory bucket and repositories.
func newTestGateway(t *testing.T) (Gateway, *objectsRepository.MemoryMetadataRepository, *objectsRepository.MemoryPolicyRepository) {
	t.Helper()

	backend, err := objectsService.NewBlobStore(context.Background(), "mem://", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	metadataRepo := objectsRepository.NewMemoryMetadataRepository()
	policyRepo := objectsRepository.NewMemoryPolicyRepository()

	gateway := NewGatewayUseCase(
		backend,
		metadataRepo,
		policyRepo,
		database.NewNoOpTxManager(),
		testPrivateRoot,
	)
	return gateway, metadataRepo, policyRepo
}

func TestGatewayUseCase_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores object under account-scoped receipts path", func(t *testing.T) {
		gateway, metadataRepo, policyRepo := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			ContentType:  "image/png",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\.private/42/receipts/[0-9a-f-]{36}$`), path)

		metadata, err := metadataRepo.Get(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "image/png", metadata.ContentType)
		assert.WithinDuration(t, time.Now().UTC(), metadata.CreatedAt, 2*time.Second)

		policy, err := policyRepo.Get(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "account-42", policy.Owner)
		assert.Equal(t, objectsDomain.VisibilityPrivate, policy.Visibility)
	})

	t.Run("consecutive uploads get distinct paths", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		input := UploadInput{AccountScope: "42", OwnerID: "account-42", Content: []byte("data")}
		first, err := gateway.Upload(ctx, input)
		require.NoError(t, err)
		second, err := gateway.Upload(ctx, input)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		_, err := gateway.Upload(ctx, UploadInput{AccountScope: "42", OwnerID: "account-42"})
		assert.ErrorIs(t, err, objectsDomain.ErrEmptyContent)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("invalid account scope is rejected", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		for _, scope := range []string{"", "42/99", ".", ".."} {
			_, err := gateway.Upload(ctx, UploadInput{AccountScope: scope, OwnerID: "x", Content: []byte("data")})
			assert.ErrorIs(t, err, objectsDomain.ErrInvalidAccountScope)
		}
	})

	t.Run("missing content type falls back to default", func(t *testing.T) {
		gateway, metadataRepo, _ := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{AccountScope: "42", OwnerID: "account-42", Content: []byte("data")})
		require.NoError(t, err)

		metadata, err := metadataRepo.Get(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, objectsDomain.DefaultContentType, metadata.ContentType)
	})

	t.Run("explicit policy overrides visibility default", func(t *testing.T) {
		gateway, _, policyRepo := newTestGateway(t)

		policy := objectsDomain.NewPrivatePolicy("account-42")
		policy.Grant("account-99", objectsDomain.PermissionRead)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("data"),
			Policy:       &policy,
		})
		require.NoError(t, err)

		stored, err := policyRepo.Get(ctx, path)
		require.NoError(t, err)
		assert.True(t, stored.Allows("account-99", objectsDomain.PermissionRead))
	})
}

func TestGatewayUseCase_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can download a private object", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			ContentType:  "image/png",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)

		output, err := gateway.Download(ctx, path, "account-42")
		require.NoError(t, err)
		assert.Equal(t, []byte("receipt bytes"), output.Content)
		assert.Equal(t, "image/png", output.ContentType)
		assert.Equal(t, objectsDomain.CacheControlPrivate, output.CacheControl)
	})

	t.Run("foreign requester is denied", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)

		output, err := gateway.Download(ctx, path, "account-99")
		assert.Nil(t, output)
		assert.ErrorIs(t, err, objectsDomain.ErrAccessDenied)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("anonymous requester is denied on private objects", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)

		_, err = gateway.Download(ctx, path, "")
		assert.ErrorIs(t, err, objectsDomain.ErrAccessDenied)
	})

	t.Run("public object is readable by anyone with public cache directive", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("logo bytes"),
			Visibility:   objectsDomain.VisibilityPublic,
		})
		require.NoError(t, err)

		output, err := gateway.Download(ctx, path, "")
		require.NoError(t, err)
		assert.Equal(t, []byte("logo bytes"), output.Content)
		assert.Equal(t, objectsDomain.CacheControlPublic, output.CacheControl)
	})

	t.Run("grantee can download", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		policy := objectsDomain.NewPrivatePolicy("account-42")
		policy.Grant("account-99", objectsDomain.PermissionRead)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("shared receipt"),
			Policy:       &policy,
		})
		require.NoError(t, err)

		output, err := gateway.Download(ctx, path, "account-99")
		require.NoError(t, err)
		assert.Equal(t, []byte("shared receipt"), output.Content)
	})

	t.Run("missing object returns not found before ACL", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		output, err := gateway.Download(ctx, ".private/42/receipts/missing", "account-42")
		assert.Nil(t, output)
		assert.ErrorIs(t, err, objectsDomain.ErrObjectNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("private object without policy is unreadable", func(t *testing.T) {
		gateway, _, policyRepo := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)
		require.NoError(t, policyRepo.Delete(ctx, path))

		_, err = gateway.Download(ctx, path, "account-42")
		assert.ErrorIs(t, err, objectsDomain.ErrAccessDenied)
	})

	t.Run("lost metadata degrades to default content type", func(t *testing.T) {
		gateway, metadataRepo, _ := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			ContentType:  "image/png",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)
		require.NoError(t, metadataRepo.Delete(ctx, path))

		output, err := gateway.Download(ctx, path, "account-42")
		require.NoError(t, err)
		assert.Equal(t, objectsDomain.DefaultContentType, output.ContentType)
		assert.Equal(t, []byte("receipt bytes"), output.Content)
	})
}

func TestGatewayUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes blob, metadata, and policy", func(t *testing.T) {
		gateway, metadataRepo, policyRepo := newTestGateway(t)

		path, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("receipt bytes"),
		})
		require.NoError(t, err)

		require.NoError(t, gateway.Delete(ctx, path))

		_, err = gateway.Download(ctx, path, "account-42")
		assert.ErrorIs(t, err, objectsDomain.ErrObjectNotFound)

		_, err = metadataRepo.Get(ctx, path)
		assert.ErrorIs(t, err, objectsDomain.ErrMetadataNotFound)

		_, err = policyRepo.Get(ctx, path)
		assert.ErrorIs(t, err, objectsDomain.ErrPolicyNotFound)
	})

	t.Run("deleting an absent object is idempotent", func(t *testing.T) {
		gateway, _, _ := newTestGateway(t)

		assert.NoError(t, gateway.Delete(ctx, ".private/42/receipts/missing"))
	})
}

func TestGatewayUseCase_NormalizePath(t *testing.T) {
	gateway, _, _ := newTestGateway(t)

	assert.Equal(t, "/objects/42/receipts/abc", gateway.NormalizePath(".private/42/receipts/abc"))
	assert.Equal(t, "public/logos/acme.png", gateway.NormalizePath("public/logos/acme.png"))
}

func TestGatewayUseCase_BackendFailures(t *testing.T) {
	ctx := context.Background()
	backendErr := apperrors.Wrap(apperrors.ErrBackend, "connection refused")

	t.Run("upload backend failure propagates and skips state writes", func(t *testing.T) {
		mockBackend := &objectsUsecaseMocks.MockBlobBackend{}
		mockMetadataRepo := &objectsUsecaseMocks.MockMetadataRepository{}
		mockPolicyRepo := &objectsUsecaseMocks.MockPolicyRepository{}

		mockBackend.On("Upload", mock.Anything, mock.Anything, "image/png", mock.Anything).
			Return(backendErr).Once()

		gateway := NewGatewayUseCase(
			mockBackend, mockMetadataRepo, mockPolicyRepo,
			database.NewNoOpTxManager(), testPrivateRoot,
		)

		_, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			ContentType:  "image/png",
			Content:      []byte("data"),
		})
		assert.ErrorIs(t, err, apperrors.ErrBackend)

		mockBackend.AssertExpectations(t)
		mockMetadataRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		mockPolicyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("metadata save failure surfaces as wrapped error", func(t *testing.T) {
		mockBackend := &objectsUsecaseMocks.MockBlobBackend{}
		mockMetadataRepo := &objectsUsecaseMocks.MockMetadataRepository{}
		mockPolicyRepo := &objectsUsecaseMocks.MockPolicyRepository{}

		mockBackend.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Once()
		mockMetadataRepo.On("Save", mock.Anything, mock.Anything).
			Return(errors.New("write failed")).Once()

		gateway := NewGatewayUseCase(
			mockBackend, mockMetadataRepo, mockPolicyRepo,
			database.NewNoOpTxManager(), testPrivateRoot,
		)

		_, err := gateway.Upload(ctx, UploadInput{
			AccountScope: "42",
			OwnerID:      "account-42",
			Content:      []byte("data"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record object state")
		mockBackend.AssertExpectations(t)
		mockMetadataRepo.AssertExpectations(t)
	})

	t.Run("delete stops on blob failure before touching state", func(t *testing.T) {
		mockBackend := &objectsUsecaseMocks.MockBlobBackend{}
		mockMetadataRepo := &objectsUsecaseMocks.MockMetadataRepository{}
		mockPolicyRepo := &objectsUsecaseMocks.MockPolicyRepository{}

		mockBackend.On("Delete", mock.Anything, ".private/42/receipts/abc").
			Return(backendErr).Once()

		gateway := NewGatewayUseCase(
			mockBackend, mockMetadataRepo, mockPolicyRepo,
			database.NewNoOpTxManager(), testPrivateRoot,
		)

		err := gateway.Delete(ctx, ".private/42/receipts/abc")
		assert.ErrorIs(t, err, apperrors.ErrBackend)
		mockMetadataRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockPolicyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("timeout classification reaches the caller", func(t *testing.T) {
		mockBackend := &objectsUsecaseMocks.MockBlobBackend{}
		mockMetadataRepo := &objectsUsecaseMocks.MockMetadataRepository{}
		mockPolicyRepo := &objectsUsecaseMocks.MockPolicyRepository{}

		mockBackend.On("Exists", mock.Anything, ".private/42/receipts/abc").
			Return(false, objectsDomain.ErrBackendTimeout).Once()

		gateway := NewGatewayUseCase(
			mockBackend, mockMetadataRepo, mockPolicyRepo,
			database.NewNoOpTxManager(), testPrivateRoot,
		)

		_, err := gateway.Download(ctx, ".private/42/receipts/abc", "account-42")
		assert.ErrorIs(t, err, objectsDomain.ErrBackendTimeout)
		assert.ErrorIs(t, err, apperrors.ErrBackend)
	})
}
