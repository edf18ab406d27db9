package commands

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/receiptvault/internal/crypto/domain"
)

type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (cryptoDomain.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoDomain.KMSKeeper), args.Error(1)
}

type MockKMSKeeper struct {
	mock.Mock
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

func TestRunCreateSecretKey(t *testing.T) {
	ctx := context.Background()

	t.Run("plain-hex-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateSecretKey(ctx, nil, &out, "", "")
		require.NoError(t, err)

		matches := regexp.MustCompile(`SECRET_KEY="([0-9a-f]{64})"`).FindStringSubmatch(out.String())
		require.Len(t, matches, 2)

		key, err := hex.DecodeString(matches[1])
		require.NoError(t, err)
		require.Len(t, key, 32)
	})

	t.Run("distinct-keys", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, RunCreateSecretKey(ctx, nil, &first, "", ""))
		require.NoError(t, RunCreateSecretKey(ctx, nil, &second, "", ""))
		require.NotEqual(t, first.String(), second.String())
	})

	t.Run("kms-mode", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("encrypted"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreateSecretKey(ctx, mockService, &out, "localsecrets", "base64key://...")
		require.NoError(t, err)
		require.Contains(t, out.String(), "KMS_PROVIDER=\"localsecrets\"")
		require.Contains(t, out.String(), "KMS_KEY_URI=\"base64key://...\"")
		require.Contains(t, out.String(), "SECRET_KEY=\"ZW5jcnlwdGVk\"")

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("mismatched-kms-parameters", func(t *testing.T) {
		err := RunCreateSecretKey(ctx, nil, nil, "localsecrets", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be set together")
	})

	t.Run("kms-error", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "invalid").Return(nil, errors.New("kms error"))

		err := RunCreateSecretKey(ctx, mockService, &bytes.Buffer{}, "localsecrets", "invalid")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to open KMS keeper")

		mockService.AssertExpectations(t)
	})

	t.Run("encrypt-error", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).
			Return([]byte(nil), errors.New("encrypt error"))
		mockKeeper.On("Close").Return(nil)

		err := RunCreateSecretKey(ctx, mockService, &bytes.Buffer{}, "localsecrets", "base64key://...")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to encrypt secret key")

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})
}
