package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

func newMySQLMockDB(t *testing.T) (*MySQLMetadataRepository, *MySQLPolicyRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewMySQLMetadataRepository(db), NewMySQLPolicyRepository(db), mock
}

func TestMySQLMetadataRepository_SaveAndGet(t *testing.T) {
	metadataRepo, _, mock := newMySQLMockDB(t)
	ctx := context.Background()

	createdAt := time.Now().UTC()
	metadata := &objectsDomain.ObjectMetadata{
		Path:        ".private/42/receipts/abc",
		ContentType: "application/pdf",
		CreatedAt:   createdAt,
	}

	mock.ExpectExec("INSERT INTO object_metadata").
		WithArgs(metadata.Path, metadata.ContentType, metadata.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, metadataRepo.Save(ctx, metadata))

	rows := sqlmock.NewRows([]string{"path", "content_type", "created_at"}).
		AddRow(metadata.Path, metadata.ContentType, createdAt)
	mock.ExpectQuery("SELECT path, content_type, created_at").
		WithArgs(metadata.Path).
		WillReturnRows(rows)

	got, err := metadataRepo.Get(ctx, metadata.Path)
	require.NoError(t, err)
	assert.Equal(t, metadata, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMetadataRepository_Get_NotFound(t *testing.T) {
	metadataRepo, _, mock := newMySQLMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT path, content_type, created_at").
		WithArgs(".private/42/receipts/missing").
		WillReturnRows(sqlmock.NewRows([]string{"path", "content_type", "created_at"}))

	metadata, err := metadataRepo.Get(ctx, ".private/42/receipts/missing")
	assert.Nil(t, metadata)
	assert.ErrorIs(t, err, objectsDomain.ErrMetadataNotFound)
}

func TestMySQLPolicyRepository_SaveAndGet(t *testing.T) {
	_, policyRepo, mock := newMySQLMockDB(t)
	ctx := context.Background()

	policy := objectsDomain.NewPublicPolicy("account-1")
	document, err := json.Marshal(policy)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO access_policies").
		WithArgs(".private/42/receipts/abc", document).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, policyRepo.Save(ctx, ".private/42/receipts/abc", policy))

	rows := sqlmock.NewRows([]string{"document"}).AddRow(document)
	mock.ExpectQuery("SELECT document FROM access_policies").
		WithArgs(".private/42/receipts/abc").
		WillReturnRows(rows)

	got, err := policyRepo.Get(ctx, ".private/42/receipts/abc")
	require.NoError(t, err)
	assert.Equal(t, policy, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLPolicyRepository_Delete(t *testing.T) {
	_, policyRepo, mock := newMySQLMockDB(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM access_policies").
		WithArgs(".private/42/receipts/abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, policyRepo.Delete(ctx, ".private/42/receipts/abc"))
	require.NoError(t, mock.ExpectationsWereMet())
}
