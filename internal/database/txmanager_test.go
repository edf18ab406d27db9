package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func TestNewTxManager(t *testing.T) {
	db, _ := newMockDB(t)

	txManager := NewTxManager(db)
	assert.NotNil(t, txManager)
	assert.IsType(t, &sqlTxManager{}, txManager)
}

func TestWithTx_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	txManager := NewTxManager(db)
	ctx := context.Background()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		// The transaction must be carried in the context.
		tx := ctx.Value(txKey{})
		assert.NotNil(t, tx)
		assert.IsType(t, &sql.Tx{}, tx)
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	txManager := NewTxManager(db)
	ctx := context.Background()

	testError := assert.AnError
	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		return testError
	})

	assert.Equal(t, testError, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTx(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	// Without a transaction the querier is the connection itself.
	querier := GetTx(ctx, db)
	assert.Equal(t, db, querier)

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := context.WithValue(ctx, txKey{}, tx)
	querier = GetTx(txCtx, db)
	assert.Equal(t, tx, querier)
}

func TestNoOpTxManager(t *testing.T) {
	txManager := NewNoOpTxManager()
	ctx := context.Background()

	called := false
	err := txManager.WithTx(ctx, func(fnCtx context.Context) error {
		called = true
		// No transaction is injected.
		assert.Nil(t, fnCtx.Value(txKey{}))
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)

	err = txManager.WithTx(ctx, func(context.Context) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}
