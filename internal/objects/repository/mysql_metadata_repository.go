package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// MySQLMetadataRepository implements object metadata persistence for MySQL
// databases.
type MySQLMetadataRepository struct {
	db *sql.DB
}

// Save upserts metadata for a path.
func (m *MySQLMetadataRepository) Save(ctx context.Context, metadata *objectsDomain.ObjectMetadata) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO object_metadata (path, content_type, created_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE content_type = VALUES(content_type), created_at = VALUES(created_at)`

	_, err := querier.ExecContext(ctx, query, metadata.Path, metadata.ContentType, metadata.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to save object metadata")
	}
	return nil
}

// Get retrieves metadata for a path.
func (m *MySQLMetadataRepository) Get(
	ctx context.Context,
	path string,
) (*objectsDomain.ObjectMetadata, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT path, content_type, created_at
			  FROM object_metadata
			  WHERE path = ?`

	var metadata objectsDomain.ObjectMetadata
	err := querier.QueryRowContext(ctx, query, path).Scan(
		&metadata.Path,
		&metadata.ContentType,
		&metadata.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, objectsDomain.ErrMetadataNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get object metadata")
	}

	return &metadata, nil
}

// Delete removes metadata for a path. Deleting an absent path is not an error.
func (m *MySQLMetadataRepository) Delete(ctx context.Context, path string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM object_metadata WHERE path = ?`

	_, err := querier.ExecContext(ctx, query, path)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete object metadata")
	}
	return nil
}

// ListPaths returns every path with recorded metadata.
func (m *MySQLMetadataRepository) ListPaths(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT path FROM object_metadata ORDER BY path`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list object metadata paths")
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan object metadata path")
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate object metadata paths")
	}

	return paths, nil
}

// NewMySQLMetadataRepository creates a new MySQL metadata repository instance.
func NewMySQLMetadataRepository(db *sql.DB) *MySQLMetadataRepository {
	return &MySQLMetadataRepository{db: db}
}
