package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// PostgreSQLMetadataRepository implements object metadata persistence for
// PostgreSQL databases.
type PostgreSQLMetadataRepository struct {
	db *sql.DB
}

// Save upserts metadata for a path.
func (p *PostgreSQLMetadataRepository) Save(ctx context.Context, metadata *objectsDomain.ObjectMetadata) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO object_metadata (path, content_type, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (path) DO UPDATE SET content_type = $2, created_at = $3`

	_, err := querier.ExecContext(ctx, query, metadata.Path, metadata.ContentType, metadata.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to save object metadata")
	}
	return nil
}

// Get retrieves metadata for a path.
func (p *PostgreSQLMetadataRepository) Get(
	ctx context.Context,
	path string,
) (*objectsDomain.ObjectMetadata, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT path, content_type, created_at
			  FROM object_metadata
			  WHERE path = $1`

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
func (p *PostgreSQLMetadataRepository) Delete(ctx context.Context, path string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM object_metadata WHERE path = $1`

	_, err := querier.ExecContext(ctx, query, path)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete object metadata")
	}
	return nil
}

// ListPaths returns every path with recorded metadata.
func (p *PostgreSQLMetadataRepository) ListPaths(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

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

// NewPostgreSQLMetadataRepository creates a new PostgreSQL metadata repository instance.
func NewPostgreSQLMetadataRepository(db *sql.DB) *PostgreSQLMetadataRepository {
	return &PostgreSQLMetadataRepository{db: db}
}
