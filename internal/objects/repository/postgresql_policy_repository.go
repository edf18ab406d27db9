package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// PostgreSQLPolicyRepository implements access policy persistence for
// PostgreSQL databases. The policy document is stored as a JSONB column.
type PostgreSQLPolicyRepository struct {
	db *sql.DB
}

// Save upserts the policy document for a path.
func (p *PostgreSQLPolicyRepository) Save(
	ctx context.Context,
	path string,
	policy objectsDomain.AccessPolicy,
) error {
	querier := database.GetTx(ctx, p.db)

	document, err := json.Marshal(policy)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode access policy")
	}

	query := `INSERT INTO access_policies (path, document)
			  VALUES ($1, $2)
			  ON CONFLICT (path) DO UPDATE SET document = $2`

	_, err = querier.ExecContext(ctx, query, path, document)
	if err != nil {
		return apperrors.Wrap(err, "failed to save access policy")
	}
	return nil
}

// Get retrieves the policy for a path.
func (p *PostgreSQLPolicyRepository) Get(
	ctx context.Context,
	path string,
) (objectsDomain.AccessPolicy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT document FROM access_policies WHERE path = $1`

	var document []byte
	err := querier.QueryRowContext(ctx, query, path).Scan(&document)
	if err != nil {
		if err == sql.ErrNoRows {
			return objectsDomain.AccessPolicy{}, objectsDomain.ErrPolicyNotFound
		}
		return objectsDomain.AccessPolicy{}, apperrors.Wrap(err, "failed to get access policy")
	}

	var policy objectsDomain.AccessPolicy
	if err := json.Unmarshal(document, &policy); err != nil {
		return objectsDomain.AccessPolicy{}, apperrors.Wrap(err, "failed to decode access policy")
	}

	return policy, nil
}

// Delete removes the policy for a path. Deleting an absent path is not an error.
func (p *PostgreSQLPolicyRepository) Delete(ctx context.Context, path string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM access_policies WHERE path = $1`

	_, err := querier.ExecContext(ctx, query, path)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete access policy")
	}
	return nil
}

// ListPaths returns every path with a recorded policy.
func (p *PostgreSQLPolicyRepository) ListPaths(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT path FROM access_policies ORDER BY path`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access policy paths")
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan access policy path")
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate access policy paths")
	}

	return paths, nil
}

// NewPostgreSQLPolicyRepository creates a new PostgreSQL policy repository instance.
func NewPostgreSQLPolicyRepository(db *sql.DB) *PostgreSQLPolicyRepository {
	return &PostgreSQLPolicyRepository{db: db}
}
