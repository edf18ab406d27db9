package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// MySQLPolicyRepository implements access policy persistence for MySQL
// databases. The policy document is stored as a JSON column.
type MySQLPolicyRepository struct {
	db *sql.DB
}

// Save upserts the policy document for a path.
func (m *MySQLPolicyRepository) Save(
	ctx context.Context,
	path string,
	policy objectsDomain.AccessPolicy,
) error {
	querier := database.GetTx(ctx, m.db)

	document, err := json.Marshal(policy)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode access policy")
	}

	query := `INSERT INTO access_policies (path, document)
			  VALUES (?, ?)
			  ON DUPLICATE KEY UPDATE document = VALUES(document)`

	_, err = querier.ExecContext(ctx, query, path, document)
	if err != nil {
		return apperrors.Wrap(err, "failed to save access policy")
	}
	return nil
}

// Get retrieves the policy for a path.
func (m *MySQLPolicyRepository) Get(
	ctx context.Context,
	path string,
) (objectsDomain.AccessPolicy, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT document FROM access_policies WHERE path = ?`

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
func (m *MySQLPolicyRepository) Delete(ctx context.Context, path string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM access_policies WHERE path = ?`

	_, err := querier.ExecContext(ctx, query, path)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete access policy")
	}
	return nil
}

// ListPaths returns every path with a recorded policy.
func (m *MySQLPolicyRepository) ListPaths(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

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

// NewMySQLPolicyRepository creates a new MySQL policy repository instance.
func NewMySQLPolicyRepository(db *sql.DB) *MySQLPolicyRepository {
	return &MySQLPolicyRepository{db: db}
}
