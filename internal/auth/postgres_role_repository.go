package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRoleRepository implements RoleRepository using pgxpool.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository backed by the given connection pool.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

// FindByName retrieves a role by name.
func (r *PostgresRoleRepository) FindByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		"SELECT id, name FROM roles WHERE name = $1", name,
	).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("querying role: %w", err)
	}
	return &role, nil
}

// Create inserts a new role. Concurrent seeders racing on the same name
// fall back to the winner's row via the name unique constraint.
func (r *PostgresRoleRepository) Create(ctx context.Context, role *Role) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	if err := r.pool.QueryRow(ctx, query, role.Name).Scan(&role.ID); err != nil {
		return fmt.Errorf("inserting role: %w", err)
	}
	return nil
}
