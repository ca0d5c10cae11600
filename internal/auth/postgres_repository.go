package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresUserRepository implements UserRepository using pgxpool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository backed by the given connection pool.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create inserts a new user and its role links in one transaction.
func (r *PostgresUserRepository) Create(ctx context.Context, u *User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (email, first_name, last_name, password_hash, provider, deleted)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, public_id, created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.Provider,
	).Scan(&u.ID, &u.PublicID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	for _, role := range u.Roles {
		if _, err := tx.Exec(ctx,
			"INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)",
			u.ID, role.ID,
		); err != nil {
			return fmt.Errorf("linking role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a user by internal id, including soft-deleted ones.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by email, including soft-deleted ones.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "email = $1", email)
}

// GetByPublicID retrieves a user by public UUID, including soft-deleted ones.
func (r *PostgresUserRepository) GetByPublicID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getOne(ctx, "public_id = $1", id)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where string, arg any) (*User, error) {
	query := `
		SELECT id, public_id, email, first_name, last_name, password_hash,
		       provider, deleted, created_at, updated_at
		FROM users
		WHERE ` + where

	var u User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.PublicID, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Provider, &u.Deleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if u.Roles, err = r.loadRoles(ctx, u.ID); err != nil {
		return nil, err
	}

	return &u, nil
}

// List retrieves all users ordered by creation time.
func (r *PostgresUserRepository) List(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, public_id, email, first_name, last_name, password_hash,
		       provider, deleted, created_at, updated_at
		FROM users
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		err := rows.Scan(
			&u.ID, &u.PublicID, &u.Email, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.Provider, &u.Deleted, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	for i := range users {
		if users[i].Roles, err = r.loadRoles(ctx, users[i].ID); err != nil {
			return nil, err
		}
	}

	if users == nil {
		users = []User{}
	}

	return users, nil
}

// Update persists the user's mutable fields and replaces its role links
// in one transaction.
func (r *PostgresUserRepository) Update(ctx context.Context, u *User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, password_hash = $4,
		    deleted = $5, updated_at = NOW()
		WHERE id = $1`

	result, err := tx.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.PasswordHash, u.Deleted,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM user_roles WHERE user_id = $1", u.ID); err != nil {
		return fmt.Errorf("clearing roles: %w", err)
	}
	for _, role := range u.Roles {
		if _, err := tx.Exec(ctx,
			"INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)",
			u.ID, role.ID,
		); err != nil {
			return fmt.Errorf("linking role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) loadRoles(ctx context.Context, userID int64) ([]Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("loading roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scanning role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating role rows: %w", err)
	}

	return roles, nil
}
