package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRefreshTokenRepository implements RefreshTokenRepository using
// pgxpool. The user_id primary key enforces the single-active-token
// invariant: concurrent refreshes race on the upsert and at most one new
// token survives.
type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository backed by the given connection pool.
func NewRefreshTokenRepository(pool *pgxpool.Pool) RefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

// Save upserts the user's refresh token, replacing any prior one.
func (r *PostgresRefreshTokenRepository) Save(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token_hash = EXCLUDED.token_hash,
		    expires_at = EXCLUDED.expires_at,
		    created_at = NOW()`

	if _, err := r.pool.Exec(ctx, query, userID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}
	return nil
}

// FindValid retrieves the token by hash iff it has not expired.
func (r *PostgresRefreshTokenRepository) FindValid(ctx context.Context, tokenHash string, now time.Time) (*RefreshToken, error) {
	query := `
		SELECT token_hash, user_id, expires_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1`

	var rt RefreshToken
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&rt.TokenHash, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("querying refresh token: %w", err)
	}

	if !now.Before(rt.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	return &rt, nil
}

// Revoke deletes the user's refresh token. No-op if none exists.
func (r *PostgresRefreshTokenRepository) Revoke(ctx context.Context, userID int64) error {
	if _, err := r.pool.Exec(ctx,
		"DELETE FROM refresh_tokens WHERE user_id = $1", userID,
	); err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}
	return nil
}

// DeleteExpired removes all tokens past their expiry, returning the count.
func (r *PostgresRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at <= $1", now,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting expired refresh tokens: %w", err)
	}
	return result.RowsAffected(), nil
}
