package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new FAQ record.
func (r *PostgresRepository) Create(ctx context.Context, f *FAQ) error {
	query := `
		INSERT INTO faqs (question, answer)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, f.Question, f.Answer).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting faq: %w", err)
	}
	return nil
}

// GetByID retrieves a single FAQ by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*FAQ, error) {
	query := `SELECT id, question, answer, created_at, updated_at FROM faqs WHERE id = $1`

	var f FAQ
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&f.ID, &f.Question, &f.Answer, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("querying faq: %w", err)
	}
	return &f, nil
}

// List retrieves all FAQs ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]FAQ, error) {
	query := `SELECT id, question, answer, created_at, updated_at FROM faqs ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing faqs: %w", err)
	}
	defer rows.Close()

	var faqs []FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning faq row: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating faq rows: %w", err)
	}

	if faqs == nil {
		faqs = []FAQ{}
	}

	return faqs, nil
}

// Update persists the FAQ's question and answer.
func (r *PostgresRepository) Update(ctx context.Context, f *FAQ) error {
	result, err := r.pool.Exec(ctx,
		"UPDATE faqs SET question = $2, answer = $3, updated_at = NOW() WHERE id = $1",
		f.ID, f.Question, f.Answer,
	)
	if err != nil {
		return fmt.Errorf("updating faq: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFAQNotFound
	}
	return nil
}

// Delete removes an FAQ by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting faq: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFAQNotFound
	}
	return nil
}
