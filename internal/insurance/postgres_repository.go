package insurance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const allColumns = `id, name, description, daily_rate, coverage_amount, created_at, updated_at`

func scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.DailyRate, &p.CoverageAmount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("scanning insurance plan row: %w", err)
	}
	return &p, nil
}

// Create inserts a new insurance plan record.
func (r *PostgresRepository) Create(ctx context.Context, p *Plan) error {
	query := `
		INSERT INTO insurance_plans (name, description, daily_rate, coverage_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Description, p.DailyRate, p.CoverageAmount,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePlanName
		}
		return fmt.Errorf("inserting insurance plan: %w", err)
	}

	return nil
}

// GetByID retrieves a single insurance plan by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM insurance_plans WHERE id = $1`, allColumns)
	return scanPlan(r.pool.QueryRow(ctx, query, id))
}

// List retrieves all insurance plans ordered by daily rate.
func (r *PostgresRepository) List(ctx context.Context) ([]Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM insurance_plans ORDER BY daily_rate ASC`, allColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing insurance plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.DailyRate, &p.CoverageAmount,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning insurance plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating insurance plan rows: %w", err)
	}

	if plans == nil {
		plans = []Plan{}
	}

	return plans, nil
}

// Delete removes an insurance plan by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM insurance_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting insurance plan: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}
