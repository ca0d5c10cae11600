package car

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const allColumns = `id, make, model, year, category, price_group,
	license_plate, price_per_day, available, created_at, updated_at`

func scanCar(row pgx.Row) (*Car, error) {
	var c Car
	err := row.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.Category, &c.PriceGroup,
		&c.LicensePlate, &c.PricePerDay, &c.Available,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("scanning car row: %w", err)
	}
	return &c, nil
}

// Create inserts a new car record.
func (r *PostgresRepository) Create(ctx context.Context, c *Car) error {
	query := `
		INSERT INTO cars (make, model, year, category, price_group, license_plate, price_per_day, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.Make, c.Model, c.Year, c.Category, c.PriceGroup,
		c.LicensePlate, c.PricePerDay, c.Available,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePlate
		}
		return fmt.Errorf("inserting car: %w", err)
	}

	return nil
}

// GetByID retrieves a single car by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE id = $1`, allColumns)
	return scanCar(r.pool.QueryRow(ctx, query, id))
}

// List retrieves cars matching the filter, ordered by make and model.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Car, error) {
	var whereClauses []string
	var args []any
	argIdx := 1

	if filter.Category != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Available != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("available = $%d", argIdx))
		args = append(args, *filter.Available)
		argIdx++
	}

	where := ""
	if len(whereClauses) > 0 {
		where = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM cars %s ORDER BY make ASC, model ASC`, allColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cars: %w", err)
	}
	defer rows.Close()

	var cars []Car
	for rows.Next() {
		var c Car
		err := rows.Scan(
			&c.ID, &c.Make, &c.Model, &c.Year, &c.Category, &c.PriceGroup,
			&c.LicensePlate, &c.PricePerDay, &c.Available,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning car row: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating car rows: %w", err)
	}

	if cars == nil {
		cars = []Car{}
	}

	return cars, nil
}

// Update modifies non-nil fields on a car. Returns the updated car.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Car, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	if fields.Make != nil {
		setClauses = append(setClauses, fmt.Sprintf("make = $%d", argIdx))
		args = append(args, *fields.Make)
		argIdx++
	}
	if fields.Model != nil {
		setClauses = append(setClauses, fmt.Sprintf("model = $%d", argIdx))
		args = append(args, *fields.Model)
		argIdx++
	}
	if fields.Year != nil {
		setClauses = append(setClauses, fmt.Sprintf("year = $%d", argIdx))
		args = append(args, *fields.Year)
		argIdx++
	}
	if fields.Category != nil {
		setClauses = append(setClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *fields.Category)
		argIdx++
	}
	if fields.PriceGroup != nil {
		setClauses = append(setClauses, fmt.Sprintf("price_group = $%d", argIdx))
		args = append(args, *fields.PriceGroup)
		argIdx++
	}
	if fields.PricePerDay != nil {
		setClauses = append(setClauses, fmt.Sprintf("price_per_day = $%d", argIdx))
		args = append(args, *fields.PricePerDay)
		argIdx++
	}
	if fields.Available != nil {
		setClauses = append(setClauses, fmt.Sprintf("available = $%d", argIdx))
		args = append(args, *fields.Available)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE cars
		SET %s
		WHERE id = $%d
		RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, allColumns)

	return scanCar(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a car by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting car: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCarNotFound
	}
	return nil
}
