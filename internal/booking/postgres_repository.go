package booking

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

const allColumns = `b.id, b.user_id, u.public_id, u.email, b.car_id,
	b.insurance_plan_id, b.start_date, b.end_date, b.status,
	b.total_price, b.created_at, b.updated_at`

const fromClause = `FROM bookings b JOIN users u ON b.user_id = u.id`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.UserPublicID, &b.UserEmail, &b.CarID,
		&b.InsurancePlanID, &b.StartDate, &b.EndDate, &b.Status,
		&b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("scanning booking row: %w", err)
	}
	return &b, nil
}

// Create inserts a new booking. The car row is locked for the duration
// of the transaction so two concurrent bookings for the same car cannot
// both pass the overlap check.
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var carID uuid.UUID
	err = tx.QueryRow(ctx,
		"SELECT id FROM cars WHERE id = $1 FOR UPDATE", b.CarID,
	).Scan(&carID)
	if err != nil {
		return fmt.Errorf("locking car row: %w", err)
	}

	var overlapping int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM bookings
		WHERE car_id = $1
		  AND status <> $2
		  AND start_date < $4
		  AND end_date > $3`,
		b.CarID, StatusCancelled, b.StartDate, b.EndDate,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("checking booking overlap: %w", err)
	}
	if overlapping > 0 {
		return ErrBookingOverlap
	}

	query := `
		INSERT INTO bookings (user_id, car_id, insurance_plan_id, start_date, end_date, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		b.UserID, b.CarID, b.InsurancePlanID,
		b.StartDate, b.EndDate, b.Status, b.TotalPrice,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a single booking by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE b.id = $1`, allColumns, fromClause)
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

// List retrieves all bookings ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Booking, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY b.created_at DESC`, allColumns, fromClause)
	return r.queryMany(ctx, query)
}

// ListByUser retrieves the user's bookings, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Booking, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE b.user_id = $1 ORDER BY b.created_at DESC`, allColumns, fromClause)
	return r.queryMany(ctx, query, userID)
}

// UpdateStatus sets the booking status and returns the updated record.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error) {
	result, err := r.pool.Exec(ctx,
		"UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1",
		id, status,
	)
	if err != nil {
		return nil, fmt.Errorf("updating booking status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrBookingNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.UserPublicID, &b.UserEmail, &b.CarID,
			&b.InsurancePlanID, &b.StartDate, &b.EndDate, &b.Status,
			&b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	if bookings == nil {
		bookings = []Booking{}
	}

	return bookings, nil
}
