package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when a booking record is not found.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBookingOverlap is returned when the car is already booked for an
// overlapping date range.
var ErrBookingOverlap = errors.New("car already booked for these dates")

// Repository provides operations on the bookings table.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error)
}
