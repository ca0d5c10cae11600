package car

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCarNotFound is returned when a car record is not found.
var ErrCarNotFound = errors.New("car not found")

// ErrDuplicatePlate is returned when a car with the same license plate already exists.
var ErrDuplicatePlate = errors.New("license plate already exists")

// Repository provides operations on the cars table.
type Repository interface {
	Create(ctx context.Context, car *Car) error
	GetByID(ctx context.Context, id uuid.UUID) (*Car, error)
	List(ctx context.Context, filter ListFilter) ([]Car, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
