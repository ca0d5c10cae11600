package faq

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrFAQNotFound is returned when an FAQ record is not found.
var ErrFAQNotFound = errors.New("faq not found")

// Repository provides operations on the faqs table.
type Repository interface {
	Create(ctx context.Context, f *FAQ) error
	GetByID(ctx context.Context, id uuid.UUID) (*FAQ, error)
	List(ctx context.Context) ([]FAQ, error)
	Update(ctx context.Context, f *FAQ) error
	Delete(ctx context.Context, id uuid.UUID) error
}
