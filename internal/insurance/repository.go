package insurance

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when an insurance plan record is not found.
var ErrPlanNotFound = errors.New("insurance plan not found")

// ErrDuplicatePlanName is returned when a plan with the same name already exists.
var ErrDuplicatePlanName = errors.New("insurance plan name already exists")

// Repository provides operations on the insurance_plans table.
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	List(ctx context.Context) ([]Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
