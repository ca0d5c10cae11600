package car

import (
	"time"

	"github.com/google/uuid"
)

// Car represents a row in the cars table.
type Car struct {
	ID           uuid.UUID
	Make         string
	Model        string
	Year         int
	Category     string
	PriceGroup   string
	LicensePlate string
	PricePerDay  float64
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateFields holds optional fields for a partial car update.
// Nil fields are not updated.
type UpdateFields struct {
	Make        *string
	Model       *string
	Year        *int
	Category    *string
	PriceGroup  *string
	PricePerDay *float64
	Available   *bool
}

// ListFilter narrows a car listing. Nil fields match everything.
type ListFilter struct {
	Category  *string
	Available *bool
}
