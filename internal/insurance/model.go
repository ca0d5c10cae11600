package insurance

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents a row in the insurance_plans table.
type Plan struct {
	ID             uuid.UUID
	Name           string
	Description    string
	DailyRate      float64
	CoverageAmount float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
