package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses. PENDING moves to CONFIRMED or CANCELLED; CONFIRMED
// may still be CANCELLED.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking represents a row in the bookings table. UserPublicID and
// UserEmail are transient fields populated via a join for display.
type Booking struct {
	ID              uuid.UUID
	UserID          int64
	UserPublicID    uuid.UUID
	UserEmail       string
	CarID           uuid.UUID
	InsurancePlanID *uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	TotalPrice      float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Days returns the number of rental days, minimum one.
func (b *Booking) Days() int {
	days := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}
