package faq

import (
	"time"

	"github.com/google/uuid"
)

// FAQ represents a row in the faqs table.
type FAQ struct {
	ID        uuid.UUID
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
