package validation

import (
	"fmt"
	"strings"
	"time"
)

// carCategories are the admissible values for a car's category.
var carCategories = map[string]bool{
	"ECONOMY": true,
	"COMPACT": true,
	"SUV":     true,
	"LUXURY":  true,
	"VAN":     true,
}

// CreateCarRequest mirrors the fields needed for create car validation.
type CreateCarRequest struct {
	Make         string
	Model        string
	Year         int
	Category     string
	PriceGroup   string
	LicensePlate string
	PricePerDay  float64
}

// ValidateCreateCarRequest validates the fields of a create car request.
func ValidateCreateCarRequest(req CreateCarRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Make) == "" {
		errs = append(errs, FieldError{Field: "make", Message: "make is required"})
	}
	if strings.TrimSpace(req.Model) == "" {
		errs = append(errs, FieldError{Field: "model", Message: "model is required"})
	}

	maxYear := time.Now().Year() + 1
	if req.Year < 1950 || req.Year > maxYear {
		errs = append(errs, FieldError{Field: "year", Message: fmt.Sprintf("year must be between 1950 and %d", maxYear)})
	}

	if req.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	} else if !carCategories[req.Category] {
		errs = append(errs, FieldError{Field: "category", Message: "category must be one of ECONOMY, COMPACT, SUV, LUXURY, VAN"})
	}

	if strings.TrimSpace(req.LicensePlate) == "" {
		errs = append(errs, FieldError{Field: "licensePlate", Message: "licensePlate is required"})
	}

	if req.PricePerDay <= 0 {
		errs = append(errs, FieldError{Field: "pricePerDay", Message: "pricePerDay must be greater than zero"})
	}

	return errs
}
