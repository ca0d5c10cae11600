package validation

import "strings"

// CreatePlanRequest mirrors the fields needed for insurance plan validation.
type CreatePlanRequest struct {
	Name           string
	DailyRate      float64
	CoverageAmount float64
}

// ValidateCreatePlanRequest validates the fields of a create insurance plan request.
func ValidateCreatePlanRequest(req CreatePlanRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if req.DailyRate < 0 {
		errs = append(errs, FieldError{Field: "dailyRate", Message: "dailyRate must not be negative"})
	}
	if req.CoverageAmount <= 0 {
		errs = append(errs, FieldError{Field: "coverageAmount", Message: "coverageAmount must be greater than zero"})
	}

	return errs
}
