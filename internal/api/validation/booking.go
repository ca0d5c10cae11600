package validation

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// CreateBookingRequest mirrors the fields needed for create booking validation.
type CreateBookingRequest struct {
	CarID           string
	InsurancePlanID string
	StartDate       string
	EndDate         string
}

// ValidateCreateBookingRequest validates a create booking request and
// returns the parsed dates when they are well-formed. A start date in
// the past or not before the end date is an invalid date range.
func ValidateCreateBookingRequest(req CreateBookingRequest, now time.Time) (start, end time.Time, errs []FieldError) {
	if req.CarID == "" {
		errs = append(errs, FieldError{Field: "carId", Message: "carId is required"})
	} else if _, err := uuid.Parse(req.CarID); err != nil {
		errs = append(errs, FieldError{Field: "carId", Message: "carId must be a valid UUID"})
	}

	if req.InsurancePlanID != "" {
		if _, err := uuid.Parse(req.InsurancePlanID); err != nil {
			errs = append(errs, FieldError{Field: "insurancePlanId", Message: "insurancePlanId must be a valid UUID"})
		}
	}

	var startErr, endErr error
	if req.StartDate == "" {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate is required"})
	} else if start, startErr = time.Parse(DateLayout, req.StartDate); startErr != nil {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate must be formatted as YYYY-MM-DD"})
	}

	if req.EndDate == "" {
		errs = append(errs, FieldError{Field: "endDate", Message: "endDate is required"})
	} else if end, endErr = time.Parse(DateLayout, req.EndDate); endErr != nil {
		errs = append(errs, FieldError{Field: "endDate", Message: "endDate must be formatted as YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate must not be in the past"})
	}
	if !start.Before(end) {
		errs = append(errs, FieldError{Field: "endDate", Message: "endDate must be after startDate"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	return start, end, nil
}
