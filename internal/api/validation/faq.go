package validation

import "strings"

// FAQRequest mirrors the fields needed for FAQ create/update validation.
type FAQRequest struct {
	Question string
	Answer   string
}

// ValidateFAQRequest validates the fields of an FAQ create or update request.
func ValidateFAQRequest(req FAQRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Question) == "" {
		errs = append(errs, FieldError{Field: "question", Message: "question is required"})
	}
	if strings.TrimSpace(req.Answer) == "" {
		errs = append(errs, FieldError{Field: "answer", Message: "answer is required"})
	}

	return errs
}
