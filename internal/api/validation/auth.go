package validation

import "strings"

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Email    string
	Password string
}

// ValidateLoginRequest validates the fields of a login request.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}

// RegisterRequest mirrors the fields needed for registration validation.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ValidateRegisterRequest validates the fields of a registration request.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	var errs []FieldError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !IsValidEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid email address"})
	}

	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if len(req.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if strings.TrimSpace(req.FirstName) == "" {
		errs = append(errs, FieldError{Field: "firstName", Message: "firstName is required"})
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, FieldError{Field: "lastName", Message: "lastName is required"})
	}

	return errs
}
