package validation

// userRoles are the admissible role names.
var userRoles = map[string]bool{
	"USER":       true,
	"ADMIN":      true,
	"SUPERADMIN": true,
}

// UpdateUserRolesRequest mirrors the fields needed for role update validation.
type UpdateUserRolesRequest struct {
	Roles []string
}

// ValidateUpdateUserRolesRequest validates the fields of a role update request.
func ValidateUpdateUserRolesRequest(req UpdateUserRolesRequest) []FieldError {
	var errs []FieldError

	if len(req.Roles) == 0 {
		errs = append(errs, FieldError{Field: "roles", Message: "at least one role is required"})
		return errs
	}

	for _, r := range req.Roles {
		if !userRoles[r] {
			errs = append(errs, FieldError{Field: "roles", Message: "roles must be drawn from USER, ADMIN, SUPERADMIN"})
			break
		}
	}

	return errs
}
