package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role names are a fixed set; roles are rows so users can reference them.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
)

// Auth providers. Local users carry a password hash, federated users do not.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)

// Role represents a row in the roles table.
type Role struct {
	ID   int64
	Name string
}

// User represents a row in the users table. PublicID is the only
// identifier exposed outside the service; ID stays internal.
type User struct {
	ID           int64
	PublicID     uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Provider     string
	Roles        []Role
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the role names in declaration order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}

// RefreshToken represents a row in the refresh_tokens table. Only the
// sha256 hash of the raw value is stored; the raw value lives in the
// client's cookie.
type RefreshToken struct {
	TokenHash string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Identity is stored in the request context after bearer authentication.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Roles  []string
}

// HasRole reports whether the identity carries the named role.
func (i *Identity) HasRole(name string) bool {
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}
