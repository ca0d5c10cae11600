package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when creating a user with an email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrRoleNotFound is returned when a role record is not found.
var ErrRoleNotFound = errors.New("role not found")

// ErrTokenNotFound is returned when a refresh token is not in the store.
var ErrTokenNotFound = errors.New("refresh token not found")

// ErrTokenExpired is returned when a refresh token exists but has expired.
var ErrTokenExpired = errors.New("refresh token expired")

// UserRepository provides operations on the users table. Lookups return
// soft-deleted users with the Deleted flag set; callers decide whether a
// deleted user counts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPublicID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
}

// RoleRepository provides operations on the roles table.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*Role, error)
	Create(ctx context.Context, role *Role) error
}

// RefreshTokenRepository persists at most one refresh token per user.
// Save replaces any prior token for the user, which is what makes
// rotation safe: after a replacement the old hash can no longer be found.
type RefreshTokenRepository interface {
	Save(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	FindValid(ctx context.Context, tokenHash string, now time.Time) (*RefreshToken, error)
	Revoke(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
