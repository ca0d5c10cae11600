package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrAuthenticationFailed is returned on bad credentials. Absent users,
// soft-deleted users and password mismatches are indistinguishable to
// the caller.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrInvalidToken is returned when a refresh token is unknown, expired
// or already rotated away. Terminal for that token: the client must log
// in again.
var ErrInvalidToken = errors.New("invalid refresh token")

// Service orchestrates the session lifecycle: login, refresh-token
// rotation, logout, and federated user provisioning.
type Service struct {
	users      UserRepository
	roles      RoleRepository
	tokens     RefreshTokenRepository
	hasher     PasswordHasher
	issuer     *TokenIssuer
	refreshTTL time.Duration
}

// NewService creates a new session Service.
func NewService(users UserRepository, roles RoleRepository, tokens RefreshTokenRepository, hasher PasswordHasher, issuer *TokenIssuer, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		roles:      roles,
		tokens:     tokens,
		hasher:     hasher,
		issuer:     issuer,
		refreshTTL: refreshTTL,
	}
}

// Session is the result of a successful login or refresh. RefreshToken
// holds the raw value destined for the HTTP-only cookie; it is never
// persisted in this form.
type Session struct {
	User                 *User
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         string
	RefreshExpiresAt     time.Time
}

// VerifyCredentials resolves email+password to an active user.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if u.Deleted || u.PasswordHash == "" || !s.hasher.Matches(password, u.PasswordHash) {
		return nil, ErrAuthenticationFailed
	}

	return u, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, u)
}

// IssueSession mints an access token and a refresh token for the user.
// Saving the refresh token replaces any prior token for the user, so a
// login on one device invalidates the session on another.
func (s *Service) IssueSession(ctx context.Context, u *User) (*Session, error) {
	access, accessExp, err := s.issuer.IssueAccessToken(u)
	if err != nil {
		return nil, err
	}

	raw, hash, err := NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().UTC().Add(s.refreshTTL)
	if err := s.tokens.Save(ctx, u.ID, hash, refreshExp); err != nil {
		return nil, fmt.Errorf("saving refresh token: %w", err)
	}

	return &Session{
		User:                 u,
		AccessToken:          access,
		AccessTokenExpiresAt: accessExp,
		RefreshToken:         raw,
		RefreshExpiresAt:     refreshExp,
	}, nil
}

// Refresh exchanges a raw refresh token value for a new session. The
// token is rotated: the stored hash is replaced, so presenting the old
// value again fails with ErrInvalidToken.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	rt, err := s.tokens.FindValid(ctx, HashRefreshToken(rawToken), time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) || errors.Is(err, ErrTokenExpired) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("looking up refresh token: %w", err)
	}

	u, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if u.Deleted {
		return nil, ErrInvalidToken
	}

	return s.IssueSession(ctx, u)
}

// Logout revokes the user's refresh token. Idempotent: revoking a user
// with no stored token is a no-op.
func (s *Service) Logout(ctx context.Context, publicID uuid.UUID) error {
	u, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	if err := s.tokens.Revoke(ctx, u.ID); err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}
	return nil
}

// Register creates a local user with role USER.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, RoleUser)
	if err != nil {
		return nil, fmt.Errorf("resolving default role: %w", err)
	}

	u := &User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Provider:     ProviderLocal,
		Roles:        []Role{*role},
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

// EnsureFederatedUser maps a federated identity to a local user record.
// A new user gets the federated provider, role USER and no password. An
// existing user is reused as-is; manually set names are not overwritten.
func (s *Service) EnsureFederatedUser(ctx context.Context, provider, email, givenName, familyName string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if u.Deleted {
			return nil, ErrAuthenticationFailed
		}
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("looking up federated user: %w", err)
	}

	role, err := s.roles.FindByName(ctx, RoleUser)
	if err != nil {
		return nil, fmt.Errorf("resolving default role: %w", err)
	}

	u = &User{
		Email:     email,
		FirstName: givenName,
		LastName:  familyName,
		Provider:  provider,
		Roles:     []Role{*role},
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating federated user: %w", err)
	}

	return u, nil
}
