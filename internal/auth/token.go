package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAccessToken is returned when an access token fails signature
// or expiry checks.
var ErrInvalidAccessToken = errors.New("invalid access token")

// Claims are embedded in every access token. Subject is the user's
// public UUID.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer mints access tokens (HS256 JWTs) and opaque refresh token
// values. Access tokens are self-contained: any replica holding the
// secret can verify them without a store lookup.
type TokenIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret string, accessTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (t *TokenIssuer) AccessTTL() time.Duration {
	return t.accessTTL
}

// IssueAccessToken signs a JWT for the user carrying email and role names.
func (t *TokenIssuer) IssueAccessToken(u *User) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(t.accessTTL)

	claims := Claims{
		Email: u.Email,
		Roles: RoleNames(u.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.PublicID.String(),
			Issuer:    "onthegorentals",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}

	return signed, exp, nil
}

// VerifyAccessToken parses and validates an access token, returning its claims.
func (t *TokenIssuer) VerifyAccessToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}

// NewRefreshTokenValue generates an opaque refresh token: 32 random
// bytes, base64url encoded. Returns the raw value (sent to the client)
// and its sha256 hash (the only form that is persisted).
func NewRefreshTokenValue() (raw, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashRefreshToken(raw), nil
}

// HashRefreshToken returns the storage form of a raw refresh token value.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
