package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that verifies the Authorization bearer token and
// stores the resulting Identity in the request context. Access tokens
// are self-contained, so no store lookup happens here.
func Auth(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.FailMessage(w, http.StatusUnauthorized, "Bearer token is required")
				return
			}

			claims, err := issuer.VerifyAccessToken(token)
			if err != nil {
				response.FailMessage(w, http.StatusUnauthorized, "Invalid or expired access token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				response.FailMessage(w, http.StatusUnauthorized, "Invalid or expired access token")
				return
			}

			identity := &auth.Identity{
				UserID: userID,
				Email:  claims.Email,
				Roles:  claims.Roles,
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
