package middleware

import (
	"net/http"

	"github.com/onthegorentals/onthego/internal/api/response"
)

// RequireRole returns middleware that rejects identities holding none of
// the allowed roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				response.FailMessage(w, http.StatusUnauthorized, "Bearer token is required")
				return
			}

			for _, role := range identity.Roles {
				if allowed[role] {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.FailMessage(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}
