package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestId"

// RequestIDHeader carries the request id between client and server. A
// caller-supplied id is kept so a gateway's id survives into our logs.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id and echoes it on the response,
// so a failing call can be correlated with its log lines.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), requestIDKey, id),
		))
	})
}

// GetRequestID returns the id set by RequestID, or "" outside of it.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
