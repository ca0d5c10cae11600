package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error is a single entry in the envelope's errors list. Field is empty
// for errors not tied to a request field.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the standard API response wrapper. Status is "success" or
// "fail"; failures carry one or more errors and no data.
type Envelope struct {
	Data   any     `json:"data,omitempty"`
	Errors []Error `json:"errors"`
	Status string  `json:"status"`
}

// JSON writes a JSON response with the given status code and envelope.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success writes a successful JSON response.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{
		Data:   data,
		Errors: []Error{},
		Status: "success",
	})
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail writes a failure JSON response with the given errors.
func Fail(w http.ResponseWriter, status int, errs ...Error) {
	if len(errs) == 0 {
		errs = []Error{{Message: "request failed"}}
	}
	JSON(w, status, Envelope{
		Errors: errs,
		Status: "fail",
	})
}

// FailMessage writes a failure JSON response with a single message not
// tied to any field.
func FailMessage(w http.ResponseWriter, status int, message string) {
	Fail(w, status, Error{Message: message})
}
