package handler

import (
	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
)

const timeFormat = "2006-01-02T15:04:05Z"

// fieldErrors converts validation errors into envelope errors.
func fieldErrors(errs []validation.FieldError) []response.Error {
	out := make([]response.Error, 0, len(errs))
	for _, e := range errs {
		out = append(out, response.Error{Field: e.Field, Message: e.Message})
	}
	return out
}
