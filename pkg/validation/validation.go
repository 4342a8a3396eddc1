// Package validation holds the error kind returned for malformed or missing input.
// Callers fixing the request can always recover from it; it is never retried.
package validation

import (
	"errors"
	"fmt"
)

type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string) error {
	return &Error{Message: message}
}

func Newf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err or anything it wraps is a validation Error.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}
