package apperror

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Handlers map these to HTTP statuses; everything
// else is treated as an internal error.
var (
	ErrInvalid      = errors.New("invalid argument")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error wraps a sentinel kind with a human-readable message.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Invalid(message string) *Error {
	return &Error{Err: ErrInvalid, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Err: ErrUnauthorized, Message: message}
}

func NotFound(resource string, id any) *Error {
	return &Error{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("no %s: %v", resource, id),
	}
}

func Conflict(message string) *Error {
	return &Error{Err: ErrConflict, Message: message}
}
