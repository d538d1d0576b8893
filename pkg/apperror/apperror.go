package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kinds of failure the API distinguishes. Every error returned to a handler
// should wrap exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("not authorized to access this route")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("duplicate value entered")
	ErrUpstream     = errors.New("upstream service failed")
)

// Error carries a kind and a message that is safe to show to the client.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Cause }

func New(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an internal cause that is logged but never rendered.
func Wrap(kind error, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func Validation(format string, args ...any) *Error   { return New(ErrValidation, format, args...) }
func NotFound(format string, args ...any) *Error     { return New(ErrNotFound, format, args...) }
func Unauthorized(format string, args ...any) *Error { return New(ErrUnauthorized, format, args...) }
func Forbidden(format string, args ...any) *Error    { return New(ErrForbidden, format, args...) }
func Conflict(format string, args ...any) *Error     { return New(ErrConflict, format, args...) }

func Upstream(cause error, format string, args ...any) *Error {
	return Wrap(ErrUpstream, cause, format, args...)
}

// StatusOf maps an error to its HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing message for err.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	for _, k := range []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict, ErrUpstream} {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return "Server Error"
}
