package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response from the service.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unauthorized reports whether the service denied the credentials.
func (e *StatusError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// TransportError means the request never produced a response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError is a normalized, user-facing failure.
type AppError struct {
	Message string
	Status  int
	cause   error
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.cause }

// IsUnauthorized reports whether err carries a 401 from the service.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Unauthorized()
}
