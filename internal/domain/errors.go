package domain

import "errors"

var (
	// ErrUnauthenticated is returned when an action needs a session and none is held.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrAuthRejected is returned when the service refuses the session token.
	// The session has already been cleared when a caller sees it.
	ErrAuthRejected = errors.New("session token rejected by service")
	// ErrNoStoredToken is returned when restoring finds nothing in storage.
	ErrNoStoredToken = errors.New("no stored session token")
	// ErrLocationUnavailable means no fix could be produced. Rental
	// transactions never surface it.
	ErrLocationUnavailable = errors.New("location unavailable")
)
