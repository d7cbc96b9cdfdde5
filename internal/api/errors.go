package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an authenticated call is made
	// before a successful Login.
	ErrNotAuthenticated = errors.New("not authenticated: login first")

	// ErrInvalidCredentials is returned when the server rejects the
	// email/password pair, distinct from any connection failure.
	ErrInvalidCredentials = errors.New("login failed: invalid email or password")

	// ErrPastDue is returned when an assignment's due date has passed and
	// the assignment does not allow late submissions.
	ErrPastDue = errors.New("assignment is past due and late submissions are not allowed")
)

// ConnectionError is a network-level failure (DNS, connect refusal, timeout),
// kept separate from HTTP status errors so callers can tell an unreachable
// server from a rejecting one.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to reach server at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ServerError is a non-2xx HTTP response. Message carries the server's
// "error" field when the body parsed as JSON, otherwise a synthesized
// status+body description.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.Message }

// NotFoundError reports an assignment name that resolved to no record.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("assignment %q not found", e.Name)
}
