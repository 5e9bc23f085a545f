package services

import "fmt"

// ValidationError reports input that violates a booking policy: missing or
// out-of-order dates, past start dates, the booking quota, scheduling
// conflicts. Mapped to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent car, booking or promotion. Mapped to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func notFoundf(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError reports a denied operation. CrossTenant distinguishes a
// provider reaching into another provider's resources (HTTP 403) from an
// identity mismatch on the actor's own resource class (HTTP 401).
type AuthorizationError struct {
	Message     string
	CrossTenant bool
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// UnexpectedError wraps a collaborator fault. The caller-facing message is
// always generic; the underlying cause stays available for logging via Unwrap.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "Unexpected Error"
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
