package apierror

import (
	"errors"
	"fmt"
	"time"
)

// Error is the structured error produced for every failed API call.
type Error struct {
	// Code is a machine-readable error code.
	Code Code
	// Message is a human-readable error message.
	Message string
	// StatusCode is the HTTP status code (0 for network-level failures
	// with no response).
	StatusCode int
	// Details contains additional structured context from the response.
	Details map[string]any
	// RequestID is the trace id from the x-request-id response header,
	// when the server supplied one.
	RequestID string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// RetryAfter is a server-supplied backoff hint (zero when absent).
	RetryAfter time.Duration
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("pagelift: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pagelift: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// NewNotFound creates a not-found error for a named resource.
func NewNotFound(resource, id string) *Error {
	msg := fmt.Sprintf("%s not found", resource)
	if id != "" {
		msg = fmt.Sprintf("%s '%s' not found", resource, id)
	}
	return &Error{
		Code:       CodeNotFound,
		Message:    msg,
		StatusCode: 404,
	}
}

// NewNetwork wraps a transport-level failure where no response was received.
func NewNetwork(err error) *Error {
	return &Error{
		Code:      CodeNetwork,
		Message:   err.Error(),
		Retryable: true,
		Cause:     err,
	}
}

// NewTimeout wraps a per-attempt deadline expiry.
func NewTimeout(err error) *Error {
	return &Error{
		Code:      CodeTimeout,
		Message:   "request timed out",
		Retryable: true,
		Cause:     err,
	}
}

// NewAborted wraps a caller-initiated cancellation. Never retryable.
func NewAborted(err error) *Error {
	return &Error{
		Code:    CodeAborted,
		Message: "request aborted by caller",
		Cause:   err,
	}
}

// NewValidation creates a client-side validation error.
func NewValidation(msg string) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    msg,
		StatusCode: 400,
	}
}

// NewUnauthorized creates an authentication error with the given code.
func NewUnauthorized(code Code, msg string) *Error {
	return &Error{
		Code:       code,
		Message:    msg,
		StatusCode: 401,
	}
}

// FromError converts err into an *Error. An error that is already
// classified passes through unchanged, preserving its code, status,
// and retryable flag; anything else is wrapped as CodeUnknown.
func FromError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    CodeUnknown,
		Message: err.Error(),
		Cause:   err,
	}
}

// As extracts an *Error from err, if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	return hasCode(err, CodeRateLimit)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return hasCode(err, CodeTimeout)
}

// IsAborted checks if an error is a caller-cancellation error.
func IsAborted(err error) bool {
	return hasCode(err, CodeAborted)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

// IsRetryable checks if an error is a retryable classified error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

func hasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
