package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// safeToRetry reports whether a failed request may be re-sent without
// risking duplicate side effects. Read-only verbs and DELETE are
// idempotent by convention; mutating verbs are safe only when the
// caller supplied an idempotency key.
func safeToRetry(method, idempotencyKey string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete:
		return true
	default:
		return idempotencyKey != ""
	}
}

// NewIdempotencyKey returns a fresh idempotency token for a mutating
// call the caller wants to make safely retryable.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
