// Package apierror provides the unified error type returned by every
// failing PageLift API call, with machine-readable codes, HTTP status
// mapping, and retryable detection.
package apierror
