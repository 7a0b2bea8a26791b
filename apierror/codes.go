package apierror

// Code is a machine-readable error code.
type Code string

// Client errors
const (
	// CodeValidation indicates the request was rejected as invalid (400).
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeUnauthorized indicates missing or invalid credentials (401).
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeForbidden indicates the credentials lack permission (403).
	CodeForbidden Code = "FORBIDDEN"
	// CodeNotFound indicates the requested resource does not exist (404).
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict indicates a conflict with the current resource state (409).
	CodeConflict Code = "CONFLICT"
	// CodeQuotaExceeded indicates a plan or payment quota was exhausted (402,
	// or 429 when the response body carries this code explicitly).
	CodeQuotaExceeded Code = "QUOTA_EXCEEDED"
)

// Transient errors (retryable)
const (
	// CodeRateLimit indicates the client is being rate limited (429).
	CodeRateLimit Code = "RATE_LIMITED"
	// CodeTimeout indicates the request timed out (504 or local deadline).
	CodeTimeout Code = "TIMEOUT"
	// CodeServiceUnavailable indicates the service is temporarily down (503).
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeServer indicates a generic server-side failure (500, 502, other 5xx).
	CodeServer Code = "SERVER_ERROR"
	// CodeNetwork indicates no HTTP response was received at all.
	CodeNetwork Code = "NETWORK_ERROR"
)

// Local errors
const (
	// CodeAborted indicates the caller cancelled the request mid-flight.
	CodeAborted Code = "ABORTED"
	// CodeUnknown is the fallback code when the response body carries none.
	CodeUnknown Code = "UNKNOWN"
)

var retryableCodes = map[Code]bool{
	CodeRateLimit:          true,
	CodeTimeout:            true,
	CodeServiceUnavailable: true,
	CodeServer:             true,
	CodeNetwork:            true,
}

// IsRetryableCode returns true if the code indicates a transient failure
// expected to resolve itself on a later attempt.
func IsRetryableCode(code Code) bool {
	return retryableCodes[code]
}
