package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// fallbackMessage is used when the response body carries no error message.
const fallbackMessage = "Request failed"

// wireError is the JSON shape of an error response body.
type wireError struct {
	Error      string         `json:"error"`
	Code       string         `json:"code"`
	Details    map[string]any `json:"details"`
	RetryAfter float64        `json:"retryAfter"`
}

// Classify converts a non-2xx HTTP response into a typed error. The
// status-to-code table is fixed and compatibility-sensitive. A JSON
// body is parsed for {error, code, details, retryAfter}; a non-JSON
// body is reduced to its raw text; an empty body falls back to the
// response's own status line.
func Classify(statusCode int, body []byte, requestID string) *Error {
	w := parseBody(statusCode, body)

	e := &Error{
		Message:    w.Error,
		StatusCode: statusCode,
		RequestID:  requestID,
		RetryAfter: time.Duration(w.RetryAfter * float64(time.Second)),
	}
	if len(w.Details) > 0 {
		e.Details = w.Details
	}

	switch {
	case statusCode == 400:
		e.Code = CodeValidation
	case statusCode == 401:
		e.Code = CodeUnauthorized
	case statusCode == 402:
		e.Code = CodeQuotaExceeded
	case statusCode == 403:
		e.Code = CodeForbidden
	case statusCode == 404:
		e.Code = CodeNotFound
	case statusCode == 409:
		e.Code = CodeConflict
	case statusCode == 429:
		// A 429 body may report quota exhaustion rather than rate limiting.
		if Code(w.Code) == CodeQuotaExceeded {
			e.Code = CodeQuotaExceeded
		} else {
			e.Code = CodeRateLimit
		}
	case statusCode == 503:
		e.Code = CodeServiceUnavailable
	case statusCode == 504:
		e.Code = CodeTimeout
	case statusCode >= 500:
		e.Code = CodeServer
	default:
		// The body's code is carried through for callers to match on,
		// but it never makes an unlisted status retryable.
		e.Code = CodeUnknown
		if w.Code != "" {
			e.Code = Code(w.Code)
		}
		return e
	}

	e.Retryable = IsRetryableCode(e.Code)
	return e
}

// parseBody extracts the wire error shape from a response body.
func parseBody(statusCode int, body []byte) wireError {
	var w wireError
	if len(body) == 0 {
		w.Error = statusLine(statusCode)
		return w
	}
	if err := json.Unmarshal(body, &w); err != nil {
		w = wireError{Error: strings.TrimSpace(string(body))}
	}
	if w.Error == "" {
		w.Error = fallbackMessage
	}
	return w
}

// statusLine renders the HTTP status line text for a code.
func statusLine(statusCode int) string {
	if text := http.StatusText(statusCode); text != "" {
		return fmt.Sprintf("%d %s", statusCode, text)
	}
	return fmt.Sprintf("%d %s", statusCode, fallbackMessage)
}
