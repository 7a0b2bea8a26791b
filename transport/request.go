package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request describes one logical API request. It is built fresh per call
// and never retained after the call completes.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Path is appended to the client's BaseURL.
	Path string
	// Body is the request body. Accepts []byte, string, or any value
	// that will be JSON-encoded.
	Body any
	// Query are URL query parameters. Entries whose value is nil or an
	// empty string are dropped; zero and false are kept.
	Query Query
	// Headers are request-specific headers (override client defaults).
	Headers map[string]string
	// Timeout overrides the client's per-attempt timeout for this call.
	Timeout time.Duration
	// IdempotencyKey, when set, is sent as the Idempotency-Key header
	// and marks mutating verbs as safe to retry.
	IdempotencyKey string
}

// Query holds URL query parameters keyed by name.
type Query map[string]any

// values serializes the query, dropping nil and empty-string entries.
// Meaningful falsy values such as 0 and false survive.
func (q Query) values() url.Values {
	if len(q) == 0 {
		return nil
	}
	out := url.Values{}
	for k, v := range q {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out.Set(k, fmt.Sprint(v))
	}
	return out
}

// Response is the raw result of a successful API request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body (nil for 204 responses).
	Body []byte
	// RequestID is the x-request-id trace header, when present.
	RequestID string
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON returns true if the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.Headers["Content-Type"], "application/json")
}

// Text returns the response body as plain text.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals the response body into v. A 204 or empty body is a
// no-op, leaving v at its zero value.
func (r *Response) Decode(v any) error {
	if r.StatusCode == http.StatusNoContent || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("transport: decode response: %w", err)
	}
	return nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
