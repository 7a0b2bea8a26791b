package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQuery adds a query parameter to the request.
func WithQuery(key string, value any) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(Query)
		}
		r.Query[key] = value
	}
}

// WithTimeout overrides the per-attempt timeout for the request.
func WithTimeout(d time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = d
	}
}

// WithIdempotencyKey attaches an idempotency token, making a mutating
// request safe to retry.
func WithIdempotencyKey(key string) RequestOption {
	return func(r *Request) {
		r.IdempotencyKey = key
	}
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*T, error) {
	return doTyped[T](c, ctx, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*T, error) {
	return doTyped[T](c, ctx, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*T, error) {
	return doTyped[T](c, ctx, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the response into type T.
func Patch[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*T, error) {
	return doTyped[T](c, ctx, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and decodes the JSON response into type T.
func Delete[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*T, error) {
	return doTyped[T](c, ctx, http.MethodDelete, path, nil, opts...)
}

// doTyped executes a typed request and decodes the JSON response. A
// success response with a non-JSON content type is returned as plain
// text when T is string; for any other T it is a decode error, since
// guessing at the shape would hide a server-side contract change.
func doTyped[T any](c *Client, ctx context.Context, method, path string, body any, opts ...RequestOption) (*T, error) {
	req := Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 && !resp.IsJSON() {
		if s, ok := any(&data).(*string); ok {
			*s = resp.Text()
			return &data, nil
		}
		return nil, fmt.Errorf("transport: decode response: expected JSON, got content type %q", resp.Headers["Content-Type"])
	}
	if err := resp.Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
