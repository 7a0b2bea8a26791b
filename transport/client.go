package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pagelift/pagelift-go/apierror"
)

const tracerName = "github.com/pagelift/pagelift-go/transport"

// errAttemptTimeout marks a context cancelled by the per-attempt timer,
// as opposed to the caller's own cancellation.
var errAttemptTimeout = errors.New("transport: attempt timeout")

// Client is the resilient HTTP engine. It is safe for concurrent use:
// all state is immutable configuration fixed at construction.
type Client struct {
	config Config
	tracer trace.Tracer
}

// New creates a transport client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: cfg,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// Do executes one logical request as a bounded sequence of attempts.
// On failure it returns an *apierror.Error; the raw Response is also
// returned when an HTTP response was received, so callers can inspect
// error bodies.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "pagelift.request", trace.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.Path),
	))
	defer span.End()

	authz, err := c.resolveAuth(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	timeout := c.config.Timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	maxRetries := c.config.MaxRetries
	if maxRetries < 0 || c.config.DisableRetries {
		maxRetries = 0
	}

	var lastErr *apierror.Error
	var resp *Response
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, lastErr = c.attempt(ctx, req, authz, timeout)
		if lastErr == nil {
			span.SetAttributes(
				attribute.Int("http.attempts", attempt+1),
				attribute.Int("http.status_code", resp.StatusCode),
			)
			return resp, nil
		}
		if !lastErr.Retryable || attempt == maxRetries || !safeToRetry(req.Method, req.IdempotencyKey) {
			break
		}
		delay := backoffDelay(attempt, lastErr)
		c.config.Logger.Debug().
			Str("method", req.Method).
			Str("path", req.Path).
			Str("code", string(lastErr.Code)).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("retrying request")
		if err := sleep(ctx, delay); err != nil {
			lastErr = apierror.NewAborted(err)
			break
		}
	}

	span.RecordError(lastErr)
	span.SetAttributes(attribute.String("error.code", string(lastErr.Code)))
	return resp, lastErr
}

// attempt executes one physical attempt under its own deadline.
func (c *Client) attempt(ctx context.Context, req Request, authz string, timeout time.Duration) (*Response, *apierror.Error) {
	attemptCtx, cancel := context.WithTimeoutCause(ctx, timeout, errAttemptTimeout)
	defer cancel()

	httpReq, err := c.buildRequest(attemptCtx, req, authz)
	if err != nil {
		return nil, apierror.NewValidation(err.Error()).WithCause(err)
	}

	resp, err := c.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportError(ctx, attemptCtx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	requestID := resp.Header.Get("x-request-id")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, attemptCtx, fmt.Errorf("read response body: %w", err))
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		RequestID:  requestID,
	}
	if out.IsSuccess() {
		return out, nil
	}
	return out, apierror.Classify(resp.StatusCode, body, requestID)
}

// classifyTransportError maps a network-level failure (no response) to
// exactly one of: Aborted when the caller cancelled, Timeout when the
// per-attempt timer fired, NetworkError otherwise.
func (c *Client) classifyTransportError(callerCtx, attemptCtx context.Context, err error) *apierror.Error {
	switch {
	case callerCtx.Err() != nil:
		return apierror.NewAborted(err)
	case errors.Is(context.Cause(attemptCtx), errAttemptTimeout):
		return apierror.NewTimeout(err)
	default:
		return apierror.NewNetwork(err)
	}
}

// buildRequest constructs the wire request: URL, query, body, and
// headers in fixed precedence (caller overrides win).
func (c *Client) buildRequest(ctx context.Context, req Request, authz string) (*http.Request, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if q := req.Query.values(); len(q) > 0 {
		httpReq.URL.RawQuery = q.Encode()
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Authorization", authz)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
