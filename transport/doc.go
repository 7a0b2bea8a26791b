// Package transport provides the resilient HTTP engine underneath every
// PageLift API call: credential resolution, request building, bounded
// retries with fixed backoff, idempotency-aware retry safety, and
// timeout/cancellation handling.
//
// # Basic Usage
//
//	client, err := transport.New(transport.Config{
//	    BaseURL: "https://api.pagelift.dev",
//	    APIKey:  "pl_live_...",
//	})
//
//	resp, err := client.Do(ctx, transport.Request{
//	    Method: http.MethodGet,
//	    Path:   "/v1/jobs/job_123",
//	})
//
// Typed helpers decode JSON responses directly:
//
//	job, err := transport.Get[Job](client, ctx, "/v1/jobs/job_123")
//
// Every failure surfaces as an *apierror.Error carrying code, HTTP
// status, retryability, and the x-request-id trace header.
package transport
