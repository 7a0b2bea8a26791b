package transport

import (
	"context"

	"github.com/pagelift/pagelift-go/apierror"
)

// TokenProvider supplies a bearer token for a single call. It may block
// (e.g. refresh an OAuth token) and must honor ctx cancellation.
type TokenProvider func(ctx context.Context) (string, error)

// resolveAuth returns the Authorization header value for one logical
// call. The credential is resolved once per call, not per attempt, so a
// provider callback is invoked at most once regardless of retries.
func (c *Client) resolveAuth(ctx context.Context) (string, error) {
	switch {
	case c.config.APIKey != "":
		return "ApiKey " + c.config.APIKey, nil
	case c.config.BearerToken != "":
		return "Bearer " + c.config.BearerToken, nil
	case c.config.TokenProvider != nil:
		token, err := c.config.TokenProvider(ctx)
		if err != nil {
			return "", apierror.NewUnauthorized(apierror.CodeUnauthorized, "token provider failed").WithCause(err)
		}
		if token == "" {
			return "", apierror.NewUnauthorized(apierror.CodeUnauthorized, "token provider returned an empty token")
		}
		return "Bearer " + token, nil
	default:
		return "", apierror.NewUnauthorized("NO_CREDENTIALS", "no credential source configured")
	}
}
