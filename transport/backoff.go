package transport

import (
	"context"
	"time"

	"github.com/pagelift/pagelift-go/apierror"
)

// retrySchedule is the fixed delay between attempts. Deliberately not
// jittered: the upstream service's observed behavior uses this exact
// schedule, and a server-supplied retryAfter hint overrides it anyway.
var retrySchedule = []time.Duration{
	100 * time.Millisecond,
	500 * time.Millisecond,
	1000 * time.Millisecond,
}

// backoffDelay returns the delay before re-attempting after the given
// 0-based attempt, preferring the server's retry-after hint.
func backoffDelay(attempt int, err *apierror.Error) time.Duration {
	if err != nil && err.RetryAfter > 0 {
		return err.RetryAfter
	}
	if attempt < len(retrySchedule) {
		return retrySchedule[attempt]
	}
	return retrySchedule[len(retrySchedule)-1]
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
