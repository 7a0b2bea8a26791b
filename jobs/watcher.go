package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagelift/pagelift-go/apierror"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxPolls     = 300
	defaultWaitTimeout  = 10 * time.Minute
)

// ErrDeadline is returned by WaitForVariants when the wall-clock
// deadline elapses before the requested variants are ready. Distinct
// from a job-reported failure, which surfaces as *FailedError.
var ErrDeadline = errors.New("jobs: deadline exceeded before requested variants were ready")

// ErrPollLimit is returned by Stream.Next when the poll budget runs out
// before the job reaches a terminal stage.
var ErrPollLimit = errors.New("jobs: poll budget exhausted before the job reached a terminal stage")

// ErrVariantsUnavailable is returned by WaitForVariants when the job
// reaches a terminal stage without producing every requested variant.
// Waiting any longer would be pointless: terminal stages never change.
var ErrVariantsUnavailable = errors.New("jobs: job finished without producing the requested variants")

// FailedError reports that the job itself failed while being observed.
type FailedError struct {
	Job *Job
}

// Error implements the error interface.
func (e *FailedError) Error() string {
	if e.Job.Error != "" {
		return fmt.Sprintf("jobs: job %s failed: %s", e.Job.ID, e.Job.Error)
	}
	return fmt.Sprintf("jobs: job %s failed", e.Job.ID)
}

// WaitOptions configures WaitForVariants.
type WaitOptions struct {
	// Interval between polls. Defaults to 2s.
	Interval time.Duration
	// Timeout is the wall-clock deadline for the whole wait. Defaults
	// to 10m.
	Timeout time.Duration
	// Logger receives debug events for skipped transient failures.
	Logger *zerolog.Logger
}

func (o *WaitOptions) applyDefaults() {
	if o.Interval <= 0 {
		o.Interval = defaultPollInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultWaitTimeout
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
}

// WaitForVariants polls the job until every requested output variant
// has a durably stored result, returning as soon as the subset is
// satisfied without waiting for the full job to finish. It returns
// *FailedError if the job fails first, an ErrVariantsUnavailable-wrapped
// error if the job finishes without a requested variant, and an
// ErrDeadline-wrapped error if the deadline elapses first.
//
// A transient read failure is skipped and polling continues on the next
// tick; the transport's own retry budget has already been spent on that
// read, so this is a second, coarser layer of resilience. A
// non-retryable read failure stops the wait immediately.
func (s *Service) WaitForVariants(ctx context.Context, jobID string, variants []string, opts WaitOptions) (*Job, error) {
	opts.applyDefaults()
	deadline := time.Now().Add(opts.Timeout)

	for {
		job, err := s.Get(ctx, jobID)
		switch {
		case err == nil:
			if job.Stage == StageFailed {
				return nil, &FailedError{Job: job}
			}
			if allReady(job, variants) {
				return job, nil
			}
			if job.Stage.Terminal() {
				return nil, fmt.Errorf("%w: job %s, variants %v, ready %v",
					ErrVariantsUnavailable, jobID, variants, job.VariantsReady)
			}
		case apierror.IsRetryable(err):
			opts.Logger.Debug().Str("job_id", jobID).Err(err).Msg("transient poll failure, skipping")
		default:
			return nil, err
		}

		if time.Until(deadline) <= 0 {
			return nil, fmt.Errorf("%w: job %s, variants %v, waited %s", ErrDeadline, jobID, variants, opts.Timeout)
		}
		if err := sleep(ctx, opts.Interval); err != nil {
			return nil, err
		}
	}
}

// allReady returns true once every requested variant is in the ready set.
func allReady(job *Job, variants []string) bool {
	if len(variants) == 0 {
		return job.Stage == StageCompleted
	}
	for _, v := range variants {
		if !job.Ready(v) {
			return false
		}
	}
	return true
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
