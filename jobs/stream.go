package jobs

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagelift/pagelift-go/apierror"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	// Interval between polls. Defaults to 2s.
	Interval time.Duration
	// MaxPolls bounds the watch. Defaults to 300 (10 minutes at the
	// default interval).
	MaxPolls int
	// Logger receives debug events for skipped transient failures.
	Logger *zerolog.Logger
}

func (o *WatchOptions) applyDefaults() {
	if o.Interval <= 0 {
		o.Interval = defaultPollInterval
	}
	if o.MaxPolls <= 0 {
		o.MaxPolls = defaultMaxPolls
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
}

// Watch returns a lazy stream of job snapshots. The stream is finite
// and non-restartable: it yields a snapshot on every meaningful change
// (stage, current step, or count of completed variants), ends with the
// terminal snapshot, and then reports io.EOF.
func (s *Service) Watch(jobID string, opts WatchOptions) *Stream {
	opts.applyDefaults()
	return &Stream{
		svc:       s,
		jobID:     jobID,
		interval:  opts.Interval,
		remaining: opts.MaxPolls,
		log:       opts.Logger,
	}
}

// Stream is a lazy, finite sequence of job snapshots. Not safe for
// concurrent use.
type Stream struct {
	svc       *Service
	jobID     string
	interval  time.Duration
	remaining int
	log       *zerolog.Logger

	last    *Job
	started bool
	done    bool
}

// Next blocks until the job state changes meaningfully and returns the
// new snapshot. It returns io.EOF after the terminal snapshot has been
// delivered, ErrPollLimit if the poll budget runs out first, and any
// non-retryable read failure immediately. Transient read failures are
// skipped.
func (st *Stream) Next(ctx context.Context) (*Job, error) {
	if st.done {
		return nil, io.EOF
	}
	for {
		if st.started {
			if err := sleep(ctx, st.interval); err != nil {
				st.done = true
				return nil, err
			}
		}
		if st.remaining == 0 {
			st.done = true
			return nil, ErrPollLimit
		}
		st.remaining--
		st.started = true

		job, err := st.svc.Get(ctx, st.jobID)
		if err != nil {
			if apierror.IsRetryable(err) {
				st.log.Debug().Str("job_id", st.jobID).Err(err).Msg("transient poll failure, skipping")
				continue
			}
			st.done = true
			return nil, err
		}

		if !changed(st.last, job) {
			continue
		}
		st.last = job
		if job.Stage.Terminal() {
			st.done = true
		}
		return job, nil
	}
}

// changed reports whether a snapshot differs meaningfully from the
// previous one: stage, current pipeline step, or number of completed
// variants.
func changed(prev, cur *Job) bool {
	if prev == nil {
		return true
	}
	return prev.Stage != cur.Stage ||
		prev.CurrentStep != cur.CurrentStep ||
		len(prev.VariantsCompleted) != len(cur.VariantsCompleted)
}
