package transcription

import (
	"context"
	"time"

	"github.com/skillsenselab/summora/errors"
)

const defaultPollInterval = 2 * time.Second

// PollConfig controls the polling loop.
type PollConfig struct {
	// Interval is the delay between status checks. Defaults to 2s.
	Interval time.Duration
	// Timeout bounds the total wait. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
	// OnPoll, when set, is invoked after every status check.
	OnPoll func(job *Job)
}

// Poll drives a job to a terminal status by checking it on a fixed
// cadence. It waits one interval before the first check, since providers
// rarely finish instantly. Returns the completed job, a
// TRANSCRIPTION_FAILED error if the provider reports failure, or a
// TIMEOUT error when the bound elapses first. Cancellation of the
// caller's context is propagated as-is, not reported as a timeout.
func Poll(ctx context.Context, client Client, jobID string, cfg PollConfig) (*Job, error) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	parent := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, boundError(parent, ctx, cfg.Timeout, nil)
		case <-timer.C:
		}

		job, err := client.GetJob(ctx, jobID)
		if err != nil {
			// The bound can expire mid-request; the backend reports
			// that as its own transport failure, so reclassify here.
			if ctx.Err() != nil {
				return nil, boundError(parent, ctx, cfg.Timeout, err)
			}
			return nil, err
		}
		if cfg.OnPoll != nil {
			cfg.OnPoll(job)
		}

		switch job.Status {
		case StatusCompleted:
			return job, nil
		case StatusError:
			return nil, errors.TranscriptionFailed(jobID).WithDetail("provider_error", job.Error)
		}

		timer.Reset(interval)
	}
}

// boundError tells the poll bound expiring apart from the caller giving
// up. The caller's own cancellation or deadline propagates untouched;
// only the configured bound maps to the TIMEOUT code.
func boundError(parent, ctx context.Context, bound time.Duration, cause error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if cause == nil {
		cause = ctx.Err()
	}
	return errors.Timeout("transcription poll", bound).WithCause(cause)
}
