package transcription

import "context"

// Client is the interface that transcription backends must implement.
type Client interface {
	// Name returns the backend name.
	Name() string
	// IsAvailable reports whether the backend is configured and usable.
	IsAvailable() bool

	// Upload sends raw audio bytes to the provider and returns a URL
	// the provider can transcribe from.
	Upload(ctx context.Context, audio []byte) (string, error)
	// Submit starts a transcription job for the given audio URL and
	// returns the job ID.
	Submit(ctx context.Context, audioURL string, opts SubmitOptions) (string, error)
	// GetJob fetches the current state of a job.
	GetJob(ctx context.Context, jobID string) (*Job, error)
}
