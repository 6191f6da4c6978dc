package transcription

// Status is the lifecycle state of a transcription job.
type Status string

const (
	// StatusQueued means the job is accepted but not yet started.
	StatusQueued Status = "queued"
	// StatusProcessing means the job is being transcribed.
	StatusProcessing Status = "processing"
	// StatusCompleted means the transcript is ready.
	StatusCompleted Status = "completed"
	// StatusError means the job failed on the provider side.
	StatusError Status = "error"
)

// Terminal reports whether the status ends the job lifecycle.
// Unknown statuses are treated as in-progress.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Job is a transcription job as reported by the provider.
type Job struct {
	// ID is the provider-assigned job identifier.
	ID string `json:"id"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// Text is the transcript. Only populated when Status is completed.
	Text string `json:"text,omitempty"`
	// Error is the provider's failure description when Status is error.
	Error string `json:"error,omitempty"`
}

// SubmitOptions holds optional parameters for starting a job.
type SubmitOptions struct {
	// WebhookURL, when set, asks the provider to notify this URL when
	// the job reaches a terminal status.
	WebhookURL string
	// SpeakerLabels enables speaker diarization.
	SpeakerLabels bool
}
