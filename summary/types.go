package summary

import "context"

// Result is the structured summary produced from a transcript.
type Result struct {
	// Summary is an ordered list of key-point bullets.
	Summary []string `json:"summary"`
	// ActionItems is an ordered list of action items, with assignees
	// when the transcript mentions them.
	ActionItems []string `json:"actionItems"`
}

// Client is the interface that summarization backends must implement.
type Client interface {
	// Name returns the backend name.
	Name() string
	// IsAvailable reports whether the backend is configured and usable.
	IsAvailable() bool

	// Summarize produces a structured summary from transcript text.
	// Empty transcripts are valid input and yield a best-effort result.
	Summarize(ctx context.Context, transcript string) (*Result, error)
}
