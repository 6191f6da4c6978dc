package pipeline

import (
	"time"

	"github.com/skillsenselab/summora/validation"
)

// Mode selects how transcription completion is tracked.
type Mode string

const (
	// ModeSync polls the provider and returns the summary in the
	// original HTTP response.
	ModeSync Mode = "sync"
	// ModeWebhook registers a callback URL and returns immediately
	// with the job ID. Summarization happens out-of-band.
	ModeWebhook Mode = "webhook"
)

// Config configures the pipeline orchestrator.
type Config struct {
	// Mode selects sync (poll) or webhook completion tracking.
	Mode Mode `yaml:"mode" mapstructure:"mode" validate:"required,oneof=sync webhook"`
	// PollInterval is the delay between status checks in sync mode.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	// PollTimeout bounds the total poll wait in sync mode.
	// Zero disables the bound.
	PollTimeout time.Duration `yaml:"poll_timeout" mapstructure:"poll_timeout"`
	// PublicBaseURL is the externally reachable base URL used to build
	// the webhook callback. Required in webhook mode.
	PublicBaseURL string `yaml:"public_base_url" mapstructure:"public_base_url" validate:"required_if=Mode webhook,omitempty,url"`
	// SpeakerLabels asks the provider for speaker diarization. The
	// labels are not consumed downstream today; the flag is preserved
	// for providers that price or route on it.
	SpeakerLabels bool `yaml:"speaker_labels" mapstructure:"speaker_labels"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeSync
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = 10 * time.Minute
	}
	if c.PollTimeout < 0 {
		c.PollTimeout = 0
	}
}

// Validate validates the configuration via the struct tags.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c)
}
