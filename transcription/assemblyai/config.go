package assemblyai

import (
	"fmt"
	"time"
)

const defaultBaseURL = "https://api.assemblyai.com/v2"

// Config configures the AssemblyAI backend.
type Config struct {
	// APIKey authenticates against the AssemblyAI API.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds individual API calls. Uploads of large recordings
	// need headroom here.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("assemblyai.api_key is required")
	}
	return nil
}
