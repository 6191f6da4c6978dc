package gemini

import (
	"fmt"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash-latest"
)

// Config configures the Gemini backend.
type Config struct {
	// APIKey authenticates against the Gemini API.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model selects the generative model.
	Model string `yaml:"model" mapstructure:"model"`
	// Timeout bounds individual API calls.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = time.Minute
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	return nil
}
