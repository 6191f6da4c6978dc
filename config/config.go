package config

import (
	"fmt"

	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/observability"
	"github.com/skillsenselab/summora/pipeline"
	"github.com/skillsenselab/summora/server"
	"github.com/skillsenselab/summora/summary/gemini"
	"github.com/skillsenselab/summora/transcription/assemblyai"
	"github.com/skillsenselab/summora/validation"
)

// Config is the full service configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"required,oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
	// Transcriber selects the transcription backend by registry name.
	Transcriber string `yaml:"transcriber" mapstructure:"transcriber"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Pipeline      pipeline.Config      `yaml:"pipeline" mapstructure:"pipeline"`
	AssemblyAI    assemblyai.Config    `yaml:"assemblyai" mapstructure:"assemblyai"`
	Gemini        gemini.Config        `yaml:"gemini" mapstructure:"gemini"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies default values across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "summora"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Transcriber == "" {
		c.Transcriber = "assemblyai"
	}

	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Pipeline.ApplyDefaults()
	c.AssemblyAI.ApplyDefaults()
	c.Gemini.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates all sections. Struct tags cover field-shape
// constraints; section Validate methods cover the rest. Provider
// credentials are required; the process must fail to start without
// them.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("config.pipeline: %w", err)
	}
	if err := c.AssemblyAI.Validate(); err != nil {
		return fmt.Errorf("config.assemblyai: %w", err)
	}
	if err := c.Gemini.Validate(); err != nil {
		return fmt.Errorf("config.gemini: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}
