package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	Intake  IntakeConfig  `yaml:"intake" json:"intake"`
	Loading LoadingConfig `yaml:"loading" json:"loading"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// ServiceConfig configures the remote analysis service
type ServiceConfig struct {
	Endpoint         string        `yaml:"endpoint" json:"endpoint"`                   // base URL, /analyze/ is appended
	Timeout          time.Duration `yaml:"timeout" json:"timeout"`                     // request timeout
	ValidateResponse bool          `yaml:"validate_response" json:"validate_response"` // reject verdicts other than Yes/No
}

// IntakeConfig configures the upload slots
type IntakeConfig struct {
	AcceptedTypes []string `yaml:"accepted_types" json:"accepted_types"`
	MaxFiles      int      `yaml:"max_files" json:"max_files"`
	InboxDir      string   `yaml:"inbox_dir" json:"inbox_dir"` // watched for dropped files when set
}

// LoadingConfig configures the waiting screen
type LoadingConfig struct {
	FactsFile       string        `yaml:"facts_file" json:"facts_file"` // path or URL, empty for built-in facts
	RotationPeriod  time.Duration `yaml:"rotation_period" json:"rotation_period"`
	TickPeriod      time.Duration `yaml:"tick_period" json:"tick_period"`
	MinimumDuration time.Duration `yaml:"minimum_duration" json:"minimum_duration"`
	EnforceMinimum  bool          `yaml:"enforce_minimum" json:"enforce_minimum"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	Theme         string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			Endpoint:         "http://localhost:8000",
			Timeout:          2 * time.Minute,
			ValidateResponse: true,
		},
		Intake: IntakeConfig{
			AcceptedTypes: []string{"application/pdf"},
			MaxFiles:      1,
		},
		Loading: LoadingConfig{
			RotationPeriod:  5 * time.Second,
			TickPeriod:      time.Second,
			MinimumDuration: 15 * time.Second,
			EnforceMinimum:  true,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Theme:         "default",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateIntakeConfig(); err != nil {
		return err
	}
	if err := c.validateLoadingConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

func (c *Config) validateServiceConfig() error {
	if c.Service.Endpoint == "" {
		return fmt.Errorf("service endpoint is required")
	}
	u, err := url.Parse(c.Service.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid service endpoint: %s (must be an http or https URL)", c.Service.Endpoint)
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("service timeout must be positive")
	}
	return nil
}

func (c *Config) validateIntakeConfig() error {
	if len(c.Intake.AcceptedTypes) == 0 {
		return fmt.Errorf("accepted_types must list at least one media type")
	}
	if c.Intake.MaxFiles < 1 {
		return fmt.Errorf("max_files must be greater than 0")
	}
	return nil
}

func (c *Config) validateLoadingConfig() error {
	if c.Loading.RotationPeriod <= 0 {
		return fmt.Errorf("rotation_period must be positive")
	}
	if c.Loading.TickPeriod <= 0 {
		return fmt.Errorf("tick_period must be positive")
	}
	if c.Loading.MinimumDuration < 0 {
		return fmt.Errorf("minimum_duration must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}
