package analysis

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultEndpoint = "http://localhost:8000"
	DefaultTimeout  = 2 * time.Minute
	AnalyzePath     = "/analyze/"
)

// Config configures the analysis service client
type Config struct {
	Endpoint         string        `json:"endpoint"`
	Timeout          time.Duration `json:"timeout"`
	ValidateResponse bool          `json:"validate_response"` // reject verdicts other than Yes/No
}

// DefaultConfig returns the client defaults
func DefaultConfig() *Config {
	return &Config{
		Endpoint:         DefaultEndpoint,
		Timeout:          DefaultTimeout,
		ValidateResponse: true,
	}
}

// Validate checks the client configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return NewConfigurationError("endpoint", "endpoint is required")
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return NewConfigurationError("endpoint", fmt.Sprintf("invalid endpoint URL: %v", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("endpoint", "endpoint must use http or https")
	}

	if c.Timeout <= 0 {
		return NewConfigurationError("timeout", "timeout must be positive")
	}

	return nil
}
