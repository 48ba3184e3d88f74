package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Service.Endpoint != "http://localhost:8000" {
		t.Errorf("Expected default endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 2*time.Minute {
		t.Errorf("Expected 2m timeout, got %v", cfg.Service.Timeout)
	}
	if !cfg.Service.ValidateResponse {
		t.Error("Expected response validation enabled by default")
	}
	if len(cfg.Intake.AcceptedTypes) != 1 || cfg.Intake.AcceptedTypes[0] != "application/pdf" {
		t.Errorf("Expected PDF-only intake, got %v", cfg.Intake.AcceptedTypes)
	}
	if cfg.Intake.MaxFiles != 1 {
		t.Errorf("Expected max_files 1, got %d", cfg.Intake.MaxFiles)
	}
	if cfg.Loading.RotationPeriod != 5*time.Second || cfg.Loading.TickPeriod != time.Second {
		t.Errorf("Unexpected loading periods: %+v", cfg.Loading)
	}
	if cfg.Loading.MinimumDuration != 15*time.Second || !cfg.Loading.EnforceMinimum {
		t.Errorf("Unexpected loading minimum: %+v", cfg.Loading)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:   "missing endpoint",
			modify: func(c *Config) { c.Service.Endpoint = "" },
			errMsg: "service endpoint is required",
		},
		{
			name:   "bad endpoint scheme",
			modify: func(c *Config) { c.Service.Endpoint = "ftp://example.com" },
			errMsg: "invalid service endpoint: ftp://example.com (must be an http or https URL)",
		},
		{
			name:   "zero timeout",
			modify: func(c *Config) { c.Service.Timeout = 0 },
			errMsg: "service timeout must be positive",
		},
		{
			name:   "no accepted types",
			modify: func(c *Config) { c.Intake.AcceptedTypes = nil },
			errMsg: "accepted_types must list at least one media type",
		},
		{
			name:   "zero max files",
			modify: func(c *Config) { c.Intake.MaxFiles = 0 },
			errMsg: "max_files must be greater than 0",
		},
		{
			name:   "zero rotation",
			modify: func(c *Config) { c.Loading.RotationPeriod = 0 },
			errMsg: "rotation_period must be positive",
		},
		{
			name:   "negative minimum",
			modify: func(c *Config) { c.Loading.MinimumDuration = -time.Second },
			errMsg: "minimum_duration must be non-negative",
		},
		{
			name:   "invalid output format",
			modify: func(c *Config) { c.Output.DefaultFormat = "invalid" },
			errMsg: "invalid output format: invalid (must be one of: json, text, markdown, csv)",
		},
		{
			name:   "invalid color mode",
			modify: func(c *Config) { c.Output.ColorMode = "invalid" },
			errMsg: "invalid color mode: invalid (must be one of: auto, always, never)",
		},
		{
			name:   "invalid theme",
			modify: func(c *Config) { c.Output.Theme = "neon" },
			errMsg: "invalid theme: neon (must be one of: default, high-contrast, minimal)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tt.errMsg)
			}
			if err.Error() != tt.errMsg {
				t.Errorf("Expected error %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}
