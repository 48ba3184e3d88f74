package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.rfpcheck.yaml",               // Project-specific config (highest priority)
	"~/.config/rfpcheck/config.yaml", // User config
	"/etc/rfpcheck/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.rfpcheck.yaml
// 4. ~/.config/rfpcheck/config.yaml
// 5. /etc/rfpcheck/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over config. Keys absent from the file
// keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	merged := *config
	merged.Intake.AcceptedTypes = append([]string(nil), config.Intake.AcceptedTypes...)
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = merged
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service Config
		"RFPCHECK_SERVICE_ENDPOINT":          func(v string) error { config.Service.Endpoint = v; return nil },
		"RFPCHECK_SERVICE_TIMEOUT":           func(v string) error { return parseDuration(v, &config.Service.Timeout) },
		"RFPCHECK_SERVICE_VALIDATE_RESPONSE": func(v string) error { return parseBool(v, &config.Service.ValidateResponse) },

		// Intake Config
		"RFPCHECK_INTAKE_ACCEPTED_TYPES": func(v string) error { config.Intake.AcceptedTypes = splitList(v); return nil },
		"RFPCHECK_INTAKE_MAX_FILES":      func(v string) error { return parseInt(v, &config.Intake.MaxFiles) },
		"RFPCHECK_INTAKE_INBOX_DIR":      func(v string) error { config.Intake.InboxDir = v; return nil },

		// Loading Config
		"RFPCHECK_LOADING_FACTS_FILE":       func(v string) error { config.Loading.FactsFile = v; return nil },
		"RFPCHECK_LOADING_ROTATION_PERIOD":  func(v string) error { return parseDuration(v, &config.Loading.RotationPeriod) },
		"RFPCHECK_LOADING_TICK_PERIOD":      func(v string) error { return parseDuration(v, &config.Loading.TickPeriod) },
		"RFPCHECK_LOADING_MINIMUM_DURATION": func(v string) error { return parseDuration(v, &config.Loading.MinimumDuration) },
		"RFPCHECK_LOADING_ENFORCE_MINIMUM":  func(v string) error { return parseBool(v, &config.Loading.EnforceMinimum) },

		// Output Config
		"RFPCHECK_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"RFPCHECK_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"RFPCHECK_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"RFPCHECK_OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Save writes config as YAML to path, creating parent directories
func Save(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return WriteFile(path, data)
}

// WriteFile writes raw config content to path, creating parent directories
func WriteFile(path string, data []byte) error {
	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ExpandPath expands a leading ~ in user-supplied paths
func ExpandPath(path string) string {
	return expandPath(path)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
