package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents protokoll configuration options.
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where protokoll's own run logs are written.
	// Relative paths are resolved against the protokoll home.
	LogDir string `yaml:"log_dir"`

	// SearchDepth is the default traversal depth for directory discovery
	SearchDepth int `yaml:"search_depth"`

	// MaxFileSize is the hard ceiling for file reads, in bytes (0 = default)
	MaxFileSize int64 `yaml:"max_file_size"`

	// Color controls colorized terminal output ("auto", "always", "never")
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		LogDir:      "logs",
		SearchDepth: 3,
		MaxFileSize: 0, // Reader applies its own ceiling
		Color:       "auto",
	}
}

// Load loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads the configuration from the well-known location under the
// protokoll home, falling back to defaults when the home cannot be resolved.
func LoadDefault() *Config {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := Load(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", c.Color)
	}

	if c.SearchDepth < 0 {
		return fmt.Errorf("search_depth must not be negative, got %d", c.SearchDepth)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}

	return nil
}

// ResolvedLogDir returns the log directory as an absolute path, resolving
// relative values against the protokoll home.
func (c *Config) ResolvedLogDir() (string, error) {
	if filepath.IsAbs(c.LogDir) {
		return c.LogDir, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, c.LogDir), nil
}
