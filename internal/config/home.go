package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the protokoll home directory when set.
const HomeEnvVar = "PROTOKOLL_HOME"

// Home returns the protokoll home directory.
// Priority order:
//  1. PROTOKOLL_HOME environment variable (if set)
//  2. ~/.protokoll
//
// The directory is created if it doesn't exist.
func Home() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create protokoll home directory: %w", err)
		}
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}

	protokollHome := filepath.Join(userHome, ".protokoll")
	if err := os.MkdirAll(protokollHome, 0755); err != nil {
		return "", fmt.Errorf("create protokoll home directory: %w", err)
	}

	return protokollHome, nil
}

// RegistryPath returns the path of the custom log directory registry file.
func RegistryPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "custom_log_dirs.json"), nil
}

// ConfigPath returns the path of the configuration file.
func ConfigPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
