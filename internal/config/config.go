// Package config loads gitid's per-user settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ksteinfeldt/gitid/internal/hook"
	"github.com/ksteinfeldt/gitid/internal/identity"
)

// Environment overrides.
const (
	EnvVarConfig   = "GITID_CONFIG"
	EnvVarLogLevel = "GITID_LOG_LEVEL"
)

// FileName is the config file's name inside the app directory.
const FileName = "config.toml"

// Config holds gitid settings.
type Config struct {
	// StorePath is the identity store file. GITID_STORE takes precedence.
	StorePath string `toml:"store_path"`

	// HooksDir is where the commit hook is installed and what
	// core.hooksPath is pointed at.
	HooksDir string `toml:"hooks_dir"`

	// Log controls the diagnostic log.
	Log LogConfig `toml:"log"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`

	// File is the log file. Empty disables logging so hook output stays clean.
	File string `toml:"file,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig(appDir string) *Config {
	return &Config{
		StorePath: identity.StorePath(appDir),
		HooksDir:  hook.DefaultDir(appDir),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the config file path.
// Priority order:
//  1. GITID_CONFIG environment variable
//  2. <appDir>/config.toml
func Path(appDir string) string {
	if p := os.Getenv(EnvVarConfig); p != "" {
		return p
	}
	return filepath.Join(appDir, FileName)
}

// Load reads the config file for appDir, applying defaults for missing keys
// and environment overrides. A missing file is not an error.
func Load(appDir string) (*Config, error) {
	cfg := DefaultConfig(appDir)
	path := Path(appDir)

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if p := os.Getenv(identity.EnvVarStore); p != "" {
		cfg.StorePath = p
	}
	if lvl := os.Getenv(EnvVarLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}

	return cfg, nil
}

// EnsureFile writes the default settings when no config file exists yet, so
// there is one to edit. Reports the path and whether it was written.
func EnsureFile(appDir string) (string, bool, error) {
	path := Path(appDir)
	_, err := os.Stat(path)
	if err == nil {
		return path, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return path, false, fmt.Errorf("checking config %s: %w", path, err)
	}
	if err := Save(path, DefaultConfig(appDir)); err != nil {
		return path, false, err
	}
	return path, true, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644) //nolint:gosec // G306: config is not secret
}
