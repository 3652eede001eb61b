// Package config loads mathdrill settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathdrill/internal/comms"
	"github.com/abhisek/mathdrill/internal/results"
)

// Default values for Config.
const (
	DefaultTotalTasks    = 5
	DefaultFailurePolicy = "reenter"
)

// Config holds session settings. Zero values are replaced by defaults.
type Config struct {
	TotalTasks    int    `yaml:"total_tasks" json:"total_tasks"`
	ResultsFile   string `yaml:"results_file" json:"results_file"`
	HistoryDB     string `yaml:"history_db" json:"history_db"`
	FailurePolicy string `yaml:"failure_policy" json:"failure_policy"`
	Prompt        string `yaml:"prompt" json:"prompt"`

	// Level preselects a level id; 0 asks the user.
	Level int `yaml:"level" json:"level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		TotalTasks:    DefaultTotalTasks,
		ResultsFile:   results.DefaultPath,
		FailurePolicy: DefaultFailurePolicy,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// DefaultPath resolves the config file location:
// 1. MATHDRILL_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/mathdrill/config.yaml
// 3. ~/.config/mathdrill/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("MATHDRILL_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mathdrill", "config.yaml"), nil
}

// Load reads and parses the YAML file at path. A missing file yields the
// default config. The document is checked against the config schema before
// it is decoded, and defaults fill any field left out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if doc != nil {
		if err := validateSchema(doc); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all config values are valid.
func Validate(cfg *Config) error {
	if cfg.TotalTasks < 0 {
		return ValidationError{Field: "total_tasks", Message: "must not be negative"}
	}
	if cfg.ResultsFile == "" {
		return ValidationError{Field: "results_file", Message: "must not be empty"}
	}
	if _, err := comms.ParseFailurePolicy(cfg.FailurePolicy); err != nil {
		return ValidationError{Field: "failure_policy", Message: err.Error()}
	}
	if cfg.Level < 0 {
		return ValidationError{Field: "level", Message: "must not be negative"}
	}
	return nil
}

// Policy returns the parsed failure policy.
func (c *Config) Policy() comms.FailurePolicy {
	p, _ := comms.ParseFailurePolicy(c.FailurePolicy)
	return p
}
