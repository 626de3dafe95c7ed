// Package config loads the eq configuration file. The file lives in the
// data directory as config.yaml; a missing file means defaults. API keys may
// come from the environment instead of the file, which keeps credentials out
// of synced dotfiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all eq configuration.
type Config struct {
	Assistant AssistantConfig `yaml:"assistant"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AssistantConfig configures the assistant gateway.
type AssistantConfig struct {
	Provider string `yaml:"provider"` // openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// SessionConfig configures the interactive session.
type SessionConfig struct {
	PollInterval    string `yaml:"poll_interval"`
	PomodoroMinutes int    `yaml:"pomodoro_minutes"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Provider: "openai",
			Model:    "gpt-4o",
			BaseURL:  "https://api.openai.com/v1",
			Timeout:  "120s",
		},
		Session: SessionConfig{
			PollInterval:    "100ms",
			PomodoroMinutes: 25,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "eq.log",
		},
	}
}

// Load reads configuration from a YAML file, layering it over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveAPIKey returns the configured key, falling back to the provider's
// conventional environment variable.
func (a AssistantConfig) ResolveAPIKey() string {
	if a.APIKey != "" {
		return a.APIKey
	}
	switch a.Provider {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// ResolveTimeout parses the assistant timeout, defaulting to two minutes on
// a missing or malformed value.
func (a AssistantConfig) ResolveTimeout() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// ResolvePollInterval parses the session poll cadence, defaulting to 100ms.
func (s SessionConfig) ResolvePollInterval() time.Duration {
	d, err := time.ParseDuration(s.PollInterval)
	if err != nil || d <= 0 {
		return 100 * time.Millisecond
	}
	return d
}
