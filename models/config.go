// Package models defines data structures for configuration, analyzed
// layouts, and the mapping documents written to disk.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds optional settings loaded from a YAML file. CLI flags
// override anything set here.
type Config struct {
	SiteURL        string `yaml:"site_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

const defaultTimeoutSeconds = 30

// LoadConfig reads a YAML config file. A missing file is not an error;
// defaults are returned so the tool works with flags alone.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		TimeoutSeconds: defaultTimeoutSeconds,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}

	return cfg, nil
}

// Timeout returns the configured request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
