// Package config loads server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kabayan/go_score_parser/internal/core/judgment"
)

// Config holds file-based settings for the server binary. Everything is
// optional; zero values keep engine defaults.
type Config struct {
	// Patterns maps named pattern overrides (score_pattern,
	// category_pattern, reason_pattern, percentage_pattern,
	// number_pattern) to replacement regular expressions.
	Patterns map[string]string `yaml:"patterns"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that every pattern override names a known pattern and
// compiles. The same checks run again at parser construction; validating
// here surfaces config mistakes before the server starts.
func (c *Config) Validate() error {
	_, err := judgment.CompilePatternSet(c.Patterns)
	return err
}
