// Package config holds compiler constants and the tipc.yaml configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level tipc.yaml configuration.
type Config struct {
	Checker CheckerConfig `yaml:"checker"`
	Output  OutputConfig  `yaml:"output"`
}

// CheckerConfig controls the type-check pass.
type CheckerConfig struct {
	// CollectErrors keeps checking remaining functions after a type error
	// instead of stopping at the first one. Within a single function the
	// pass always stops at the first error to avoid cascades.
	CollectErrors bool `yaml:"collect_errors"`
}

// OutputConfig controls diagnostic and listing output.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `yaml:"color"`
	// Annotate prints the typed listing after a successful check.
	Annotate bool `yaml:"annotate"`
}

// Default returns the configuration used when no tipc.yaml is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Color: "auto"},
	}
}

// Load reads and validates a tipc.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	switch cfg.Output.Color {
	case "", "auto":
		cfg.Output.Color = "auto"
	case "always", "never":
	default:
		return nil, fmt.Errorf("parsing %s: output.color must be auto, always or never, got %q", path, cfg.Output.Color)
	}
	return cfg, nil
}

// LoadIfPresent loads path when it exists and falls back to defaults
// otherwise.
func LoadIfPresent(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
