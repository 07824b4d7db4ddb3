// Package config loads optional defaults for the CLI from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openaipro/openaipro/pkg/request"
)

// Config holds optional defaults applied when the corresponding flag is not
// given. Zero values mean "no default".
type Config struct {
	BaseURL         string   `yaml:"base_url"`
	APIKey          string   `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	Model           string   `yaml:"model"`
	ReasoningEffort string   `yaml:"reasoning_effort"`
	MaxTokens       int      `yaml:"max_tokens"`
	Temperature     *float64 `yaml:"temperature"`
	Instructions    string   `yaml:"instructions"`
}

// Load reads a YAML file and returns a Config. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing, so
// the API key can be kept in the environment (e.g. loaded from a .env file)
// rather than committed in the config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that configured defaults pass the same rules as their
// command-line counterparts.
func (c Config) Validate() error {
	if _, err := request.ParseEffort(c.ReasoningEffort); err != nil {
		return fmt.Errorf("config: reasoning_effort %q: must be one of low, medium, high", c.ReasoningEffort)
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("config: max_tokens %d: must be a positive integer", c.MaxTokens)
	}

	if c.Temperature != nil {
		t := *c.Temperature
		if t < request.MinTemperature || t > request.MaxTemperature {
			return fmt.Errorf("config: temperature %g: must be between %g and %g",
				t, request.MinTemperature, request.MaxTemperature)
		}
	}

	return nil
}
