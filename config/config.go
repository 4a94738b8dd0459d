// Package config loads the optional sysdiag configuration file. Everything
// has a compiled-in default; a missing file at the default location is not
// an error.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no --config flag is given.
const DefaultPath = "/etc/sysdiag.yaml"

// Duration wraps time.Duration with YAML support for "5s"-style strings.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Timeouts bounds external command execution per concern. Journal queries
// get a larger default than one-shot lookups.
type Timeouts struct {
	Default Duration `yaml:"default"`
	Logs    Duration `yaml:"logs"`
}

// Manual configures where the generated tool manual lands.
type Manual struct {
	Out string `yaml:"out"`
}

// Config matches the sysdiag YAML configuration file.
type Config struct {
	Timeouts Timeouts `yaml:"timeouts"`
	Manual   Manual   `yaml:"manual"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Timeouts: Timeouts{
			Default: Duration(5 * time.Second),
			Logs:    Duration(15 * time.Second),
		},
		Manual: Manual{Out: "manuals/sysdiag.json"},
	}
}

// Load reads the configuration at path. A missing file at the default
// location falls back to Default; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Timeouts.Default <= 0 || cfg.Timeouts.Logs <= 0 {
		return nil, fmt.Errorf("config %s: timeouts must be positive", path)
	}
	return cfg, nil
}

// CommandTimeout selects the timeout for a diagnostic category.
func (c *Config) CommandTimeout(category string) time.Duration {
	if category == "logs" {
		return time.Duration(c.Timeouts.Logs)
	}
	return time.Duration(c.Timeouts.Default)
}
