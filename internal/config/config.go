package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the user configuration stored at <home>/config.yaml.
type Config struct {
	Version int        `yaml:"version"`
	List    ListConfig `yaml:"list"`
	Shim    ShimConfig `yaml:"shim"`
	Log     LogConfig  `yaml:"log"`
}

// ListConfig controls `jolt list`.
type ListConfig struct {
	// Format is human, plain, or empty to probe the terminal.
	Format string `yaml:"format"`
}

// ShimConfig controls `jolt shim`.
type ShimConfig struct {
	Verbose bool `yaml:"verbose"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File also writes logs to a timestamped file under <home>/log.
	File bool `yaml:"file"`
}

const currentVersion = 1

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: currentVersion,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML left empty and normalises case.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.List.Format = strings.ToLower(strings.TrimSpace(c.List.Format))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
