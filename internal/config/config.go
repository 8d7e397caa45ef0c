package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/contexlog"
)

// Config holds the tunables of the demo binary.
type Config struct {
	// Level overrides the LOG_LEVEL environment variable when non-empty.
	Level string `yaml:"level"`
	// Color selects colored output: "auto", "on" or "off".
	Color string `yaml:"color"`
	// Requests is the number of concurrent simulated requests to run.
	Requests int `yaml:"requests"`
}

const (
	// DefaultConfigFilename is the default filename for demo settings.
	DefaultConfigFilename = "contexlog-demo.yaml"

	// DefaultColor is the coloring mode used when none is configured.
	DefaultColor = "auto"

	// DefaultRequests is the number of simulated requests when none is
	// configured.
	DefaultRequests = 3
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLevel is returned for a level name ParseLevel rejects.
	errUnknownLevel = errors.New("unknown log level")
	// errUnknownColor is returned for a color mode outside auto/on/off.
	errUnknownColor = errors.New("color must be auto, on or off")
	// errBadRequests is returned for a non-positive request count.
	errBadRequests = errors.New("requests must be positive")
)

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		Color:    DefaultColor,
		Requests: DefaultRequests,
	}
}

// Load reads configuration from the provided path and validates it. An
// empty path yields the defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the essential fields of a configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Level != "" {
		if _, ok := contexlog.ParseLevel(cfg.Level); !ok {
			return fmt.Errorf("%w: %q", errUnknownLevel, cfg.Level)
		}
	}

	switch cfg.Color {
	case "", DefaultColor, "on", "off":
	default:
		return fmt.Errorf("%w: %q", errUnknownColor, cfg.Color)
	}

	if cfg.Requests <= 0 {
		return fmt.Errorf("%w: %d", errBadRequests, cfg.Requests)
	}

	return nil
}
