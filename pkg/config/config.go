// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/vidframes/pkg/adapters/smartsource"
	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/ports"
)

// Config represents the file-level defaults for vidframes.
// Input and output paths are always given on the command line.
type Config struct {
	// Sampling
	Step   int    `yaml:"step"`
	Format string `yaml:"format"`

	// Decoding
	Backend    string `yaml:"backend"`
	FFmpegPath string `yaml:"ffmpeg"`

	// Encoding
	Quality int `yaml:"quality"`
	Width   int `yaml:"width"`

	// Output
	Summary      string `yaml:"summary"`
	ProgressAddr string `yaml:"progress_addr"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Step:     1,
		Format:   imageformat.Default,
		Backend:  string(smartsource.BackendAuto),
		Quality:  95,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that can be rejected without a video.
func (c Config) Validate() error {
	if c.Step < 1 {
		return fmt.Errorf("step must be a positive integer, got %d", c.Step)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if _, err := smartsource.ParseBackend(c.Backend); err != nil {
		return err
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
