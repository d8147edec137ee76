// Package vidframes provides a high-level API for exporting video frames as
// numbered image files.
package vidframes

import (
	"github.com/user/vidframes/pkg/adapters/smartsource"
	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/orchestrator"
	"github.com/user/vidframes/pkg/ports"
)

// Config represents the configuration for a frame export.
type Config struct {
	// Sampling
	Step   int    // keep every Step-th frame (>= 1)
	Format string // image extension (default: jpg)

	// Decoding
	Backend    smartsource.Backend // auto, ffmpeg or mpeg
	FFmpegPath string              // custom ffmpeg binary, empty to search PATH

	// Encoding
	Quality int // JPEG quality (1-100, default: 95)
	Width   int // resize frames to this width, 0 keeps the original size

	// SummaryPath receives a run summary when set.
	SummaryPath string

	// OnProgress is called after every frame read.
	OnProgress func(ports.Progress)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: defaults(),
	}
}

func defaults() Config {
	return Config{
		Step:    1,
		Format:  imageformat.Default,
		Backend: smartsource.BackendAuto,
		Quality: 95,
	}
}

// Build returns the final Config, applying constraints.
// Step is left as given so that an invalid value is reported by the run.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.Quality < 1 {
		cfg.Quality = 1
	}
	if cfg.Quality > 100 {
		cfg.Quality = 100
	}
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Backend == "" {
		cfg.Backend = smartsource.BackendAuto
	}

	return cfg
}

// WithStep sets the sampling step.
func (b *ConfigBuilder) WithStep(step int) *ConfigBuilder {
	b.config.Step = step
	return b
}

// WithFormat sets the output image extension.
func (b *ConfigBuilder) WithFormat(format string) *ConfigBuilder {
	b.config.Format = format
	return b
}

// WithBackend sets the decoding backend.
func (b *ConfigBuilder) WithBackend(backend smartsource.Backend) *ConfigBuilder {
	b.config.Backend = backend
	return b
}

// WithFFmpegPath sets a custom ffmpeg binary.
func (b *ConfigBuilder) WithFFmpegPath(path string) *ConfigBuilder {
	b.config.FFmpegPath = path
	return b
}

// WithQuality sets the JPEG quality.
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithWidth resizes frames to width pixels, keeping the aspect ratio.
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.config.Width = width
	return b
}

// WithSummary writes a run summary to path (JSON for .json, else Markdown).
func (b *ConfigBuilder) WithSummary(path string) *ConfigBuilder {
	b.config.SummaryPath = path
	return b
}

// WithProgress sets the per-frame progress callback.
func (b *ConfigBuilder) WithProgress(fn func(ports.Progress)) *ConfigBuilder {
	b.config.OnProgress = fn
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(videoPath, outputDir string) orchestrator.Config {
	return orchestrator.Config{
		VideoPath:   videoPath,
		OutputDir:   outputDir,
		Step:        c.Step,
		Format:      c.Format,
		SummaryPath: c.SummaryPath,
		Quality:     c.Quality,
		Width:       c.Width,
	}
}
