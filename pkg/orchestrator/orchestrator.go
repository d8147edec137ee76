// Package orchestrator runs a complete frame export: it validates the
// request, opens the video, prepares the output directory, runs the sampling
// stage and reports completion.
package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/pipeline"
	"github.com/user/vidframes/pkg/ports"
	"github.com/user/vidframes/pkg/summarizer"
)

// Config contains all configuration for one export run.
type Config struct {
	// Input
	VideoPath string

	// Output
	OutputDir string
	Step      int
	Format    string // image extension; empty or unsupported falls back to jpg

	// SummaryPath, when set, receives a run summary (JSON for .json, else Markdown).
	SummaryPath string

	// Recorded in the summary only; the writer is configured by the caller.
	Quality int
	Width   int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Step:   1,
		Format: imageformat.Default,
	}
}

// Orchestrator coordinates the export of one video.
type Orchestrator struct {
	opener      ports.SourceOpener
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.RunResult]
	fs          ports.FileSystem
	sink        ports.ProgressSink
	logger      ports.Logger
	version     string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithVersion sets the version printed in summaries.
func WithVersion(v string) Option {
	return func(o *Orchestrator) {
		o.version = v
	}
}

// New creates a new Orchestrator. sink receives the completion notice; the
// sample stage is expected to report per-frame progress to the same sink.
func New(
	opener ports.SourceOpener,
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.RunResult],
	fs ports.FileSystem,
	sink ports.ProgressSink,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		opener:      opener,
		sampleStage: sampleStage,
		fs:          fs,
		sink:        sink,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks cfg without touching any resource.
func Validate(cfg Config) error {
	if cfg.VideoPath == "" {
		return &pipeline.ConfigError{Field: "video", Err: pipeline.ErrMissingVideoPath}
	}
	if cfg.OutputDir == "" {
		return &pipeline.ConfigError{Field: "output", Err: pipeline.ErrMissingOutputDir}
	}
	if cfg.Step < 1 {
		return &pipeline.ConfigError{Field: "step", Err: pipeline.ErrInvalidStep}
	}
	return nil
}

// Run exports every cfg.Step-th frame of cfg.VideoPath into cfg.OutputDir.
//
// Configuration errors are returned before the video is opened, and open
// errors before the output directory is created. Once the video is open it
// is closed exactly once, after which the sink's Done is called once.
// A read error mid-stream ends the run normally with a warning.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (pipeline.RunResult, error) {
	if err := Validate(cfg); err != nil {
		return pipeline.RunResult{}, err
	}

	format, ok := imageformat.Normalize(cfg.Format)
	if !ok && cfg.Format != "" {
		o.logger.Warn("Unsupported image format %q, using %s", cfg.Format, format)
	}

	o.logger.Info("Opening %s", cfg.VideoPath)
	source, err := o.opener.Open(ctx, cfg.VideoPath)
	if err != nil {
		openErr := &pipeline.OpenError{Path: cfg.VideoPath, Err: err}
		o.logger.Error("Failed to open video: %v", openErr)
		return pipeline.RunResult{}, openErr
	}

	result, runErr := o.export(ctx, source, cfg, format)

	o.sink.Done(ports.Completion{
		FramesRead:    result.FramesRead,
		FramesWritten: result.FramesWritten,
		Elapsed:       result.Elapsed,
		Err:           runErr,
	})

	switch {
	case runErr != nil && errors.Is(runErr, context.Canceled):
		o.logger.Warn("Interrupted after %d frames, %d written", result.FramesRead, result.FramesWritten)
	case runErr != nil:
		o.logger.Error("Export failed: %v", runErr)
	case result.Stop == pipeline.StopReadError:
		o.logger.Warn("Stream ended early after frame %d: %v", result.FramesRead, result.ReadErr)
	}
	if runErr == nil {
		o.logger.Info("Conversion complete: read %d frames, wrote %d in %s (%.2f fps)",
			result.FramesRead, result.FramesWritten, result.Elapsed.Round(time.Millisecond), result.Throughput())
	}

	if cfg.SummaryPath != "" {
		o.writeSummary(cfg, result, runErr)
	}

	return result, runErr
}

// export runs the stage with source open and releases it before returning.
func (o *Orchestrator) export(ctx context.Context, source ports.VideoSource, cfg Config, format string) (pipeline.RunResult, error) {
	defer func() {
		if err := source.Close(); err != nil {
			o.logger.Warn("Failed to release video source: %v", err)
		}
	}()

	info := source.Info()
	o.logger.Debug("Video: %dx%d %s (%s backend)", info.Width, info.Height, info.Codec, info.Backend)
	o.logger.Info("Total frames: %d, Frame rate: %.2f fps", info.TotalFrames, info.FrameRate)

	if err := o.fs.MkdirAll(cfg.OutputDir); err != nil {
		return pipeline.RunResult{Source: info, Step: cfg.Step, Format: format, OutputDir: cfg.OutputDir},
			&pipeline.WriteError{Path: cfg.OutputDir, Err: err}
	}

	if existing, err := o.fs.Glob(filepath.Join(cfg.OutputDir, "frame_*."+format)); err == nil && len(existing) > 0 {
		o.logger.Warn("Output directory %s already contains %d frame files; matching names will be overwritten",
			cfg.OutputDir, len(existing))
	}

	o.logger.Info("Writing every %d frame(s) as %s to %s", cfg.Step, format, cfg.OutputDir)

	return o.sampleStage.Execute(ctx, pipeline.SampleInput{
		Source:    source,
		OutputDir: cfg.OutputDir,
		Step:      cfg.Step,
		Format:    format,
	})
}

func (o *Orchestrator) writeSummary(cfg Config, result pipeline.RunResult, runErr error) {
	summary := summarizer.NewBuilder().
		WithSettings(summarizer.Settings{Quality: cfg.Quality, Width: cfg.Width}).
		WithRunResult(cfg.VideoPath, result).
		WithError(runErr).
		Build()

	formatter := summarizer.ForPath(cfg.SummaryPath,
		summarizer.WithTranslator(func(key string) string { return l10n.T(key) }),
		summarizer.WithVersion(o.version),
	)
	if err := summarizer.NewWriter(formatter, o.fs).Write(cfg.SummaryPath, summary); err != nil {
		o.logger.Warn("Failed to write summary: %v", err)
		return
	}
	o.logger.Info("Summary saved to %s", cfg.SummaryPath)
}
