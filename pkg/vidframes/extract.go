package vidframes

import (
	"context"

	"github.com/user/vidframes/pkg/adapters/imagewriter"
	"github.com/user/vidframes/pkg/adapters/logger"
	"github.com/user/vidframes/pkg/adapters/multisink"
	"github.com/user/vidframes/pkg/adapters/nullsink"
	"github.com/user/vidframes/pkg/adapters/osfilesystem"
	"github.com/user/vidframes/pkg/adapters/smartsource"
	"github.com/user/vidframes/pkg/orchestrator"
	"github.com/user/vidframes/pkg/pipeline"
	"github.com/user/vidframes/pkg/ports"
	"github.com/user/vidframes/pkg/stages/sample"
)

// Result describes a finished export.
type Result = pipeline.RunResult

// Dependencies overrides the default adapters. Nil fields use defaults:
// a no-op logger, the OS file system, and no progress sink beyond
// Config.OnProgress.
type Dependencies struct {
	Logger     ports.Logger
	FileSystem ports.FileSystem
	Opener     ports.SourceOpener
	Writer     ports.ImageWriter
	Progress   ports.ProgressSink
	Version    string
}

// NewOrchestrator wires an orchestrator for cfg.
func NewOrchestrator(cfg Config, deps Dependencies) *orchestrator.Orchestrator {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	fs := deps.FileSystem
	if fs == nil {
		fs = osfilesystem.New()
	}
	opener := deps.Opener
	if opener == nil {
		opener = smartsource.New(smartsource.Options{
			Backend:    cfg.Backend,
			FFmpegPath: cfg.FFmpegPath,
		}, log)
	}
	writer := deps.Writer
	if writer == nil {
		writer = imagewriter.New(fs, cfg.Quality, cfg.FFmpegPath)
	}
	writer = imagewriter.NewResizer(writer, cfg.Width)

	var callback ports.ProgressSink
	if cfg.OnProgress != nil {
		callback = ports.ProgressFunc(cfg.OnProgress)
	}
	var sink ports.ProgressSink = nullsink.New()
	if deps.Progress != nil || callback != nil {
		sink = multisink.New(deps.Progress, callback)
	}

	stage := sample.NewStage(writer, sink, log)
	return orchestrator.New(opener, stage, fs, sink, log, orchestrator.WithVersion(deps.Version))
}

// Extract writes every cfg.Step-th frame of videoPath into outputDir as
// frame_<n>.<format> using the default adapters.
//
// Example:
//
//	cfg := vidframes.NewConfigBuilder().
//	    WithStep(30).
//	    WithFormat("png").
//	    Build()
//	result, err := vidframes.Extract(ctx, "input.mp4", "frames", cfg)
func Extract(ctx context.Context, videoPath, outputDir string, cfg Config) (Result, error) {
	return ExtractWith(ctx, videoPath, outputDir, cfg, Dependencies{})
}

// ExtractWith is Extract with custom dependencies.
func ExtractWith(ctx context.Context, videoPath, outputDir string, cfg Config, deps Dependencies) (Result, error) {
	return NewOrchestrator(cfg, deps).Run(ctx, cfg.ToOrchestratorConfig(videoPath, outputDir))
}
