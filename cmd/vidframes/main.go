// Package main provides the CLI entry point for vidframes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidframes/pkg/adapters/consoleprogress"
	"github.com/user/vidframes/pkg/adapters/containerprobe"
	"github.com/user/vidframes/pkg/adapters/logger"
	"github.com/user/vidframes/pkg/adapters/multisink"
	"github.com/user/vidframes/pkg/adapters/smartsource"
	"github.com/user/vidframes/pkg/adapters/wsprogress"
	"github.com/user/vidframes/pkg/config"
	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/pipeline"
	"github.com/user/vidframes/pkg/ports"
	"github.com/user/vidframes/pkg/vidframes"
)

var version = "dev"

// Exit codes
const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

// progressPath is where the websocket progress hub is mounted.
const progressPath = "/progress"

// usageError marks errors caused by bad arguments or settings.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintln(stderr, l10n.F("Error: %v", err))
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var uerr *usageError
	if errors.As(err, &uerr) || pipeline.IsConfigError(err) {
		return exitConfig
	}
	return exitError
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "vidframes",
		Usage:     l10n.T("Export every Nth frame of a video as numbered images"),
		UsageText: "vidframes [options] <video>",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     extractFlags(),
		Action:    extractAction,
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return &usageError{err: err}
		},
		Commands: []*cli.Command{
			{
				Name:      "probe",
				Usage:     l10n.T("Show the video stream metadata"),
				ArgsUsage: "<video>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "ffmpeg",
						Usage:   l10n.T("Path to the ffmpeg executable"),
						EnvVars: []string{"VIDFRAMES_FFMPEG"},
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: l10n.T("Print metadata as JSON"),
					},
				},
				Action: probeAction,
				OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
					return &usageError{err: err}
				},
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("vidframes version %s", version))
					return nil
				},
			},
		},
	}
}

func extractFlags() []cli.Flag {
	defaults := config.Defaults()
	return []cli.Flag{
		// Output
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output directory (required)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a run summary (.json for JSON, otherwise Markdown)"),
			Category: l10n.T("Output"),
		},

		// Sampling
		&cli.IntFlag{
			Name:     "step",
			Aliases:  []string{"n"},
			Value:    defaults.Step,
			Usage:    l10n.T("Keep every Nth frame"),
			EnvVars:  []string{"VIDFRAMES_STEP"},
			Category: l10n.T("Sampling"),
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Value:    defaults.Format,
			Usage:    l10n.F("Image format (%s)", strings.Join(imageformat.Supported(), ", ")),
			EnvVars:  []string{"VIDFRAMES_FORMAT"},
			Category: l10n.T("Sampling"),
		},

		// Decoding and encoding
		&cli.StringFlag{
			Name:     "backend",
			Value:    defaults.Backend,
			Usage:    l10n.T("Decoding backend (auto, ffmpeg, mpeg)"),
			Category: l10n.T("Decoding and Encoding"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg",
			Usage:    l10n.T("Path to the ffmpeg executable"),
			EnvVars:  []string{"VIDFRAMES_FFMPEG"},
			Category: l10n.T("Decoding and Encoding"),
		},
		&cli.IntFlag{
			Name:     "quality",
			Aliases:  []string{"q"},
			Value:    defaults.Quality,
			Usage:    l10n.T("JPEG quality (1-100)"),
			Category: l10n.T("Decoding and Encoding"),
		},
		&cli.IntFlag{
			Name:     "width",
			Usage:    l10n.T("Resize frames to this width (0 keeps the original size)"),
			Category: l10n.T("Decoding and Encoding"),
		},

		// Progress and logging
		&cli.StringFlag{
			Name:     "progress-addr",
			Usage:    l10n.T("Serve websocket progress events at this address (e.g. :8080)"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML file with default settings"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    defaults.LogLevel,
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log and progress output"),
			Category: l10n.T("Logging"),
		},
	}
}

// resolveSettings merges settings with the precedence
// flag > environment > config file > built-in default.
func resolveSettings(c *cli.Context) (config.Config, error) {
	settings := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return settings, &usageError{err: fmt.Errorf("load config: %w", err)}
		}
		settings = loaded
	}

	if c.IsSet("step") {
		settings.Step = c.Int("step")
	}
	if c.IsSet("format") {
		settings.Format = c.String("format")
	}
	if c.IsSet("backend") {
		settings.Backend = c.String("backend")
	}
	if c.IsSet("ffmpeg") {
		settings.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("quality") {
		settings.Quality = c.Int("quality")
	}
	if c.IsSet("width") {
		settings.Width = c.Int("width")
	}
	if c.IsSet("summary") {
		settings.Summary = c.String("summary")
	}
	if c.IsSet("progress-addr") {
		settings.ProgressAddr = c.String("progress-addr")
	}
	if c.IsSet("log-level") {
		settings.LogLevel = c.String("log-level")
	}

	if err := settings.Validate(); err != nil {
		return settings, &usageError{err: err}
	}
	return settings, nil
}

// buildConfig creates a library Config from resolved settings.
func buildConfig(settings config.Config) (vidframes.Config, error) {
	backend, err := smartsource.ParseBackend(settings.Backend)
	if err != nil {
		return vidframes.Config{}, &usageError{err: err}
	}
	builder := vidframes.NewConfigBuilder().
		WithStep(settings.Step).
		WithFormat(settings.Format).
		WithBackend(backend).
		WithFFmpegPath(settings.FFmpegPath).
		WithWidth(settings.Width).
		WithSummary(settings.Summary)
	if settings.Quality > 0 {
		builder.WithQuality(settings.Quality)
	}
	return builder.Build(), nil
}

func newLogger(level ports.LogLevel, quiet bool, stdout, stderr io.Writer) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	if stdout == os.Stdout && stderr == os.Stderr {
		return logger.NewConsole(level)
	}
	return logger.NewConsoleWriter(level, stdout, stderr)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && logger.IsTerminal(f)
}

// extractAction runs the frame export.
func extractAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageErrorf("%s", l10n.T("expected exactly one video path"))
	}
	videoPath := c.Args().First()

	outputDir := c.String("output")
	if outputDir == "" {
		return usageErrorf("%s", l10n.T("--output is required"))
	}

	settings, err := resolveSettings(c)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(settings)
	if err != nil {
		return err
	}

	level, _ := ports.ParseLogLevel(settings.LogLevel)
	quiet := c.Bool("quiet")
	log := newLogger(level, quiet, c.App.Writer, c.App.ErrWriter)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Progress sinks
	var sinks []ports.ProgressSink
	if !quiet {
		sinks = append(sinks, consoleprogress.NewWriter(c.App.ErrWriter, isTerminal(c.App.ErrWriter), consoleprogress.DefaultInterval))
	}
	if settings.ProgressAddr != "" {
		hub := wsprogress.NewHub(log.WithComponent("progress"))
		stop, err := serveProgress(settings.ProgressAddr, hub, log)
		if err != nil {
			return err
		}
		defer stop()
		sinks = append(sinks, hub)
	}

	orch := vidframes.NewOrchestrator(cfg, vidframes.Dependencies{
		Logger:   log,
		Progress: multisink.New(sinks...),
		Version:  version,
	})

	_, err = orch.Run(ctx, cfg.ToOrchestratorConfig(videoPath, outputDir))
	return err
}

// serveProgress starts an HTTP server exposing hub at progressPath.
// The returned function closes all clients and stops the server.
func serveProgress(addr string, hub *wsprogress.Hub, log ports.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(progressPath, hub)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Progress server failed: %v", err)
		}
	}()
	log.Info("Serving progress at ws://%s%s", ln.Addr(), progressPath)

	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}

// probeAction prints the metadata of one video.
func probeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageErrorf("%s", l10n.T("expected exactly one video path"))
	}
	path := c.Args().First()

	info, err := containerprobe.Probe(c.Context, path, containerprobe.Options{FFmpegPath: c.String("ffmpeg")})
	if err != nil {
		return fmt.Errorf("probe %s: %w", path, err)
	}

	out := c.App.Writer
	if c.Bool("json") {
		data, err := sonic.ConfigStd.MarshalIndent(probeReport(info), "", "  ")
		if err != nil {
			return fmt.Errorf("encode probe result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w, h := info.DisplaySize()
	fmt.Fprintln(out, l10n.F("Container: %s", orUnknown(info.Container)))
	fmt.Fprintln(out, l10n.F("Codec: %s", orUnknown(info.Codec)))
	fmt.Fprintln(out, l10n.F("Resolution: %dx%d", w, h))
	if info.Rotation != 0 {
		fmt.Fprintln(out, l10n.F("Rotation: %d", info.Rotation))
	}
	if info.FrameRate > 0 {
		fmt.Fprintln(out, l10n.F("Frame rate: %.3f fps", info.FrameRate))
	} else {
		fmt.Fprintln(out, l10n.F("Frame rate: %s", l10n.T("unknown")))
	}
	if info.TotalFrames > 0 {
		fmt.Fprintln(out, l10n.F("Total frames: %d", info.TotalFrames))
	} else {
		fmt.Fprintln(out, l10n.F("Total frames: %s", l10n.T("unknown")))
	}
	return nil
}

type probeJSON struct {
	Container   string  `json:"container"`
	Codec       string  `json:"codec"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Rotation    int     `json:"rotation"`
	FrameRate   float64 `json:"frame_rate"`
	TotalFrames int     `json:"total_frames"`
}

func probeReport(info containerprobe.Info) probeJSON {
	w, h := info.DisplaySize()
	return probeJSON{
		Container:   info.Container,
		Codec:       info.Codec,
		Width:       w,
		Height:      h,
		Rotation:    info.Rotation,
		FrameRate:   info.FrameRate,
		TotalFrames: info.TotalFrames,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return l10n.T("unknown")
	}
	return s
}
