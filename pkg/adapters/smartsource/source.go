// Package smartsource picks a decoding backend for each video and opens it.
package smartsource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/vidframes/pkg/adapters/ffmpegbin"
	"github.com/user/vidframes/pkg/adapters/ffmpegsource"
	"github.com/user/vidframes/pkg/adapters/mpegsource"
	"github.com/user/vidframes/pkg/ports"
)

// Backend represents the decoding backend.
type Backend string

const (
	// BackendAuto prefers ffmpeg and falls back to the pure-Go MPEG-1 decoder.
	BackendAuto Backend = "auto"
	// BackendFFmpeg decodes through an ffmpeg child process.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendMPEG decodes MPEG-1 program streams in process.
	BackendMPEG Backend = "mpeg"
)

var (
	// ErrUnknownBackend is returned for backend names other than auto, ffmpeg and mpeg.
	ErrUnknownBackend = errors.New("smartsource: unknown backend")
	// ErrNoBackendAvailable is returned when no backend can decode the file.
	ErrNoBackendAvailable = errors.New("smartsource: no decoder available (install ffmpeg, or use an MPEG-1 .mpg file)")
)

// ParseBackend converts a backend name. An empty name means auto.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendFFmpeg, BackendMPEG:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Options configures backend selection.
type Options struct {
	Backend Backend
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

// Opener implements ports.SourceOpener by delegating to a backend.
type Opener struct {
	opts   Options
	logger ports.Logger

	// hooks for tests
	ffmpegAvailable func(custom string) bool
	ffmpeg          ports.SourceOpener
	mpeg            ports.SourceOpener
}

// New creates an opener for the configured backend.
func New(opts Options, logger ports.Logger) *Opener {
	if opts.Backend == "" {
		opts.Backend = BackendAuto
	}
	return &Opener{
		opts:            opts,
		logger:          logger.WithComponent("source"),
		ffmpegAvailable: ffmpegbin.Available,
		ffmpeg:          ffmpegsource.NewOpener(opts.FFmpegPath, logger),
		mpeg:            mpegsource.NewOpener(logger),
	}
}

// Select returns the backend that will be used for path.
//
// The selection flow:
//   - ffmpeg or mpeg: used as configured
//   - auto: ffmpeg when installed, else mpeg for .mpg/.mpeg files
func (o *Opener) Select(path string) (Backend, error) {
	switch o.opts.Backend {
	case BackendFFmpeg, BackendMPEG:
		return o.opts.Backend, nil
	case BackendAuto:
		if o.ffmpegAvailable(o.opts.FFmpegPath) {
			return BackendFFmpeg, nil
		}
		if mpegsource.Supports(path) {
			return BackendMPEG, nil
		}
		return "", ErrNoBackendAvailable
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, o.opts.Backend)
	}
}

// Open selects a backend and opens path with it.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	backend, err := o.Select(path)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("Using %s backend for %s", backend, path)

	if backend == BackendMPEG {
		return o.mpeg.Open(ctx, path)
	}
	return o.ffmpeg.Open(ctx, path)
}

var _ ports.SourceOpener = (*Opener)(nil)
