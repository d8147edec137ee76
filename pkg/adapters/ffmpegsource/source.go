// Package ffmpegsource decodes video through an ffmpeg child process that
// streams raw RGBA frames over a pipe.
package ffmpegsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/vidframes/pkg/adapters/containerprobe"
	"github.com/user/vidframes/pkg/adapters/ffmpegbin"
	"github.com/user/vidframes/pkg/ports"
)

// ErrUnknownGeometry is returned when the frame size of a video cannot be probed.
var ErrUnknownGeometry = errors.New("ffmpegsource: cannot determine frame size")

// Opener starts an ffmpeg decode for each opened path.
type Opener struct {
	ffmpegPath string
	logger     ports.Logger
}

// NewOpener creates an opener. ffmpegPath may be empty to search PATH.
func NewOpener(ffmpegPath string, logger ports.Logger) *Opener {
	return &Opener{
		ffmpegPath: ffmpegPath,
		logger:     logger.WithComponent("ffmpeg"),
	}
}

// Open probes path and starts decoding it. The child process is bound to ctx.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	bin, err := ffmpegbin.FFmpeg(o.ffmpegPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	o.logger.Debug("Probing %s", path)
	meta, err := containerprobe.Probe(ctx, path, containerprobe.Options{FFmpegPath: bin})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownGeometry, err)
	}
	width, height := meta.DisplaySize()
	if width <= 0 || height <= 0 {
		return nil, ErrUnknownGeometry
	}

	if !meta.RotationKnown {
		o.logger.Debug("Rotation unknown for %s, decoding without autorotate", path)
	}
	args := BuildArgs(path, width, height, meta.RotationKnown)
	o.logger.Debug("Starting ffmpeg: %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, bin, args...)
	stderr := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	return &Source{
		info: ports.SourceInfo{
			TotalFrames: meta.TotalFrames,
			FrameRate:   meta.FrameRate,
			Width:       width,
			Height:      height,
			Codec:       meta.Codec,
			Backend:     "ffmpeg",
		},
		cmd:    cmd,
		frames: NewFrameReader(stdout, width, height),
		stderr: stderr,
	}, nil
}

// BuildArgs returns the ffmpeg arguments that decode the first video stream
// of path to width x height RGBA frames on stdout. Scaling to the probed size
// keeps every frame exactly width*height*4 bytes.
//
// autorotate must be false when the container rotation was not read, so
// ffmpeg keeps the coded orientation that width x height describes.
func BuildArgs(path string, width, height int, autorotate bool) []string {
	in := ffmpeg.KwArgs{"loglevel": "error"}
	if !autorotate {
		in["noautorotate"] = ""
	}
	return ffmpeg.Input(path, in).
		Output("pipe:", ffmpeg.KwArgs{
			"map":     "0:v:0",
			"f":       "rawvideo",
			"pix_fmt": "rgba",
			"vf":      fmt.Sprintf("scale=%d:%d", width, height),
		}).
		GetArgs()
}

// Source is a running ffmpeg decode.
type Source struct {
	info   ports.SourceInfo
	cmd    *exec.Cmd
	frames *FrameReader
	stderr *tailBuffer

	waitOnce  sync.Once
	waitErr   error
	closeOnce sync.Once
}

func (s *Source) Info() ports.SourceInfo {
	return s.info
}

// Next returns the next decoded frame, or io.EOF once ffmpeg has exited
// cleanly after its last complete frame.
func (s *Source) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := s.frames.Next()
	if err == nil {
		return img, nil
	}

	waitErr := s.wait()
	switch {
	case errors.Is(err, io.EOF) && waitErr == nil:
		return nil, io.EOF
	case errors.Is(err, io.EOF):
		return nil, s.decodeError(waitErr)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, s.decodeError(fmt.Errorf("truncated frame: %w", err))
	default:
		return nil, s.decodeError(err)
	}
}

// Close stops ffmpeg if it is still running. It is safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		s.wait()
	})
	return nil
}

func (s *Source) wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
	})
	return s.waitErr
}

func (s *Source) decodeError(err error) error {
	if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
		return fmt.Errorf("ffmpeg decode failed: %w\nstderr: %s", err, msg)
	}
	return fmt.Errorf("ffmpeg decode failed: %w", err)
}

var (
	_ ports.SourceOpener = (*Opener)(nil)
	_ ports.VideoSource  = (*Source)(nil)
)
