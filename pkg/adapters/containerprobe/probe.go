// Package containerprobe reads advisory stream metadata (frame count, frame
// rate, geometry) from video containers.
//
// MP4-family files are parsed directly with mp4ff, which reads the sample
// tables without decoding. Geometry and rotation come from ffprobe when it
// is installed, as does everything for other containers.
package containerprobe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/vidframes/pkg/adapters/ffmpegbin"
)

// Info contains advisory metadata about the primary video stream.
type Info struct {
	TotalFrames int
	FrameRate   float64
	Width       int
	Height      int
	Rotation    int // degrees, as stored in the container
	Codec       string
	Container   string

	// RotationKnown is set when Rotation was read from ffprobe. The mp4ff
	// path does not read the display matrix, so Rotation is 0 without it.
	RotationKnown bool
}

// DisplaySize returns the frame size after applying rotation, which is how
// ffmpeg delivers decoded frames.
func (i Info) DisplaySize() (int, int) {
	r := ((i.Rotation % 360) + 360) % 360
	if r == 90 || r == 270 {
		return i.Height, i.Width
	}
	return i.Width, i.Height
}

// Options configures probing.
type Options struct {
	// FFmpegPath is an optional custom ffmpeg path; ffprobe is looked up next to it.
	FFmpegPath string
}

// ErrNoVideoStream is returned when a container has no video track.
var ErrNoVideoStream = errors.New("containerprobe: no video stream")

var mp4Extensions = map[string]bool{
	".mp4": true,
	".m4v": true,
	".mov": true,
	".3gp": true,
}

// IsMP4 reports whether path has an MP4-family extension.
func IsMP4(path string) bool {
	return mp4Extensions[strings.ToLower(filepath.Ext(path))]
}

// Probe returns metadata for the video at path.
func Probe(ctx context.Context, path string, opts Options) (Info, error) {
	var (
		info   Info
		mp4Err error
		haveMP bool
	)

	if IsMP4(path) {
		info, mp4Err = ProbeMP4File(path)
		haveMP = mp4Err == nil
	}

	ffprobe, lookErr := ffmpegbin.FFprobe(opts.FFmpegPath)
	if lookErr != nil {
		if haveMP {
			return info, nil
		}
		if mp4Err != nil {
			return Info{}, mp4Err
		}
		return Info{}, fmt.Errorf("probe %s: %w", path, lookErr)
	}

	fp, err := RunFFprobe(ctx, ffprobe, path)
	if err != nil {
		if haveMP {
			return info, nil
		}
		return Info{}, err
	}

	if !haveMP {
		return fp, nil
	}
	return merge(info, fp), nil
}

// merge keeps the sample-table counts from m and takes geometry from f.
func merge(m, f Info) Info {
	out := m
	if f.Width > 0 && f.Height > 0 {
		out.Width, out.Height = f.Width, f.Height
	}
	out.Rotation = f.Rotation
	out.RotationKnown = f.RotationKnown
	if out.FrameRate <= 0 {
		out.FrameRate = f.FrameRate
	}
	if out.TotalFrames <= 0 {
		out.TotalFrames = f.TotalFrames
	}
	if out.Codec == "" {
		out.Codec = f.Codec
	}
	return out
}
