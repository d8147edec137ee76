// Package mpegsource decodes MPEG-1 program streams in pure Go, for systems
// without ffmpeg.
package mpegsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/mpeg"

	"github.com/user/vidframes/pkg/ports"
)

// ErrNoVideoStream is returned when the program stream carries no MPEG-1 video.
var ErrNoVideoStream = errors.New("mpegsource: no video stream")

// maxEmptyDecodes bounds consecutive decode attempts that yield no picture
// while the demuxer has not ended.
const maxEmptyDecodes = 1024

// Supports reports whether path has an extension this backend can decode.
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mpg", ".mpeg":
		return true
	}
	return false
}

// Opener opens MPEG-1 files.
type Opener struct {
	logger ports.Logger
}

// NewOpener creates a new MPEG-1 opener.
func NewOpener(logger ports.Logger) *Opener {
	return &Opener{logger: logger.WithComponent("mpeg")}
}

// Open opens path and reads its stream headers.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	mpg, err := mpeg.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open mpeg stream: %w", err)
	}
	mpg.SetAudioEnabled(false)

	if mpg.NumVideoStreams() == 0 || mpg.Width() == 0 || mpg.Height() == 0 {
		f.Close()
		return nil, ErrNoVideoStream
	}

	info := ports.SourceInfo{
		FrameRate: mpg.Framerate(),
		Width:     mpg.Width(),
		Height:    mpg.Height(),
		Codec:     "mpeg1video",
		Backend:   "mpeg",
	}
	if secs := mpg.Duration().Seconds(); secs > 0 && info.FrameRate > 0 {
		info.TotalFrames = int(math.Round(secs * info.FrameRate))
	}
	o.logger.Debug("Video: %dx%d %s (%s backend)", info.Width, info.Height, info.Codec, info.Backend)

	return &Source{info: info, file: f, mpg: mpg}, nil
}

// Source yields decoded MPEG-1 frames.
type Source struct {
	info   ports.SourceInfo
	file   *os.File
	mpg    *mpeg.MPEG
	closed bool
}

func (s *Source) Info() ports.SourceInfo {
	return s.info
}

// Next decodes the next picture. The returned image does not share memory
// with the decoder.
func (s *Source) Next(ctx context.Context) (image.Image, error) {
	if s.closed {
		return nil, fmt.Errorf("mpegsource: read from closed source")
	}
	for empty := 0; ; empty++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if frame := s.mpg.DecodeVideo(); frame != nil {
			return cloneYCbCr(frame.YCbCr()), nil
		}
		if s.mpg.HasEnded() {
			return nil, io.EOF
		}
		if empty >= maxEmptyDecodes {
			return nil, fmt.Errorf("mpegsource: decoder stalled after %d empty reads", empty)
		}
	}
}

// Close releases the file. It is safe to call more than once.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

func cloneYCbCr(src *image.YCbCr) *image.YCbCr {
	dst := image.NewYCbCr(src.Rect, src.SubsampleRatio)
	h := src.Rect.Dy()
	ch := (h + 1) / 2
	if src.SubsampleRatio == image.YCbCrSubsampleRatio444 || src.SubsampleRatio == image.YCbCrSubsampleRatio422 {
		ch = h
	}
	for y := 0; y < h; y++ {
		copy(dst.Y[y*dst.YStride:(y+1)*dst.YStride], src.Y[y*src.YStride:])
	}
	for y := 0; y < ch; y++ {
		copy(dst.Cb[y*dst.CStride:(y+1)*dst.CStride], src.Cb[y*src.CStride:])
		copy(dst.Cr[y*dst.CStride:(y+1)*dst.CStride], src.Cr[y*src.CStride:])
	}
	return dst
}

var (
	_ ports.SourceOpener = (*Opener)(nil)
	_ ports.VideoSource  = (*Source)(nil)
)
