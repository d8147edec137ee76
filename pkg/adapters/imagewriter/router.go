package imagewriter

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/ports"
)

// ErrUnsupportedFormat is returned for extensions outside imageformat.Supported.
var ErrUnsupportedFormat = errors.New("imagewriter: unsupported image format")

// Router sends each write to the native or the ffmpeg writer by format.
type Router struct {
	native ports.ImageWriter
	ffmpeg ports.ImageWriter
}

// NewRouter creates a router over the given writers.
func NewRouter(native, ffmpeg ports.ImageWriter) *Router {
	return &Router{native: native, ffmpeg: ffmpeg}
}

// New creates the default router: a Native writer over fs and an FFmpeg
// writer using ffmpegPath.
func New(fs ports.FileSystem, quality int, ffmpegPath string) *Router {
	return NewRouter(NewNative(fs, quality), NewFFmpeg(ffmpegPath))
}

// WriteImage implements ports.ImageWriter.
func (r *Router) WriteImage(ctx context.Context, img image.Image, path, format string) error {
	route, ok := imageformat.Lookup(format)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if route.Encoding == imageformat.FFmpeg {
		return r.ffmpeg.WriteImage(ctx, img, path, format)
	}
	return r.native.WriteImage(ctx, img, path, format)
}

var _ ports.ImageWriter = (*Router)(nil)
