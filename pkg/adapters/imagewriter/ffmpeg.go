package imagewriter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/image/draw"

	"github.com/user/vidframes/pkg/adapters/ffmpegbin"
	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/ports"
)

// FFmpeg encodes formats without a Go encoder (JPEG 2000, WebP, Radiance
// HDR, PPM/PGM/PBM) by piping one raw frame into ffmpeg.
type FFmpeg struct {
	ffmpegPath string
}

// NewFFmpeg creates an ffmpeg still writer. ffmpegPath may be empty to search PATH.
func NewFFmpeg(ffmpegPath string) *FFmpeg {
	return &FFmpeg{ffmpegPath: ffmpegPath}
}

// WriteImage encodes img with ffmpeg into a temporary file beside path and
// renames it into place. A failed encode leaves no file at path.
func (w *FFmpeg) WriteImage(ctx context.Context, img image.Image, path, format string) error {
	route, ok := imageformat.Lookup(format)
	if !ok || route.Encoding != imageformat.FFmpeg {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	bin, err := ffmpegbin.FFmpeg(w.ffmpegPath)
	if err != nil {
		return err
	}

	tmpName, err := tempPath(path)
	if err != nil {
		return err
	}

	rgba := toRGBA(img)
	b := rgba.Bounds()
	args := StillArgs(tmpName, route.Codec, b.Dx(), b.Dy())

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(rgba.Pix)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ffmpeg encode %s failed: %w\nstderr: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// tempPath reserves a hidden file next to path that keeps its extension.
// ffmpeg overwrites it, and the caller renames it into place.
func tempPath(path string) (string, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	ext := filepath.Ext(name)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(name, ext)+".*.tmp"+ext)
	if err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// StillArgs returns the ffmpeg arguments that read one width x height RGBA
// frame from stdin and encode it to path with codec.
func StillArgs(path, codec string, width, height int) []string {
	return ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"loglevel": "error",
		"f":        "rawvideo",
		"pix_fmt":  "rgba",
		"s":        fmt.Sprintf("%dx%d", width, height),
	}).
		Output(path, ffmpeg.KwArgs{
			"frames:v": 1,
			"c:v":      codec,
			"f":        "image2",
			"update":   1,
		}).
		OverWriteOutput().
		GetArgs()
}

// toRGBA returns img as a tightly packed *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

var _ ports.ImageWriter = (*FFmpeg)(nil)
