// Package imagewriter encodes decoded frames to image files.
//
// Common formats (JPEG, PNG, BMP, TIFF) are encoded in process; formats Go
// has no encoder for are handed to ffmpeg. Router picks between the two by
// extension.
package imagewriter

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"

	"github.com/user/vidframes/pkg/imageformat"
	"github.com/user/vidframes/pkg/ports"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 95

// Native encodes JPEG, PNG, BMP and TIFF in process.
type Native struct {
	fs      ports.FileSystem
	quality int
}

// NewNative creates a native writer. quality applies to JPEG output and is
// clamped to [1, 100]; 0 selects DefaultJPEGQuality.
func NewNative(fs ports.FileSystem, quality int) *Native {
	switch {
	case quality == 0:
		quality = DefaultJPEGQuality
	case quality < 1:
		quality = 1
	case quality > 100:
		quality = 100
	}
	return &Native{fs: fs, quality: quality}
}

// WriteImage encodes img and writes it through the file system.
func (w *Native) WriteImage(ctx context.Context, img image.Image, path, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := w.Encode(img, format)
	if err != nil {
		return err
	}
	return w.fs.WriteFile(path, data)
}

// Encode returns img encoded in format.
func (w *Native) Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch imageformat.Canonical(format) {
	case "jpg":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(w.quality))
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case "bmp":
		err = imaging.Encode(&buf, img, imaging.BMP)
	case "tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var _ ports.ImageWriter = (*Native)(nil)
