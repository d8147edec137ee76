package ports

import (
	"context"
	"image"
)

// ImageWriter persists a single decoded frame as a raster image file.
type ImageWriter interface {
	// WriteImage encodes img in the given format (a normalized file extension
	// such as "jpg" or "png") and writes it to path, replacing any existing file.
	WriteImage(ctx context.Context, img image.Image, path, format string) error
}
