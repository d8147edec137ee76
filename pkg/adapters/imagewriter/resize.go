package imagewriter

import (
	"context"
	"image"

	"golang.org/x/image/draw"

	"github.com/user/vidframes/pkg/ports"
)

// Resizer scales frames to a fixed width, keeping the aspect ratio, before
// passing them on.
type Resizer struct {
	next  ports.ImageWriter
	width int
}

// NewResizer wraps next. A width of 0 or less disables resizing and next is
// returned unchanged.
func NewResizer(next ports.ImageWriter, width int) ports.ImageWriter {
	if width <= 0 {
		return next
	}
	return &Resizer{next: next, width: width}
}

// WriteImage implements ports.ImageWriter.
func (r *Resizer) WriteImage(ctx context.Context, img image.Image, path, format string) error {
	return r.next.WriteImage(ctx, Scale(img, r.width), path, format)
}

// Scale returns img resized to width with CatmullRom interpolation.
// Images already at width are returned as is.
func Scale(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() == width || b.Dx() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
