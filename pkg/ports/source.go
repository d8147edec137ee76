package ports

import (
	"context"
	"image"
)

// SourceInfo describes an opened video stream.
// TotalFrames and FrameRate come from container metadata and are advisory:
// some containers misreport them and they may be zero.
type SourceInfo struct {
	TotalFrames int
	FrameRate   float64
	Width       int
	Height      int
	Codec       string // e.g. "h264", "mpeg1video"
	Backend     string // decoding backend, e.g. "ffmpeg", "mpeg"
}

// VideoSource is a sequentially readable stream of decoded frames.
type VideoSource interface {
	// Info returns the advisory stream metadata read when the source was opened.
	Info() SourceInfo

	// Next decodes the next frame in presentation order.
	// It returns io.EOF once the stream is exhausted. Any other error means
	// the stream could not be decoded further.
	Next(ctx context.Context) (image.Image, error)

	// Close releases the decoder. Calling Close more than once is a no-op.
	Close() error
}

// SourceOpener opens video files for reading.
type SourceOpener interface {
	Open(ctx context.Context, path string) (VideoSource, error)
}
