package mocks

import (
	"context"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/user/vidframes/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource.
// It yields Frames solid-color images and then io.EOF, unless ReadErr
// injects a read error.
type VideoSource struct {
	mu sync.Mutex

	SourceInfo ports.SourceInfo
	Frames     int // number of frames the stream contains

	// ReadErr, when set, is returned instead of the frame at position ErrAt (1-based).
	ReadErr error
	ErrAt   int

	// NextFunc overrides the default frame generator.
	NextFunc func(ctx context.Context, n int) (image.Image, error)

	// Recorded calls for verification
	NextCalls  int
	CloseCalls int
}

// NewVideoSource creates a mock source with the given number of frames.
// The advisory total frame count matches the real count.
func NewVideoSource(frames int) *VideoSource {
	return &VideoSource{
		SourceInfo: ports.SourceInfo{
			TotalFrames: frames,
			FrameRate:   30,
			Width:       4,
			Height:      4,
			Codec:       "mock",
			Backend:     "mock",
		},
		Frames: frames,
	}
}

func (m *VideoSource) Info() ports.SourceInfo {
	return m.SourceInfo
}

func (m *VideoSource) Next(ctx context.Context) (image.Image, error) {
	m.mu.Lock()
	m.NextCalls++
	n := m.NextCalls
	m.mu.Unlock()

	if m.NextFunc != nil {
		return m.NextFunc(ctx, n)
	}
	if m.ReadErr != nil && n == m.ErrAt {
		return nil, m.ReadErr
	}
	if n > m.Frames {
		return nil, io.EOF
	}
	return FrameImage(n), nil
}

func (m *VideoSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

// FrameImage returns a small image whose red channel encodes n, so tests can
// tell which source frame was written.
func FrameImage(n int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c := color.RGBA{R: uint8(n), G: 0, B: 0, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// FrameNumber recovers n from an image produced by FrameImage.
func FrameNumber(img image.Image) int {
	r, _, _, _ := img.At(0, 0).RGBA()
	return int(r >> 8)
}

// SourceOpener is a mock implementation of ports.SourceOpener.
type SourceOpener struct {
	Source ports.VideoSource
	Err    error
	Opened []string
}

func (m *SourceOpener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	m.Opened = append(m.Opened, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Source, nil
}

var (
	_ ports.VideoSource  = (*VideoSource)(nil)
	_ ports.SourceOpener = (*SourceOpener)(nil)
)
