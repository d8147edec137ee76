package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/vidframes/pkg/ports"
)

// WriteCall records a call to WriteImage.
type WriteCall struct {
	Path   string
	Format string
	Frame  int // source frame number recovered with FrameNumber
}

// ImageWriter is a mock implementation of ports.ImageWriter.
type ImageWriter struct {
	mu sync.Mutex

	WriteImageFunc func(ctx context.Context, img image.Image, path, format string) error

	// Recorded calls for verification
	Calls []WriteCall
}

func (m *ImageWriter) WriteImage(ctx context.Context, img image.Image, path, format string) error {
	if m.WriteImageFunc != nil {
		if err := m.WriteImageFunc(ctx, img, path, format); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, WriteCall{Path: path, Format: format, Frame: FrameNumber(img)})
	return nil
}

// Paths returns the written paths in call order.
func (m *ImageWriter) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		paths[i] = c.Path
	}
	return paths
}

var _ ports.ImageWriter = (*ImageWriter)(nil)
