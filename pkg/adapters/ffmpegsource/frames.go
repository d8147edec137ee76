package ffmpegsource

import (
	"image"
	"io"
	"strings"
	"sync"
)

// FrameReader splits a raw RGBA byte stream into images.
type FrameReader struct {
	r      io.Reader
	width  int
	height int
}

// NewFrameReader reads width x height RGBA frames from r.
func NewFrameReader(r io.Reader, width, height int) *FrameReader {
	return &FrameReader{r: r, width: width, height: height}
}

// Next returns the next frame. It returns io.EOF when the stream ends on a
// frame boundary and io.ErrUnexpectedEOF when it ends inside a frame.
func (f *FrameReader) Next() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	if _, err := io.ReadFull(f.r, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.ToValidUTF8(string(t.buf), "")
}
