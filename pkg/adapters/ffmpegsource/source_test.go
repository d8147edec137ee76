package ffmpegsource

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/vidframes/pkg/adapters/logger"
	"github.com/user/vidframes/pkg/testvideo"
)

func TestFrameReader(t *testing.T) {
	const w, h = 2, 2
	frame := bytes.Repeat([]byte{10, 20, 30, 255}, w*h)
	data := append(append([]byte{}, frame...), frame...)

	reader := NewFrameReader(bytes.NewReader(data), w, h)

	for i := 0; i < 2; i++ {
		img, err := reader.Next()
		if err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
		r, g, b, a := img.At(1, 1).RGBA()
		if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
			t.Errorf("frame %d: unexpected pixel %d,%d,%d,%d", i, r>>8, g>>8, b>>8, a>>8)
		}
	}

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at a frame boundary, got %v", err)
	}
}

func TestFrameReader_TruncatedFrame(t *testing.T) {
	reader := NewFrameReader(bytes.NewReader(make([]byte, 10)), 2, 2)
	if _, err := reader.Next(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestTailBuffer(t *testing.T) {
	buf := &tailBuffer{limit: 8}
	buf.Write([]byte("hello "))
	buf.Write([]byte("world"))

	if got := buf.String(); got != "lo world" {
		t.Errorf("expected last 8 bytes, got %q", got)
	}
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("in.mp4", 640, 360, true)
	joined := strings.Join(args, " ")

	for _, want := range []string{"-i in.mp4", "-f rawvideo", "-pix_fmt rgba", "-map 0:v:0", "scale=640:360"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in args: %s", want, joined)
		}
	}
	if args[len(args)-1] != "pipe:" {
		t.Errorf("expected output to be pipe:, got %s", args[len(args)-1])
	}
}

func TestBuildArgs_NoAutorotate(t *testing.T) {
	args := BuildArgs("in.mp4", 640, 360, false)

	flag, input := -1, -1
	for i, a := range args {
		switch a {
		case "-noautorotate":
			flag = i
		case "-i":
			input = i
		}
	}
	if flag < 0 || input < 0 || flag > input {
		t.Fatalf("expected -noautorotate before -i, got %v", args)
	}
	if !strings.HasPrefix(args[flag+1], "-") {
		t.Errorf("expected -noautorotate to take no value, got %v", args)
	}

	for _, a := range BuildArgs("in.mp4", 640, 360, true) {
		if a == "-noautorotate" {
			t.Error("expected autorotate to stay on when rotation is known")
		}
	}
}

func TestOpener_MissingFile(t *testing.T) {
	testvideo.FFmpeg(t)

	opener := NewOpener("", logger.NewNoop())
	_, err := opener.Open(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestOpener_BadCustomPath(t *testing.T) {
	opener := NewOpener(filepath.Join(t.TempDir(), "ffmpeg"), logger.NewNoop())
	if _, err := opener.Open(context.Background(), "in.mp4"); err == nil {
		t.Error("expected error for missing custom ffmpeg")
	}
}

func TestSource_DecodesAllFrames(t *testing.T) {
	path := testvideo.MPEG1(t, 12, 64, 48)

	opener := NewOpener("", logger.NewNoop())
	src, err := opener.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	info := src.Info()
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", info.Width, info.Height)
	}
	if info.Backend != "ffmpeg" {
		t.Errorf("expected ffmpeg backend, got %s", info.Backend)
	}

	count := 0
	for {
		img, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("frame %d: %v", count+1, err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Fatalf("frame %d: unexpected bounds %v", count+1, b)
		}
		count++
	}

	if count != 12 {
		t.Errorf("expected 12 frames, got %d", count)
	}

	// Close after EOF and twice more must not fail
	if err := src.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestSource_CloseEarly(t *testing.T) {
	path := testvideo.MPEG1(t, 50, 64, 48)

	src, err := NewOpener("", logger.NewNoop()).Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := src.Next(context.Background()); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
