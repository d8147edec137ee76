// Package testvideo generates small video fixtures with ffmpeg for tests.
package testvideo

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/user/vidframes/pkg/adapters/ffmpegbin"
)

// FFmpeg returns the ffmpeg path, skipping the test unless both ffmpeg and
// ffprobe are installed.
func FFmpeg(t testing.TB) string {
	t.Helper()
	bin, err := ffmpegbin.FFmpeg("")
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := ffmpegbin.FFprobe(bin); err != nil {
		t.Skip("ffprobe not available")
	}
	return bin
}

// MPEG1 writes a frames-long MPEG-1 program stream of the given size at
// 25 fps into a temp directory and returns its path. The test is skipped
// when ffmpeg is not installed.
func MPEG1(t testing.TB, frames, width, height int) string {
	t.Helper()
	bin := FFmpeg(t)

	path := filepath.Join(t.TempDir(), "clip.mpg")
	cmd := exec.Command(bin,
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("testsrc=size=%dx%d:rate=25", width, height),
		"-frames:v", fmt.Sprint(frames),
		"-c:v", "mpeg1video",
		"-q:v", "4",
		"-f", "mpeg",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("generate test video: %v\n%s", err, out)
	}
	return path
}
