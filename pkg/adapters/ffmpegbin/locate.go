// Package ffmpegbin locates the ffmpeg and ffprobe executables.
package ffmpegbin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrNotFound is returned when an executable cannot be found.
var ErrNotFound = errors.New("ffmpegbin: executable not found")

// commonDirs are searched after PATH.
func commonDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	}
	return []string{
		"/usr/bin",
		"/usr/local/bin",
		"/opt/homebrew/bin",
		"/snap/bin",
	}
}

func execName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// FFmpeg returns the path of the ffmpeg executable.
// A non-empty custom path must exist; otherwise PATH and common install
// locations are searched.
func FFmpeg(custom string) (string, error) {
	return find("ffmpeg", custom)
}

// FFprobe returns the path of ffprobe. When ffmpegPath is set, an ffprobe
// in the same directory is preferred.
func FFprobe(ffmpegPath string) (string, error) {
	if ffmpegPath != "" {
		sibling := filepath.Join(filepath.Dir(ffmpegPath), execName("ffprobe"))
		if isFile(sibling) {
			return sibling, nil
		}
	}
	return find("ffprobe", "")
}

// Available reports whether ffmpeg can be found.
func Available(custom string) bool {
	_, err := FFmpeg(custom)
	return err == nil
}

func find(name, custom string) (string, error) {
	if custom != "" {
		if isFile(custom) {
			return custom, nil
		}
		return "", fmt.Errorf("%w: %s (custom path %s)", ErrNotFound, name, custom)
	}

	if path, err := exec.LookPath(execName(name)); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs() {
		p := filepath.Join(dir, execName(name))
		if isFile(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
