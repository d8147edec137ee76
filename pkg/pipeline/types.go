package pipeline

import (
	"time"

	"github.com/user/vidframes/pkg/ports"
)

// SampleInput contains the parameters of the frame sampling stage.
type SampleInput struct {
	Source    ports.VideoSource // already opened; released by the caller
	OutputDir string            // must exist
	Step      int               // keep every Step-th frame, >= 1
	Format    string            // normalized image extension, e.g. "jpg"
}

// StopReason tells why the decode loop ended.
type StopReason int

const (
	// StopEndOfStream means the source reported io.EOF.
	StopEndOfStream StopReason = iota
	// StopReadError means the source failed to decode the next frame.
	// Frames read before the failure were processed normally.
	StopReadError
	// StopCanceled means the run context was canceled between frames.
	StopCanceled
	// StopWriteError means writing a sampled frame failed and the run aborted.
	StopWriteError
)

// String returns the string representation of the stop reason.
func (r StopReason) String() string {
	switch r {
	case StopEndOfStream:
		return "end of stream"
	case StopReadError:
		return "read error"
	case StopCanceled:
		return "canceled"
	case StopWriteError:
		return "write error"
	default:
		return "unknown"
	}
}

// RunResult summarizes a finished (or aborted) sampling run.
type RunResult struct {
	FramesRead    int
	FramesWritten int // FramesRead / Step, rounded down, unless a write failed
	Elapsed       time.Duration

	Stop      StopReason
	ReadErr   error  // set when Stop == StopReadError
	LastPath  string // path of the last written frame, if any
	PadWidth  int    // zero-padding width used for file names
	Source    ports.SourceInfo
	Step      int
	Format    string
	OutputDir string
}

// Throughput returns the cumulative average of frames read per second.
func (r RunResult) Throughput() float64 {
	return Throughput(r.FramesRead, r.Elapsed)
}

// Throughput returns frames per second for n frames over elapsed.
// It returns 0 when no time has passed.
func Throughput(n int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(n) / secs
}
