package ports

import "time"

// Progress is reported after every frame read.
type Progress struct {
	FramesRead    int
	FramesWritten int
	TotalFrames   int     // advisory, may be 0 or inaccurate
	FrameRate     float64 // advisory nominal rate of the source
	Throughput    float64 // frames read per second since the run started
	Elapsed       time.Duration
}

// Percent returns FramesRead as a share of TotalFrames, clamped to [0, 100].
// It returns -1 when the total is unknown.
func (p Progress) Percent() float64 {
	if p.TotalFrames <= 0 {
		return -1
	}
	pct := float64(p.FramesRead) * 100 / float64(p.TotalFrames)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Completion is the single notice sent when a run ends.
type Completion struct {
	FramesRead    int
	FramesWritten int
	Elapsed       time.Duration
	Err           error // nil when the run finished normally
}

// ProgressSink observes a running export.
type ProgressSink interface {
	// Progress is called synchronously after each frame read.
	Progress(p Progress)

	// Done is called once when the run ends, after the source is released.
	Done(c Completion)
}

// ProgressFunc adapts a per-frame callback to ProgressSink.
// Done is ignored.
type ProgressFunc func(p Progress)

// Progress implements ProgressSink.
func (f ProgressFunc) Progress(p Progress) {
	f(p)
}

// Done implements ProgressSink.
func (f ProgressFunc) Done(Completion) {}
