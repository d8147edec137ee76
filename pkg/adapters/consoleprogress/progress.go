// Package consoleprogress renders sampling progress on a terminal.
package consoleprogress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/vidframes/pkg/ports"
)

// DefaultInterval is the number of frames between lines when not on a terminal.
const DefaultInterval = 100

// Display writes progress to a stream. On a terminal it redraws a single
// line; otherwise it prints one line every Interval frames.
type Display struct {
	mu       sync.Mutex
	out      io.Writer
	tty      bool
	interval int
	width    int // length of the last redrawn line
}

// NewWriter creates a display on out. interval < 1 selects DefaultInterval.
func NewWriter(out io.Writer, tty bool, interval int) *Display {
	if interval < 1 {
		interval = DefaultInterval
	}
	return &Display{out: out, tty: tty, interval: interval}
}

// Progress implements ports.ProgressSink.
func (d *Display) Progress(p ports.Progress) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tty {
		d.redraw(Line(p))
		return
	}
	if p.FramesRead%d.interval == 0 {
		fmt.Fprintln(d.out, Line(p))
	}
}

// Done implements ports.ProgressSink. It ends the redrawn line, or prints a
// final line in non-terminal mode.
func (d *Display) Done(c ports.Completion) {
	d.mu.Lock()
	defer d.mu.Unlock()

	summary := l10n.F("Done: %d frames read, %d written in %s",
		c.FramesRead, c.FramesWritten, c.Elapsed.Round(time.Millisecond))
	if d.tty {
		d.redraw(summary)
		fmt.Fprintln(d.out)
		d.width = 0
		return
	}
	fmt.Fprintln(d.out, summary)
}

func (d *Display) redraw(line string) {
	pad := ""
	if n := d.width - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(d.out, "\r%s%s", line, pad)
	d.width = len(line)
}

// Line formats p as "Frame 1234/5000 (24.7%) Speed: 612.30 frames/s".
// Without a known total only the count is shown.
func Line(p ports.Progress) string {
	speed := l10n.F("Speed: %.2f frames/s", p.Throughput)
	if pct := p.Percent(); pct >= 0 {
		return l10n.F("Frame %d/%d (%.1f%%)", p.FramesRead, p.TotalFrames, pct) + " " + speed
	}
	return l10n.F("Frame %d", p.FramesRead) + " " + speed
}

var _ ports.ProgressSink = (*Display)(nil)
