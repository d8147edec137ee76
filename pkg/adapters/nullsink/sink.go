// Package nullsink provides a no-op progress sink implementation.
package nullsink

import "github.com/user/vidframes/pkg/ports"

// Sink is a no-op implementation of ports.ProgressSink.
// It discards all progress updates.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Progress does nothing.
func (s *Sink) Progress(p ports.Progress) {}

// Done does nothing.
func (s *Sink) Done(c ports.Completion) {}

// Ensure Sink implements ports.ProgressSink
var _ ports.ProgressSink = (*Sink)(nil)
