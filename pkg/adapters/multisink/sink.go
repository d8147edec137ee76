// Package multisink fans progress out to several sinks.
package multisink

import "github.com/user/vidframes/pkg/ports"

// Sink forwards every call to each of its sinks in order.
type Sink struct {
	sinks []ports.ProgressSink
}

// New creates a sink over sinks. Nil entries are skipped.
func New(sinks ...ports.ProgressSink) *Sink {
	s := &Sink{}
	for _, sink := range sinks {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
	return s
}

// Progress implements ports.ProgressSink.
func (s *Sink) Progress(p ports.Progress) {
	for _, sink := range s.sinks {
		sink.Progress(p)
	}
}

// Done implements ports.ProgressSink.
func (s *Sink) Done(c ports.Completion) {
	for _, sink := range s.sinks {
		sink.Done(c)
	}
}

var _ ports.ProgressSink = (*Sink)(nil)
