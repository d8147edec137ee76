package mocks

import (
	"sync"

	"github.com/user/vidframes/pkg/ports"
)

// ProgressSink is a mock implementation of ports.ProgressSink.
type ProgressSink struct {
	mu          sync.Mutex
	Updates     []ports.Progress
	Completions []ports.Completion
}

func (m *ProgressSink) Progress(p ports.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates = append(m.Updates, p)
}

func (m *ProgressSink) Done(c ports.Completion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completions = append(m.Completions, c)
}

var _ ports.ProgressSink = (*ProgressSink)(nil)
