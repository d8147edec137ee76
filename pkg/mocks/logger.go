package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/vidframes/pkg/ports"
)

// LogEntry is one recorded log call, formatted without translation.
type LogEntry struct {
	Level   ports.LogLevel
	Message string
}

// Logger is a mock implementation of ports.Logger that records messages.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (m *Logger) record(level ports.LogLevel, msg string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = append(*m.entries, LogEntry{Level: level, Message: fmt.Sprintf(msg, args...)})
}

func (m *Logger) Debug(msg string, args ...any) { m.record(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...any)  { m.record(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...any)  { m.record(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...any) { m.record(ports.LevelError, msg, args) }

// WithComponent returns a logger sharing the same record.
func (m *Logger) WithComponent(component string) ports.Logger {
	return m
}

// Entries returns all recorded entries at or above level.
func (m *Logger) Entries(level ports.LogLevel) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range *m.entries {
		if e.Level >= level {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether a message at level contains substr.
func (m *Logger) Contains(level ports.LogLevel, substr string) bool {
	for _, e := range m.Entries(level) {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
