package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingVideoPath is returned when no input video was given.
	ErrMissingVideoPath = errors.New("no video file specified")
	// ErrMissingOutputDir is returned when no output directory was given.
	ErrMissingOutputDir = errors.New("no output directory specified")
	// ErrInvalidStep is returned when the sampling step is below 1.
	ErrInvalidStep = errors.New("step must be a positive integer")
	// ErrNoSource is returned when the sampler is run without an opened source.
	ErrNoSource = errors.New("no video source")
)

// ConfigError reports invalid run parameters. It is returned before any
// resource is opened or any directory is created.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// OpenError reports that the video source could not be opened or decoded.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open video %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// WriteError reports that an output file or directory could not be written.
// Frame is the 1-based decode position of the frame being written, or 0 when
// the failure concerns the output directory.
type WriteError struct {
	Path  string
	Frame int
	Err   error
}

func (e *WriteError) Error() string {
	if e.Frame > 0 {
		return fmt.Sprintf("write frame %d to %s: %v", e.Frame, e.Path, e.Err)
	}
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
