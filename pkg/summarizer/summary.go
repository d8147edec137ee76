// Package summarizer provides summary generation for frame export runs.
package summarizer

import (
	"time"

	"github.com/google/uuid"

	"github.com/user/vidframes/pkg/pipeline"
)

// Summary contains all data collected during an export run.
type Summary struct {
	// Metadata
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Input video
	Input InputInfo `json:"input"`

	// Export settings
	Settings Settings `json:"settings"`

	// Outcome
	Result ResultInfo `json:"result"`
}

// InputInfo describes the source video.
type InputInfo struct {
	Path        string  `json:"path"`
	Codec       string  `json:"codec,omitempty"`
	Backend     string  `json:"backend,omitempty"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FrameRate   float64 `json:"frame_rate"`
	TotalFrames int     `json:"total_frames"` // advisory
}

// Settings contains the export configuration.
type Settings struct {
	OutputDir string `json:"output_dir"`
	Step      int    `json:"step"`
	Format    string `json:"format"`
	Quality   int    `json:"quality,omitempty"`
	Width     int    `json:"width,omitempty"` // resize target, 0 = original
}

// ResultInfo contains the outcome of the run.
type ResultInfo struct {
	FramesRead    int           `json:"frames_read"`
	FramesWritten int           `json:"frames_written"`
	Elapsed       time.Duration `json:"elapsed_ns"`
	Throughput    float64       `json:"throughput"`
	Stop          string        `json:"stop"`
	ReadError     string        `json:"read_error,omitempty"`
	Error         string        `json:"error,omitempty"`
	LastFile      string        `json:"last_file,omitempty"`
	PadWidth      int           `json:"pad_width"`
}

// NewSummary creates a new Summary with a fresh run ID and the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets source video information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithSettings sets export settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithRunResult fills input, settings and outcome from a sampler result.
// Settings fields already set are kept.
func (b *Builder) WithRunResult(videoPath string, r pipeline.RunResult) *Builder {
	b.summary.Input = InputInfo{
		Path:        videoPath,
		Codec:       r.Source.Codec,
		Backend:     r.Source.Backend,
		Width:       r.Source.Width,
		Height:      r.Source.Height,
		FrameRate:   r.Source.FrameRate,
		TotalFrames: r.Source.TotalFrames,
	}

	s := &b.summary.Settings
	if s.OutputDir == "" {
		s.OutputDir = r.OutputDir
	}
	if s.Step == 0 {
		s.Step = r.Step
	}
	if s.Format == "" {
		s.Format = r.Format
	}

	b.summary.Result = ResultInfo{
		FramesRead:    r.FramesRead,
		FramesWritten: r.FramesWritten,
		Elapsed:       r.Elapsed,
		Throughput:    r.Throughput(),
		Stop:          r.Stop.String(),
		LastFile:      r.LastPath,
		PadWidth:      r.PadWidth,
	}
	if r.ReadErr != nil {
		b.summary.Result.ReadError = r.ReadErr.Error()
	}
	return b
}

// WithError records the error that ended the run.
func (b *Builder) WithError(err error) *Builder {
	if err != nil {
		b.summary.Result.Error = err.Error()
	}
	return b
}

// WithGeneratedAt overrides the timestamp.
func (b *Builder) WithGeneratedAt(t time.Time) *Builder {
	b.summary.GeneratedAt = t
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
