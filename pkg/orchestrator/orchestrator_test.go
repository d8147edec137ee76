package orchestrator

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/vidframes/pkg/adapters/logger"
	"github.com/user/vidframes/pkg/mocks"
	"github.com/user/vidframes/pkg/pipeline"
	"github.com/user/vidframes/pkg/ports"
	"github.com/user/vidframes/pkg/stages/sample"
)

// orderSink checks that the source was released before Done.
type orderSink struct {
	mocks.ProgressSink
	source       *mocks.VideoSource
	closedAtDone []int
}

func (s *orderSink) Done(c ports.Completion) {
	s.closedAtDone = append(s.closedAtDone, s.source.CloseCalls)
	s.ProgressSink.Done(c)
}

type fixture struct {
	source *mocks.VideoSource
	opener *mocks.SourceOpener
	writer *mocks.ImageWriter
	fs     *mocks.FileSystem
	sink   *orderSink
	logger *mocks.Logger
	orch   *Orchestrator
}

func newFixture(frames int) *fixture {
	f := &fixture{
		source: mocks.NewVideoSource(frames),
		writer: &mocks.ImageWriter{},
		fs:     mocks.NewFileSystem(),
		logger: mocks.NewLogger(),
	}
	f.opener = &mocks.SourceOpener{Source: f.source}
	f.sink = &orderSink{source: f.source}
	stage := sample.NewStage(f.writer, f.sink, logger.NewNoop())
	f.orch = New(f.opener, stage, f.fs, f.sink, f.logger)
	return f
}

func baseConfig() Config {
	cfg := DefaultConfig()
	cfg.VideoPath = "in.mp4"
	cfg.OutputDir = "out"
	return cfg
}

func TestOrchestrator_Run(t *testing.T) {
	f := newFixture(10)
	cfg := baseConfig()
	cfg.Step = 3

	result, err := f.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FramesRead != 10 || result.FramesWritten != 3 {
		t.Errorf("expected 10 read and 3 written, got %d/%d", result.FramesRead, result.FramesWritten)
	}
	if !f.fs.HasDir("out") {
		t.Error("expected output directory to be created")
	}
	if len(f.opener.Opened) != 1 || f.opener.Opened[0] != "in.mp4" {
		t.Errorf("unexpected open calls %v", f.opener.Opened)
	}
	if f.source.CloseCalls != 1 {
		t.Errorf("expected source closed once, got %d", f.source.CloseCalls)
	}

	if len(f.sink.Completions) != 1 {
		t.Fatalf("expected one completion, got %d", len(f.sink.Completions))
	}
	if c := f.sink.Completions[0]; c.FramesWritten != 3 || c.Err != nil {
		t.Errorf("unexpected completion %+v", c)
	}
	if f.sink.closedAtDone[0] != 1 {
		t.Error("expected the source to be released before Done")
	}
	if len(f.sink.Updates) != 10 {
		t.Errorf("expected 10 progress updates, got %d", len(f.sink.Updates))
	}

	wantFrames := []int{3, 6, 9}
	for i, call := range f.writer.Calls {
		if call.Frame != wantFrames[i] {
			t.Errorf("write %d: expected frame %d, got %d", i, wantFrames[i], call.Frame)
		}
	}

	if !f.logger.Contains(ports.LevelInfo, "Total frames: 10, Frame rate: 30.00 fps") {
		t.Error("expected source info to be logged")
	}
}

func TestOrchestrator_Run_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"missing video", func(c *Config) { c.VideoPath = "" }, pipeline.ErrMissingVideoPath},
		{"missing output", func(c *Config) { c.OutputDir = "" }, pipeline.ErrMissingOutputDir},
		{"zero step", func(c *Config) { c.Step = 0 }, pipeline.ErrInvalidStep},
		{"negative step", func(c *Config) { c.Step = -1 }, pipeline.ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(5)
			cfg := baseConfig()
			tt.modify(&cfg)

			_, err := f.orch.Run(context.Background(), cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !pipeline.IsConfigError(err) {
				t.Errorf("expected a ConfigError, got %T", err)
			}
			if len(f.opener.Opened) != 0 {
				t.Error("expected nothing to be opened")
			}
			if f.fs.HasDir("out") {
				t.Error("expected no directory to be created")
			}
		})
	}
}

func TestOrchestrator_Run_OpenError(t *testing.T) {
	f := newFixture(5)
	f.opener.Err = errors.New("no such file")

	_, err := f.orch.Run(context.Background(), baseConfig())

	var openErr *pipeline.OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *pipeline.OpenError, got %v", err)
	}
	if openErr.Path != "in.mp4" {
		t.Errorf("expected path in.mp4, got %s", openErr.Path)
	}
	if f.fs.HasDir("out") {
		t.Error("expected no output directory after an open failure")
	}
	if len(f.writer.Calls) != 0 {
		t.Error("expected no writes")
	}
	if len(f.sink.Completions) != 0 {
		t.Error("expected no completion for a run that never started")
	}
}

func TestOrchestrator_Run_UnsupportedFormatFallsBack(t *testing.T) {
	f := newFixture(2)
	cfg := baseConfig()
	cfg.Format = "xyz"

	result, err := f.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != "jpg" {
		t.Errorf("expected jpg fallback, got %s", result.Format)
	}
	if got := f.writer.Paths()[0]; got != filepath.Join("out", "frame_1.jpg") {
		t.Errorf("unexpected path %s", got)
	}
	if !f.logger.Contains(ports.LevelWarn, `Unsupported image format "xyz", using jpg`) {
		t.Error("expected a fallback warning")
	}
}

func TestOrchestrator_Run_NormalizesFormat(t *testing.T) {
	f := newFixture(1)
	cfg := baseConfig()
	cfg.Format = " .PNG "

	if _, err := f.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.writer.Calls[0].Format; got != "png" {
		t.Errorf("expected png, got %s", got)
	}
	if len(f.logger.Entries(ports.LevelWarn)) != 0 {
		t.Error("expected no warnings for a supported format")
	}
}

func TestOrchestrator_Run_MkdirError(t *testing.T) {
	f := newFixture(5)
	denied := errors.New("permission denied")
	f.fs.MkdirAllFunc = func(string) error { return denied }

	_, err := f.orch.Run(context.Background(), baseConfig())

	var writeErr *pipeline.WriteError
	if !errors.As(err, &writeErr) || writeErr.Path != "out" {
		t.Fatalf("expected WriteError for out, got %v", err)
	}
	if !errors.Is(err, denied) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if f.source.CloseCalls != 1 {
		t.Errorf("expected source closed once, got %d", f.source.CloseCalls)
	}
	if len(f.sink.Completions) != 1 || f.sink.Completions[0].Err == nil {
		t.Errorf("expected one failed completion, got %+v", f.sink.Completions)
	}
}

func TestOrchestrator_Run_ReadErrorIsWarning(t *testing.T) {
	f := newFixture(10)
	f.source.ReadErr = errors.New("corrupt packet")
	f.source.ErrAt = 5

	result, err := f.orch.Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("read errors should not fail the run, got %v", err)
	}
	if result.Stop != pipeline.StopReadError || result.FramesWritten != 4 {
		t.Errorf("unexpected result %+v", result)
	}
	if !f.logger.Contains(ports.LevelWarn, "Stream ended early after frame 4: corrupt packet") {
		t.Error("expected an early-end warning")
	}
	if f.source.CloseCalls != 1 || len(f.sink.Completions) != 1 {
		t.Errorf("expected one close and one completion, got %d/%d", f.source.CloseCalls, len(f.sink.Completions))
	}
}

func TestOrchestrator_Run_WriteErrorAborts(t *testing.T) {
	f := newFixture(10)
	full := errors.New("no space left")
	writes := 0
	f.writer.WriteImageFunc = func(ctx context.Context, img image.Image, path, format string) error {
		writes++
		if writes == 2 {
			return full
		}
		return nil
	}

	result, err := f.orch.Run(context.Background(), baseConfig())

	var writeErr *pipeline.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if writeErr.Frame != 2 {
		t.Errorf("expected failing frame 2, got %d", writeErr.Frame)
	}
	if result.FramesWritten != 1 {
		t.Errorf("expected 1 frame written, got %d", result.FramesWritten)
	}
	if f.source.CloseCalls != 1 {
		t.Errorf("expected source closed once, got %d", f.source.CloseCalls)
	}
	if len(f.sink.Completions) != 1 || !errors.Is(f.sink.Completions[0].Err, full) {
		t.Errorf("expected completion carrying the write error, got %+v", f.sink.Completions)
	}
	if f.sink.closedAtDone[0] != 1 {
		t.Error("expected the source to be released before Done")
	}
}

func TestOrchestrator_Run_Canceled(t *testing.T) {
	f := newFixture(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orch.Run(ctx, baseConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.source.CloseCalls != 1 {
		t.Errorf("expected source closed once, got %d", f.source.CloseCalls)
	}
}

func TestOrchestrator_Run_EmptyVideo(t *testing.T) {
	f := newFixture(0)

	result, err := f.orch.Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FramesWritten != 0 || len(f.writer.Calls) != 0 {
		t.Errorf("expected no output, got %d writes", len(f.writer.Calls))
	}
	if !f.fs.HasDir("out") {
		t.Error("expected output directory to exist even for an empty video")
	}
}

func TestOrchestrator_Run_WarnsAboutExistingFrames(t *testing.T) {
	f := newFixture(3)
	f.fs.WriteFile(filepath.Join("out", "frame_1.jpg"), []byte("old"))
	f.fs.WriteFile(filepath.Join("out", "frame_2.jpg"), []byte("old"))

	if _, err := f.orch.Run(context.Background(), baseConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.logger.Contains(ports.LevelWarn, "already contains 2 frame files") {
		t.Error("expected a warning about existing frames")
	}
}

func TestOrchestrator_Run_WritesSummary(t *testing.T) {
	f := newFixture(6)
	cfg := baseConfig()
	cfg.Step = 2
	cfg.SummaryPath = filepath.Join("reports", "run.md")

	if _, err := f.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := f.fs.GetFile(cfg.SummaryPath)
	if !ok {
		t.Fatal("expected summary to be written")
	}
	content := string(data)
	for _, want := range []string{"in.mp4", "| Frames Written | 3 |", "| Step | 2 |"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected summary to contain %q", want)
		}
	}
}

func TestOrchestrator_Run_SummaryFailureIsWarning(t *testing.T) {
	f := newFixture(2)
	cfg := baseConfig()
	cfg.SummaryPath = "run.json"
	f.fs.WriteFileFunc = func(path string, data []byte) error {
		if path == "run.json" {
			return errors.New("read-only")
		}
		return nil
	}

	if _, err := f.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("summary failures should not fail the run, got %v", err)
	}
	if !f.logger.Contains(ports.LevelWarn, "Failed to write summary") {
		t.Error("expected a summary warning")
	}
}
