package vidframes

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/vidframes/pkg/adapters/smartsource"
	"github.com/user/vidframes/pkg/mocks"
	"github.com/user/vidframes/pkg/pipeline"
	"github.com/user/vidframes/pkg/ports"
)

func TestNewConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	if cfg.Step != 1 {
		t.Errorf("Step = %d, want 1", cfg.Step)
	}
	if cfg.Format != "jpg" {
		t.Errorf("Format = %q, want jpg", cfg.Format)
	}
	if cfg.Backend != smartsource.BackendAuto {
		t.Errorf("Backend = %q, want auto", cfg.Backend)
	}
	if cfg.Quality != 95 {
		t.Errorf("Quality = %d, want 95", cfg.Quality)
	}
	if cfg.Width != 0 {
		t.Errorf("Width = %d, want 0", cfg.Width)
	}
}

func TestConfigBuilder_Chaining(t *testing.T) {
	called := false
	cfg := NewConfigBuilder().
		WithStep(30).
		WithFormat("png").
		WithBackend(smartsource.BackendMPEG).
		WithFFmpegPath("/opt/ffmpeg").
		WithQuality(80).
		WithWidth(320).
		WithSummary("summary.md").
		WithProgress(func(ports.Progress) { called = true }).
		Build()

	if cfg.Step != 30 || cfg.Format != "png" || cfg.Backend != smartsource.BackendMPEG {
		t.Errorf("unexpected sampling config: %+v", cfg)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg" || cfg.Quality != 80 || cfg.Width != 320 {
		t.Errorf("unexpected encoding config: %+v", cfg)
	}
	if cfg.SummaryPath != "summary.md" {
		t.Errorf("SummaryPath = %q", cfg.SummaryPath)
	}
	cfg.OnProgress(ports.Progress{})
	if !called {
		t.Error("OnProgress was not kept")
	}
}

func TestConfigBuilder_Constraints(t *testing.T) {
	tests := []struct {
		name        string
		builder     *ConfigBuilder
		wantQuality int
		wantWidth   int
	}{
		{"quality too low", NewConfigBuilder().WithQuality(0), 1, 0},
		{"quality too high", NewConfigBuilder().WithQuality(150), 100, 0},
		{"negative width", NewConfigBuilder().WithWidth(-5), 95, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.builder.Build()
			if cfg.Quality != tt.wantQuality {
				t.Errorf("Quality = %d, want %d", cfg.Quality, tt.wantQuality)
			}
			if cfg.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", cfg.Width, tt.wantWidth)
			}
		})
	}
}

func TestConfigBuilder_StepNotClamped(t *testing.T) {
	cfg := NewConfigBuilder().WithStep(0).Build()
	if cfg.Step != 0 {
		t.Errorf("Step = %d, want 0 to be reported by the run", cfg.Step)
	}
}

func TestConfig_ToOrchestratorConfig(t *testing.T) {
	cfg := NewConfigBuilder().WithStep(5).WithFormat("bmp").WithSummary("s.json").WithWidth(64).Build()
	oc := cfg.ToOrchestratorConfig("in.mp4", "out")

	if oc.VideoPath != "in.mp4" || oc.OutputDir != "out" {
		t.Errorf("paths not set: %+v", oc)
	}
	if oc.Step != 5 || oc.Format != "bmp" || oc.SummaryPath != "s.json" || oc.Width != 64 {
		t.Errorf("unexpected orchestrator config: %+v", oc)
	}
}

func TestExtractWith_Mocks(t *testing.T) {
	source := mocks.NewVideoSource(9)
	opener := &mocks.SourceOpener{Source: source}
	writer := &mocks.ImageWriter{}
	sink := &mocks.ProgressSink{}

	var callbacks int
	cfg := NewConfigBuilder().
		WithStep(3).
		WithProgress(func(ports.Progress) { callbacks++ }).
		Build()

	result, err := ExtractWith(context.Background(), "clip.mp4", "out", cfg, Dependencies{
		Logger:     mocks.NewLogger(),
		FileSystem: mocks.NewFileSystem(),
		Opener:     opener,
		Writer:     writer,
		Progress:   sink,
	})
	if err != nil {
		t.Fatalf("ExtractWith failed: %v", err)
	}

	if result.FramesRead != 9 || result.FramesWritten != 3 {
		t.Errorf("read/written = %d/%d, want 9/3", result.FramesRead, result.FramesWritten)
	}
	want := []string{"out/frame_1.jpg", "out/frame_2.jpg", "out/frame_3.jpg"}
	got := writer.Paths()
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if callbacks != 9 {
		t.Errorf("callback called %d times, want 9", callbacks)
	}
	if len(sink.Updates) != 9 {
		t.Errorf("sink got %d updates, want 9", len(sink.Updates))
	}
	if len(sink.Completions) != 1 {
		t.Errorf("sink got %d completions, want 1", len(sink.Completions))
	}
	if source.CloseCalls != 1 {
		t.Errorf("source closed %d times, want 1", source.CloseCalls)
	}
}

func TestExtract_InvalidStep(t *testing.T) {
	cfg := NewConfigBuilder().WithStep(0).Build()

	_, err := Extract(context.Background(), "missing.mp4", t.TempDir(), cfg)
	if !pipeline.IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestExtract_MissingVideo(t *testing.T) {
	cfg := NewConfigBuilder().WithBackend(smartsource.BackendMPEG).Build()

	_, err := Extract(context.Background(), "does-not-exist.mpg", t.TempDir(), cfg)
	var openErr *pipeline.OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
}

func TestExtractWith_RerunOverwritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfigBuilder().WithStep(3).WithFormat("png").Build()

	run := func(offset int) {
		t.Helper()
		source := mocks.NewVideoSource(9)
		source.NextFunc = func(_ context.Context, n int) (image.Image, error) {
			if n > 9 {
				return nil, io.EOF
			}
			return mocks.FrameImage(n + offset), nil
		}
		result, err := ExtractWith(context.Background(), "clip.mp4", dir, cfg, Dependencies{
			Opener: &mocks.SourceOpener{Source: source},
		})
		if err != nil {
			t.Fatalf("ExtractWith failed: %v", err)
		}
		if result.FramesWritten != 3 {
			t.Fatalf("FramesWritten = %d, want 3", result.FramesWritten)
		}
	}

	run(0)
	run(100)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"frame_1.png", "frame_2.png", "frame_3.png"}
	if len(names) != len(want) {
		t.Fatalf("files = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("file[%d] = %q, want %q", i, names[i], name)
		}
	}

	// Second run wins: frame_k holds source frame 3k shifted by 100.
	for i, name := range want {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if got, wantN := mocks.FrameNumber(img), 3*(i+1)+100; got != wantN {
			t.Errorf("%s holds frame %d, want %d", name, got, wantN)
		}
	}
}
