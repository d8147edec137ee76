package containerprobe

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleFFprobeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 320,
      "height": 240,
      "disposition": {"default": 0, "attached_pic": 1}
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "30000/1001",
      "r_frame_rate": "30000/1001",
      "nb_frames": "1798",
      "duration": "59.993267",
      "disposition": {"default": 1, "attached_pic": 0},
      "side_data_list": [
        {"side_data_type": "Display Matrix", "rotation": -90}
      ]
    }
  ],
  "format": {
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "60.000000"
  }
}`

func TestParseFFprobeJSON(t *testing.T) {
	info, err := ParseFFprobeJSON([]byte(sampleFFprobeJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Codec != "h264" {
		t.Errorf("expected cover art to be skipped, got codec %s", info.Codec)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", info.Width, info.Height)
	}
	if info.TotalFrames != 1798 {
		t.Errorf("expected 1798 frames, got %d", info.TotalFrames)
	}
	if math.Abs(info.FrameRate-29.97) > 0.01 {
		t.Errorf("expected ~29.97 fps, got %f", info.FrameRate)
	}
	if info.Rotation != -90 || !info.RotationKnown {
		t.Errorf("expected known rotation -90, got %d (known %v)", info.Rotation, info.RotationKnown)
	}
	w, h := info.DisplaySize()
	if w != 1080 || h != 1920 {
		t.Errorf("expected rotated display size 1080x1920, got %dx%d", w, h)
	}
}

func TestParseFFprobeJSON_EstimatesFramesFromDuration(t *testing.T) {
	data := `{
	  "streams": [{"codec_name": "vp9", "codec_type": "video", "width": 640, "height": 360,
	               "avg_frame_rate": "25/1", "tags": {"rotate": "180"}}],
	  "format": {"format_name": "matroska,webm", "duration": "4.0"}
	}`

	info, err := ParseFFprobeJSON([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.TotalFrames != 100 {
		t.Errorf("expected 100 estimated frames, got %d", info.TotalFrames)
	}
	if info.Rotation != 180 {
		t.Errorf("expected rotation from tags, got %d", info.Rotation)
	}
	w, h := info.DisplaySize()
	if w != 640 || h != 360 {
		t.Errorf("180 degree rotation should keep size, got %dx%d", w, h)
	}
}

func TestParseFFprobeJSON_Errors(t *testing.T) {
	if _, err := ParseFFprobeJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}

	audioOnly := `{"streams": [{"codec_name": "aac", "codec_type": "audio"}], "format": {}}`
	if _, err := ParseFFprobeJSON([]byte(audioOnly)); !errors.Is(err, ErrNoVideoStream) {
		t.Errorf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		if got := ParseRate(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseRate(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	m := Info{TotalFrames: 300, FrameRate: 30, Width: 1920, Height: 1088, Codec: "h264", Container: "mp4"}
	f := Info{TotalFrames: 299, FrameRate: 29.97, Width: 1920, Height: 1080, Rotation: 90, Codec: "h264", RotationKnown: true}

	got := merge(m, f)
	if got.TotalFrames != 300 || got.FrameRate != 30 {
		t.Errorf("expected sample-table counts to win, got %d frames at %f", got.TotalFrames, got.FrameRate)
	}
	if got.Height != 1080 || got.Rotation != 90 || !got.RotationKnown {
		t.Errorf("expected ffprobe geometry to win, got height %d rotation %d", got.Height, got.Rotation)
	}

	got = merge(Info{Container: "mp4"}, f)
	if got.TotalFrames != 299 || got.Codec != "h264" {
		t.Errorf("expected ffprobe to fill missing fields, got %+v", got)
	}
}

func TestIsMP4(t *testing.T) {
	for _, p := range []string{"a.mp4", "b.MOV", "dir/c.m4v", "d.3gp"} {
		if !IsMP4(p) {
			t.Errorf("expected %s to be MP4-family", p)
		}
	}
	for _, p := range []string{"a.mpg", "b.mkv", "c", "d.mp4.txt"} {
		if IsMP4(p) {
			t.Errorf("expected %s not to be MP4-family", p)
		}
	}
}

func TestCodecName(t *testing.T) {
	tests := map[string]string{
		"avc1": "h264",
		"hev1": "hevc",
		"av01": "av1",
		"vp09": "vp9",
		"xyz1": "xyz1",
	}
	for in, want := range tests {
		if got := codecName(in); got != want {
			t.Errorf("codecName(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestProbeMP4_InvalidData(t *testing.T) {
	if _, err := ProbeMP4(bytes.NewReader([]byte("definitely not an mp4 file"))); err == nil {
		t.Error("expected error for invalid MP4 data")
	}
}

func TestProbe_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp4")
	if _, err := Probe(context.Background(), path, Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProbe_RealFile(t *testing.T) {
	path := os.Getenv("VIDFRAMES_TEST_VIDEO")
	if path == "" {
		t.Skip("VIDFRAMES_TEST_VIDEO not set")
	}

	info, err := Probe(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		t.Errorf("expected positive size, got %dx%d", info.Width, info.Height)
	}
	t.Logf("probed %s: %+v", path, info)
}
