package containerprobe

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// RunFFprobe runs a single ffprobe JSON query against path.
func RunFFprobe(ctx context.Context, ffprobePath, path string) (Info, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		"-select_streams", "v",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseFFprobeJSON(out)
}

// ParseFFprobeJSON converts raw ffprobe JSON output into an Info.
// It is exported for testing without an ffprobe binary.
func ParseFFprobeJSON(data []byte) (Info, error) {
	var raw ffprobeOutput
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" || s.Disposition["attached_pic"] == 1 {
			continue
		}
		return convertStream(s, &raw.Format), nil
	}
	return Info{}, ErrNoVideoStream
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type ffprobeStream struct {
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	RFrameRate   string            `json:"r_frame_rate"`
	NbFrames     string            `json:"nb_frames"`
	Duration     string            `json:"duration"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
	SideData     []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	SideDataType string `json:"side_data_type"`
	Rotation     int    `json:"rotation"`
}

func convertStream(s *ffprobeStream, f *ffprobeFormat) Info {
	info := Info{
		Codec:         s.CodecName,
		Width:         s.Width,
		Height:        s.Height,
		Container:     f.FormatName,
		RotationKnown: true,
	}

	info.FrameRate = ParseRate(s.AvgFrameRate)
	if info.FrameRate <= 0 {
		info.FrameRate = ParseRate(s.RFrameRate)
	}

	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.TotalFrames = n
	} else {
		dur := parseFloat(s.Duration)
		if dur <= 0 {
			dur = parseFloat(f.Duration)
		}
		if dur > 0 && info.FrameRate > 0 {
			info.TotalFrames = int(math.Round(dur * info.FrameRate))
		}
	}

	for _, sd := range s.SideData {
		if sd.Rotation != 0 {
			info.Rotation = sd.Rotation
		}
	}
	if info.Rotation == 0 {
		if r, err := strconv.Atoi(s.Tags["rotate"]); err == nil {
			info.Rotation = r
		}
	}

	return info
}

// ParseRate parses an ffprobe rational such as "30000/1001" or "25".
// It returns 0 for empty or degenerate values like "0/0".
func ParseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
