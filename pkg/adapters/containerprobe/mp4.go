package containerprobe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ProbeMP4File reads metadata from an MP4-family file.
func ProbeMP4File(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeMP4(f)
}

// ProbeMP4 reads metadata from MP4 data. Sample payloads are not loaded.
func ProbeMP4(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeProgressive(mp4File *mp4.File) (Info, error) {
	if mp4File.Moov == nil {
		return Info{}, fmt.Errorf("no moov box found")
	}

	trak := findVideoTrack(mp4File.Moov.Traks)
	if trak == nil {
		return Info{}, ErrNoVideoStream
	}

	info := trackInfo(trak)

	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil {
		return Info{}, fmt.Errorf("no stsz box found")
	}
	info.TotalFrames = int(stbl.Stsz.SampleNumber)

	mdhd := trak.Mdia.Mdhd
	if mdhd != nil && mdhd.Timescale > 0 && mdhd.Duration > 0 {
		seconds := float64(mdhd.Duration) / float64(mdhd.Timescale)
		info.FrameRate = float64(info.TotalFrames) / seconds
	}

	return info, nil
}

func probeFragmented(mp4File *mp4.File) (Info, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return Info{}, fmt.Errorf("no init segment found")
	}

	trak := findVideoTrack(mp4File.Init.Moov.Traks)
	if trak == nil {
		return Info{}, ErrNoVideoStream
	}
	info := trackInfo(trak)
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mp4File.Init.Moov.Mvex != nil {
		for _, t := range mp4File.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var samples int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}
				defaultDur := defaultSampleDuration(traf.Tfhd, trex)
				for _, trun := range traf.Truns {
					samples += int(trun.SampleCount())
					for _, s := range trun.Samples {
						if s.Dur > 0 {
							duration += uint64(s.Dur)
						} else {
							duration += uint64(defaultDur)
						}
					}
				}
			}
		}
	}

	info.TotalFrames = samples
	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 && duration > 0 {
		info.FrameRate = float64(samples) * float64(mdhd.Timescale) / float64(duration)
	}
	return info, nil
}

func defaultSampleDuration(tfhd *mp4.TfhdBox, trex *mp4.TrexBox) uint32 {
	if tfhd != nil && tfhd.DefaultSampleDuration > 0 {
		return tfhd.DefaultSampleDuration
	}
	if trex != nil {
		return trex.DefaultSampleDuration
	}
	return 0
}

// findVideoTrack returns the first track with a "vide" handler and a sample table.
func findVideoTrack(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		return trak
	}
	return nil
}

// trackInfo reads codec and coded size from the sample description.
func trackInfo(trak *mp4.TrakBox) Info {
	info := Info{Container: "mp4"}
	stsd := trak.Mdia.Minf.Stbl.Stsd
	if stsd == nil {
		return info
	}
	for _, child := range stsd.Children {
		info.Codec = codecName(child.Type())
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		break
	}
	return info
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp08":
		return "vp8"
	case "vp09":
		return "vp9"
	case "mp4v":
		return "mpeg4"
	default:
		return sampleEntry
	}
}
