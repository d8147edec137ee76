// Package sample implements the frame sampling stage: it walks a video source
// frame by frame and writes every Nth frame as a numbered image.
package sample

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/user/vidframes/pkg/pipeline"
	"github.com/user/vidframes/pkg/ports"
)

// Clock returns the current time.
type Clock func() time.Time

// Stage writes every Nth decoded frame to the output directory.
type Stage struct {
	writer ports.ImageWriter
	sink   ports.ProgressSink
	logger ports.Logger
	now    Clock
}

// Option configures a Stage.
type Option func(*Stage)

// WithClock replaces the wall clock used for elapsed time and throughput.
func WithClock(now Clock) Option {
	return func(s *Stage) {
		s.now = now
	}
}

// NewStage creates a new sampling stage.
func NewStage(writer ports.ImageWriter, sink ports.ProgressSink, logger ports.Logger, opts ...Option) *Stage {
	s := &Stage{
		writer: writer,
		sink:   sink,
		logger: logger.WithComponent("sample"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute reads input.Source until it stops yielding frames.
//
// The loop ends on io.EOF, on any other read error (recorded in the result,
// not returned), or when ctx is canceled. A failed write aborts the run with
// a *pipeline.WriteError; frames written before it are left on disk.
func (s *Stage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.RunResult, error) {
	result := pipeline.RunResult{
		Step:      input.Step,
		Format:    input.Format,
		OutputDir: input.OutputDir,
	}

	if input.Step < 1 {
		return result, &pipeline.ConfigError{Field: "step", Err: pipeline.ErrInvalidStep}
	}
	if input.Source == nil {
		return result, &pipeline.ConfigError{Field: "source", Err: pipeline.ErrNoSource}
	}

	info := input.Source.Info()
	result.Source = info
	result.PadWidth = PadWidth(info.TotalFrames, input.Step)

	s.logger.Debug("Sampling every %d frame(s), %d-digit names", input.Step, result.PadWidth)

	start := s.now()
	framesRead, written := 0, 0

	for {
		if err := ctx.Err(); err != nil {
			result.Stop = pipeline.StopCanceled
			s.finish(&result, framesRead, written, start)
			return result, fmt.Errorf("sampling interrupted: %w", err)
		}

		img, err := input.Source.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				result.Stop = pipeline.StopEndOfStream
			case ctx.Err() != nil:
				result.Stop = pipeline.StopCanceled
				s.finish(&result, framesRead, written, start)
				return result, fmt.Errorf("sampling interrupted: %w", ctx.Err())
			default:
				result.Stop = pipeline.StopReadError
				result.ReadErr = err
				s.logger.Debug("Read stopped after frame %d: %v", framesRead, err)
			}
			break
		}

		framesRead++

		if framesRead%input.Step == 0 {
			seq := framesRead / input.Step
			path := filepath.Join(input.OutputDir, FileName(seq, result.PadWidth, input.Format))
			if err := s.writer.WriteImage(ctx, img, path, input.Format); err != nil {
				result.Stop = pipeline.StopWriteError
				s.finish(&result, framesRead, written, start)
				return result, &pipeline.WriteError{Path: path, Frame: framesRead, Err: err}
			}
			written++
			result.LastPath = path
		}

		elapsed := s.now().Sub(start)
		s.sink.Progress(ports.Progress{
			FramesRead:    framesRead,
			FramesWritten: written,
			TotalFrames:   info.TotalFrames,
			FrameRate:     info.FrameRate,
			Throughput:    pipeline.Throughput(framesRead, elapsed),
			Elapsed:       elapsed,
		})
	}

	s.finish(&result, framesRead, written, start)
	s.logger.Debug("Read %d frames, wrote %d", result.FramesRead, result.FramesWritten)
	return result, nil
}

func (s *Stage) finish(result *pipeline.RunResult, framesRead, written int, start time.Time) {
	result.FramesRead = framesRead
	result.FramesWritten = written
	result.Elapsed = s.now().Sub(start)
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.SampleInput, pipeline.RunResult] = (*Stage)(nil)
