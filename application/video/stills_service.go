package video

import (
	"context"
	"fmt"

	"video-stills/domain/video"

	"go.uber.org/zap"
)

// StillsResult contains the result of a frame extraction run
type StillsResult struct {
	Written   int
	Skipped   int
	Failed    int
	OutputDir string
	Backend   string
}

// StillsService coordinates still-frame extraction runs
type StillsService struct {
	grabber     video.FrameGrabber
	fileChecker video.FileChecker
	logger      *zap.Logger
}

// NewStillsService creates a new StillsService
func NewStillsService(grabber video.FrameGrabber, fileChecker video.FileChecker, logger *zap.Logger) *StillsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StillsService{
		grabber:     grabber,
		fileChecker: fileChecker,
		logger:      logger,
	}
}

// StillsInput represents the input for a frame extraction run. End is optional
// and defaults to the video duration.
type StillsInput struct {
	SourcePath string
	OutputDir  string
	Interval   float64
	Start      float64
	End        *float64
	Quality    int
	Overwrite  bool
}

// Extract walks the requested time range and saves one JPEG per sample.
// Per-frame decode failures are logged and counted but never abort the run;
// only setup problems (missing source, no usable end time, bad arguments)
// return an error.
func (s *StillsService) Extract(ctx context.Context, input StillsInput) (*StillsResult, error) {
	// Verify source file exists
	if !s.fileChecker.Exists(input.SourcePath) {
		return nil, fmt.Errorf("source video does not exist: %s", input.SourcePath)
	}

	req := &video.FrameExtractionRequest{
		SourcePath: input.SourcePath,
		OutputDir:  input.OutputDir,
		Interval:   input.Interval,
		Start:      input.Start,
		Quality:    input.Quality,
		Overwrite:  input.Overwrite,
	}

	// Bad arguments are reported before the duration probe runs.
	if input.End != nil {
		req.End = *input.End
		if err := req.Validate(); err != nil {
			return nil, err
		}
	} else if err := req.ValidateSettings(); err != nil {
		return nil, err
	}

	end, err := s.resolveEnd(ctx, input)
	if err != nil {
		return nil, err
	}

	req.End = end
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.fileChecker.EnsureDir(req.OutputDir); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", req.OutputDir, err)
	}

	result := &StillsResult{
		OutputDir: req.OutputDir,
		Backend:   s.grabber.Name(),
	}

	var loopErr error
	req.Samples().Each(func(at float64) bool {
		if err := ctx.Err(); err != nil {
			loopErr = err
			return false
		}

		framePath := req.FramePath(at)
		if !req.Overwrite && s.fileChecker.Exists(framePath) {
			result.Skipped++
			return true
		}

		if err := s.grabber.Grab(ctx, req.SourcePath, at, req.Quality, framePath); err != nil {
			// Failure isolation is per frame: log and keep going.
			s.logger.Warn("frame decode failed",
				zap.Float64("at_seconds", at),
				zap.String("path", framePath),
				zap.Error(err),
			)
			result.Failed++
			return true
		}

		result.Written++
		return true
	})
	if loopErr != nil {
		return nil, loopErr
	}

	s.logger.Info("extraction finished",
		zap.String("backend", result.Backend),
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// resolveEnd returns the effective end of the range: the explicit end when
// given, otherwise the video duration. An explicit end past the duration is
// clamped to it.
func (s *StillsService) resolveEnd(ctx context.Context, input StillsInput) (float64, error) {
	duration, durErr := s.grabber.Duration(ctx, input.SourcePath)
	if durErr != nil {
		s.logger.Warn("could not determine video duration", zap.Error(durErr))
	}

	if input.End == nil {
		if durErr != nil {
			return 0, fmt.Errorf("cannot determine video duration; specify --end: %w", durErr)
		}
		return duration, nil
	}

	end := *input.End
	if durErr == nil && end > duration {
		end = duration
	}
	return end, nil
}
