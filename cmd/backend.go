package cmd

import (
	"context"
	"fmt"
	"time"

	"video-stills/domain/video"
	"video-stills/infrastructure/config"
	"video-stills/infrastructure/ffmpeg"
	"video-stills/infrastructure/opencv"
)

// selectGrabber picks the frame-decoding backend. "auto" tries OpenCV first
// and falls back to ffmpeg; forcing a backend skips the fallback. When no
// backend is usable the returned error wraps video.ErrBackendUnavailable.
func selectGrabber(ctx context.Context, cfg *config.Config, backend string) (video.FrameGrabber, error) {
	if backend == "" {
		backend = "auto"
	}
	if backend == "auto" && cfg != nil && cfg.Backend != "" {
		backend = cfg.Backend
	}

	switch backend {
	case "opencv":
		cv := opencv.NewGrabber()
		if err := cv.VerifyAvailable(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", video.ErrBackendUnavailable, err)
		}
		return cv, nil

	case "ffmpeg":
		ff := newFFmpegGrabber(cfg)
		if err := verifyFFmpeg(ctx, ff); err != nil {
			return nil, fmt.Errorf("%w: %v", video.ErrBackendUnavailable, err)
		}
		return ff, nil

	case "auto":
		cv := opencv.NewGrabber()
		cvErr := cv.VerifyAvailable(ctx)
		if cvErr == nil {
			return cv, nil
		}

		ff := newFFmpegGrabber(cfg)
		if ffErr := verifyFFmpeg(ctx, ff); ffErr != nil {
			return nil, fmt.Errorf("%w: opencv: %v; ffmpeg: %v", video.ErrBackendUnavailable, cvErr, ffErr)
		}
		return ff, nil

	default:
		return nil, fmt.Errorf("%w: unknown backend %q (expected auto, opencv or ffmpeg)", video.ErrInvalidArgument, backend)
	}
}

func newFFmpegGrabber(cfg *config.Config) *ffmpeg.Grabber {
	var opts []ffmpeg.GrabberOption
	if cfg != nil && cfg.FFmpeg.Path != "" {
		opts = append(opts, ffmpeg.WithFFmpegPath(cfg.FFmpeg.Path))
	}
	if cfg != nil && cfg.FFmpeg.ProbePath != "" {
		opts = append(opts, ffmpeg.WithFFprobePath(cfg.FFmpeg.ProbePath))
	}
	return ffmpeg.NewGrabber(opts...)
}

func verifyFFmpeg(ctx context.Context, ff *ffmpeg.Grabber) error {
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return ff.VerifyInstalled(verifyCtx)
}
