//go:build !opencv

package cmd

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"video-stills/domain/video"
	"video-stills/infrastructure/config"
)

// missingFFmpegConfig points both executables at paths that cannot exist
func missingFFmpegConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		FFmpeg: config.FFmpegConfig{
			Path:      filepath.Join(dir, "ffmpeg"),
			ProbePath: filepath.Join(dir, "ffprobe"),
		},
	}
}

// workingFFmpegConfig substitutes a harmless executable for ffmpeg/ffprobe so
// VerifyInstalled succeeds without the real tools
func workingFFmpegConfig(t *testing.T) *config.Config {
	t.Helper()
	trueBin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("no 'true' executable available")
	}
	return &config.Config{
		FFmpeg: config.FFmpegConfig{Path: trueBin, ProbePath: trueBin},
	}
}

func TestSelectGrabberForcedOpenCVUnavailable(t *testing.T) {
	_, err := selectGrabber(context.Background(), nil, "opencv")
	if !errors.Is(err, video.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestSelectGrabberUnknownBackend(t *testing.T) {
	_, err := selectGrabber(context.Background(), nil, "bogus")
	if !errors.Is(err, video.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestSelectGrabberAutoFallsBackToFFmpeg(t *testing.T) {
	grabber, err := selectGrabber(context.Background(), workingFFmpegConfig(t), "auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grabber.Name() != "ffmpeg" {
		t.Errorf("backend = %q, want %q", grabber.Name(), "ffmpeg")
	}
}

func TestSelectGrabberForcedFFmpeg(t *testing.T) {
	grabber, err := selectGrabber(context.Background(), workingFFmpegConfig(t), "ffmpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grabber.Name() != "ffmpeg" {
		t.Errorf("backend = %q, want %q", grabber.Name(), "ffmpeg")
	}
}

func TestSelectGrabberForcedFFmpegMissing(t *testing.T) {
	_, err := selectGrabber(context.Background(), missingFFmpegConfig(t), "ffmpeg")
	if !errors.Is(err, video.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestSelectGrabberBothUnavailable(t *testing.T) {
	_, err := selectGrabber(context.Background(), missingFFmpegConfig(t), "auto")
	if !errors.Is(err, video.ErrBackendUnavailable) {
		t.Fatalf("error = %v, want ErrBackendUnavailable", err)
	}
	// Both causes are reported so the user sees why each backend failed.
	if !strings.Contains(err.Error(), "opencv") || !strings.Contains(err.Error(), "ffmpeg") {
		t.Errorf("error %q does not name both backends", err.Error())
	}
}

func TestSelectGrabberConfigBackendPreference(t *testing.T) {
	cfg := workingFFmpegConfig(t)
	cfg.Backend = "ffmpeg"

	grabber, err := selectGrabber(context.Background(), cfg, "auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grabber.Name() != "ffmpeg" {
		t.Errorf("backend = %q, want configured preference %q", grabber.Name(), "ffmpeg")
	}
}

func TestSelectGrabberConfigBackendInvalid(t *testing.T) {
	cfg := &config.Config{Backend: "bogus"}

	_, err := selectGrabber(context.Background(), cfg, "auto")
	if !errors.Is(err, video.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}
