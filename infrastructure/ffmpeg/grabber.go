package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"video-stills/domain/video"
)

// Grabber implements video.FrameGrabber by shelling out to ffmpeg for frame
// decodes and ffprobe for duration queries
type Grabber struct {
	ffmpegPath  string
	ffprobePath string
	runner      CommandRunner
}

// GrabberOption is a functional option for configuring Grabber
type GrabberOption func(*Grabber)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) GrabberOption {
	return func(g *Grabber) {
		g.ffmpegPath = path
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) GrabberOption {
	return func(g *Grabber) {
		g.ffprobePath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) GrabberOption {
	return func(g *Grabber) {
		g.runner = runner
	}
}

// NewGrabber creates a new FFmpeg-based frame grabber
func NewGrabber(opts ...GrabberOption) *Grabber {
	g := &Grabber{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Name implements video.FrameGrabber
func (g *Grabber) Name() string { return "ffmpeg" }

// Grab implements video.FrameGrabber. Seeking happens before the input flag
// so ffmpeg uses the fast keyframe seek.
func (g *Grabber) Grab(ctx context.Context, sourcePath string, atSeconds float64, quality int, outputPath string) error {
	args := []string{
		"-ss", formatSeconds(atSeconds),
		"-i", sourcePath,
		"-frames:v", "1",
		"-q:v", strconv.Itoa(jpegScale(quality)),
		"-y", // Overwrite output file if it exists
		outputPath,
	}

	if err := g.runner.Run(ctx, g.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg frame grab at %ss failed: %w", formatSeconds(atSeconds), err)
	}

	return nil
}

// Duration implements video.FrameGrabber using ffprobe
func (g *Grabber) Duration(ctx context.Context, sourcePath string) (float64, error) {
	out, err := g.runner.Output(ctx, g.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		sourcePath,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe duration output %q: %w", strings.TrimSpace(string(out)), err)
	}

	return duration, nil
}

// VerifyInstalled checks that ffmpeg and ffprobe are available
func (g *Grabber) VerifyInstalled(ctx context.Context) error {
	if _, err := g.runner.Output(ctx, g.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	if _, err := g.runner.Output(ctx, g.ffprobePath, "-version"); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// jpegScale converts a 1-100 JPEG quality to ffmpeg's inverted 1-31 -q:v
// scale, where 1 is best.
func jpegScale(quality int) int {
	q := 32 - quality/3
	if q < 1 {
		q = 1
	}
	if q > 31 {
		q = 31
	}
	return q
}

// formatSeconds renders a seek offset without trailing zeros
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// Ensure Grabber implements video.FrameGrabber
var _ video.FrameGrabber = (*Grabber)(nil)
