//go:build !opencv

package opencv

import (
	"context"
	"fmt"

	"video-stills/domain/video"
)

// Grabber is a stub when GoCV/OpenCV is not available
type Grabber struct{}

// NewGrabber creates a stub grabber (requires building with -tags=opencv)
func NewGrabber() *Grabber {
	return &Grabber{}
}

// Name implements video.FrameGrabber
func (g *Grabber) Name() string { return "opencv" }

// VerifyAvailable returns an error indicating the OpenCV backend is not
// compiled in, which triggers the ffmpeg fallback
func (g *Grabber) VerifyAvailable(ctx context.Context) error {
	return fmt.Errorf("opencv backend not available: build with '-tags=opencv' and install OpenCV/GoCV")
}

// Grab returns an error indicating the backend is not available
func (g *Grabber) Grab(ctx context.Context, sourcePath string, atSeconds float64, quality int, outputPath string) error {
	return fmt.Errorf("opencv backend not available: build with '-tags=opencv' and install OpenCV/GoCV")
}

// Duration returns an error indicating the backend is not available
func (g *Grabber) Duration(ctx context.Context, sourcePath string) (float64, error) {
	return 0, fmt.Errorf("opencv backend not available: build with '-tags=opencv' and install OpenCV/GoCV")
}

// Close is a no-op in stub mode
func (g *Grabber) Close() error { return nil }

// Ensure Grabber implements video.FrameGrabber
var _ video.FrameGrabber = (*Grabber)(nil)
