//go:build opencv

package opencv

import (
	"context"
	"fmt"

	"video-stills/domain/video"

	"gocv.io/x/gocv"
)

// Grabber implements video.FrameGrabber using GoCV. The capture for the most
// recently used source is kept open between calls; Close releases it.
type Grabber struct {
	openPath string
	capture  *gocv.VideoCapture
}

// NewGrabber creates a new GoCV-based frame grabber
func NewGrabber() *Grabber {
	return &Grabber{}
}

// Name implements video.FrameGrabber
func (g *Grabber) Name() string { return "opencv" }

// VerifyAvailable reports whether the OpenCV backend can be used
func (g *Grabber) VerifyAvailable(ctx context.Context) error {
	return nil
}

// Grab implements video.FrameGrabber by seeking the capture to the requested
// offset and encoding the next frame as a JPEG.
func (g *Grabber) Grab(ctx context.Context, sourcePath string, atSeconds float64, quality int, outputPath string) error {
	capture, err := g.open(sourcePath)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCapturePosMsec, atSeconds*1000)

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := capture.Read(&frame); !ok || frame.Empty() {
		return fmt.Errorf("no frame at %gs in %s", atSeconds, sourcePath)
	}

	params := []int{gocv.IMWriteJpegQuality, quality}
	if ok := gocv.IMWriteWithParams(outputPath, frame, params); !ok {
		return fmt.Errorf("failed to write frame to %s", outputPath)
	}

	return nil
}

// Duration implements video.FrameGrabber using the container's frame count
// and frame rate.
func (g *Grabber) Duration(ctx context.Context, sourcePath string) (float64, error) {
	capture, err := g.open(sourcePath)
	if err != nil {
		return 0, err
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	frames := capture.Get(gocv.VideoCaptureFrameCount)
	if fps <= 0 || frames <= 0 {
		return 0, fmt.Errorf("cannot determine duration of %s", sourcePath)
	}

	return frames / fps, nil
}

// Close releases the open capture, if any
func (g *Grabber) Close() error {
	if g.capture == nil {
		return nil
	}
	err := g.capture.Close()
	g.capture = nil
	g.openPath = ""
	return err
}

func (g *Grabber) open(sourcePath string) (*gocv.VideoCapture, error) {
	if g.capture != nil && g.openPath == sourcePath {
		return g.capture, nil
	}
	if g.capture != nil {
		g.capture.Close()
		g.capture = nil
	}

	capture, err := gocv.VideoCaptureFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", sourcePath, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("failed to open %s", sourcePath)
	}

	g.capture = capture
	g.openPath = sourcePath
	return capture, nil
}

// Ensure Grabber implements video.FrameGrabber
var _ video.FrameGrabber = (*Grabber)(nil)
