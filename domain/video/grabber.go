package video

import "context"

// FrameGrabber defines the interface for decoding single frames from a video
// This is a port that can be implemented by different infrastructure adapters
type FrameGrabber interface {
	// Grab decodes the frame at the given offset and writes it as a JPEG with
	// the given quality (1-100) to outputPath
	Grab(ctx context.Context, sourcePath string, atSeconds float64, quality int, outputPath string) error

	// Duration returns the length of the video in seconds
	Duration(ctx context.Context, sourcePath string) (float64, error)

	// Name identifies the backend in user-facing output
	Name() string
}

// FileChecker defines the interface for checking file existence and preparing
// output directories
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool

	// EnsureDir creates the directory (and parents) if it does not exist
	EnsureDir(path string) error
}
