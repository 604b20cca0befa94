package video

import (
	"fmt"
	"path/filepath"
)

// Defaults for frame extraction
const (
	DefaultInterval = 1.0
	DefaultQuality  = 85
)

// FrameExtractionRequest represents a request to extract still frames from a
// video at a fixed interval. It is built once from CLI input and read-only
// afterwards.
type FrameExtractionRequest struct {
	SourcePath string
	OutputDir  string
	Interval   float64
	Start      float64
	End        float64
	Quality    int
	Overwrite  bool
}

// NewFrameExtractionRequest creates a FrameExtractionRequest with validation
func NewFrameExtractionRequest(sourcePath, outputDir string, interval, start, end float64, quality int, overwrite bool) (*FrameExtractionRequest, error) {
	req := &FrameExtractionRequest{
		SourcePath: sourcePath,
		OutputDir:  outputDir,
		Interval:   interval,
		Start:      start,
		End:        end,
		Quality:    quality,
		Overwrite:  overwrite,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the extraction request is valid
func (r *FrameExtractionRequest) Validate() error {
	if err := r.ValidateSettings(); err != nil {
		return err
	}
	if r.End <= r.Start {
		return fmt.Errorf("%w: end time %g must be after start time %g", ErrInvalidArgument, r.End, r.Start)
	}

	return nil
}

// ValidateSettings checks everything except the end of the range, which may
// not be known until the video duration has been probed.
func (r *FrameExtractionRequest) ValidateSettings() error {
	if r.SourcePath == "" {
		return fmt.Errorf("%w: source path is required", ErrInvalidArgument)
	}
	if r.OutputDir == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidArgument)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: interval must be greater than 0, got %g", ErrInvalidArgument, r.Interval)
	}
	if r.Start < 0 {
		return fmt.Errorf("%w: start time must not be negative, got %g", ErrInvalidArgument, r.Start)
	}
	if r.Quality < 1 || r.Quality > 100 {
		return fmt.Errorf("%w: quality must be between 1 and 100, got %d", ErrInvalidArgument, r.Quality)
	}

	return nil
}

// Samples returns the range of timestamps the request covers
func (r *FrameExtractionRequest) Samples() SampleRange {
	return SampleRange{Start: r.Start, End: r.End, Interval: r.Interval}
}

// FrameFilename returns the output filename for a frame at the given offset,
// in the form frame_000065s_0-01-05.jpg. The offset is truncated to whole
// seconds for both the zero-padded seconds field and the H-MM-SS suffix.
func FrameFilename(atSeconds float64) string {
	sec := int(atSeconds)
	return fmt.Sprintf("frame_%06ds_%s.jpg", sec, TimestampFromSeconds(sec).Compact())
}

// FramePath returns the full output path for a frame at the given offset
func (r *FrameExtractionRequest) FramePath(atSeconds float64) string {
	return filepath.Join(r.OutputDir, FrameFilename(atSeconds))
}
