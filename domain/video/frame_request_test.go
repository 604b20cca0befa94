package video

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFrameExtractionRequest(t *testing.T) {
	tests := []struct {
		name        string
		sourcePath  string
		outputDir   string
		interval    float64
		start       float64
		end         float64
		quality     int
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid request",
			sourcePath: "/videos/input.mp4",
			outputDir:  "/videos/frames",
			interval:   1,
			start:      0,
			end:        10,
			quality:    85,
		},
		{
			name:       "fractional interval",
			sourcePath: "/videos/input.mp4",
			outputDir:  "/videos/frames",
			interval:   0.5,
			start:      2,
			end:        4,
			quality:    1,
		},
		{
			name:        "missing source path",
			outputDir:   "/videos/frames",
			interval:    1,
			end:         10,
			quality:     85,
			wantErr:     true,
			errContains: "source path is required",
		},
		{
			name:        "missing output directory",
			sourcePath:  "/videos/input.mp4",
			interval:    1,
			end:         10,
			quality:     85,
			wantErr:     true,
			errContains: "output directory is required",
		},
		{
			name:        "zero interval",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    0,
			end:         10,
			quality:     85,
			wantErr:     true,
			errContains: "interval must be greater than 0",
		},
		{
			name:        "negative interval",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    -2,
			end:         10,
			quality:     85,
			wantErr:     true,
			errContains: "interval must be greater than 0",
		},
		{
			name:        "negative start",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    1,
			start:       -1,
			end:         10,
			quality:     85,
			wantErr:     true,
			errContains: "must not be negative",
		},
		{
			name:        "end before start",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    1,
			start:       10,
			end:         5,
			quality:     85,
			wantErr:     true,
			errContains: "must be after start time",
		},
		{
			name:        "end equals start",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    1,
			start:       5,
			end:         5,
			quality:     85,
			wantErr:     true,
			errContains: "must be after start time",
		},
		{
			name:        "quality too low",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    1,
			end:         10,
			quality:     0,
			wantErr:     true,
			errContains: "quality must be between 1 and 100",
		},
		{
			name:        "quality too high",
			sourcePath:  "/videos/input.mp4",
			outputDir:   "/videos/frames",
			interval:    1,
			end:         10,
			quality:     101,
			wantErr:     true,
			errContains: "quality must be between 1 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewFrameExtractionRequest(tt.sourcePath, tt.outputDir, tt.interval, tt.start, tt.end, tt.quality, false)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("error = %v, want ErrInvalidArgument", err)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.SourcePath != tt.sourcePath {
				t.Errorf("SourcePath = %q, want %q", req.SourcePath, tt.sourcePath)
			}
		})
	}
}

func TestValidateSettingsIgnoresEnd(t *testing.T) {
	// With an unresolved end the other arguments are still checked.
	req := &FrameExtractionRequest{
		SourcePath: "/videos/input.mp4",
		OutputDir:  "/videos/frames",
		Interval:   1,
		Quality:    85,
	}

	if err := req.ValidateSettings(); err != nil {
		t.Errorf("ValidateSettings() = %v, want nil with zero End", err)
	}
	if err := req.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Validate() = %v, want ErrInvalidArgument for zero End", err)
	}

	req.Quality = 200
	if err := req.ValidateSettings(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ValidateSettings() = %v, want ErrInvalidArgument for bad quality", err)
	}
}

func TestFrameFilename(t *testing.T) {
	tests := []struct {
		name      string
		atSeconds float64
		want      string
	}{
		{name: "one second", atSeconds: 1.0, want: "frame_000001s_0-00-01.jpg"},
		{name: "sixty five seconds", atSeconds: 65.0, want: "frame_000065s_0-01-05.jpg"},
		{name: "zero", atSeconds: 0, want: "frame_000000s_0-00-00.jpg"},
		{name: "fractional truncates", atSeconds: 12.75, want: "frame_000012s_0-00-12.jpg"},
		{name: "over an hour", atSeconds: 3725, want: "frame_003725s_1-02-05.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrameFilename(tt.atSeconds); got != tt.want {
				t.Errorf("FrameFilename(%g) = %q, want %q", tt.atSeconds, got, tt.want)
			}
		})
	}
}

func TestFramePath(t *testing.T) {
	req := &FrameExtractionRequest{
		SourcePath: "/videos/input.mp4",
		OutputDir:  "/videos/frames",
		Interval:   1,
		End:        10,
		Quality:    85,
	}

	want := filepath.Join("/videos/frames", "frame_000003s_0-00-03.jpg")
	if got := req.FramePath(3.0); got != want {
		t.Errorf("FramePath(3.0) = %q, want %q", got, want)
	}
}
