package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	appvideo "video-stills/application/video"
	"video-stills/domain/video"
	"video-stills/infrastructure/config"
	"video-stills/infrastructure/filesystem"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractInterval  float64
	extractStart     string
	extractEnd       string
	extractQuality   int
	extractOverwrite bool
	extractBackend   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <video> [output-dir]",
	Short: "Extract still frames from a video",
	Long: `Extract one JPEG frame per interval from a video file.

Timestamps run from --start to --end inclusive, stepped by --interval.
--start and --end accept seconds (12, 2.5) or HH:MM:SS timestamps.
Existing frames are skipped unless --overwrite is set, and a frame that
fails to decode is logged and skipped without aborting the run.

The output directory may be omitted when paths.output_directory is set
in the config file.

Examples:
  video-stills extract recording.mp4 frames/
  video-stills extract recording.mp4 frames/ --interval 2 --start 5 --end 15
  video-stills extract recording.mp4 frames/ --start 00:01:30 --quality 95 --overwrite`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Float64Var(&extractInterval, "interval", video.DefaultInterval, "Seconds between frames")
	extractCmd.Flags().StringVar(&extractStart, "start", "", "Start time in seconds or HH:MM:SS (default 0)")
	extractCmd.Flags().StringVar(&extractEnd, "end", "", "End time in seconds or HH:MM:SS (default video end)")
	extractCmd.Flags().IntVar(&extractQuality, "quality", video.DefaultQuality, "JPEG quality 1-100")
	extractCmd.Flags().BoolVar(&extractOverwrite, "overwrite", false, "Overwrite existing frames")
	extractCmd.Flags().StringVar(&extractBackend, "backend", "auto", "Frame decoding backend: auto, opencv or ffmpeg")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	outputDir, err := resolveOutputDir(args, cfg)
	if err != nil {
		return err
	}

	interval := extractInterval
	if !cmd.Flags().Changed("interval") && cfg != nil && cfg.Extraction.Interval > 0 {
		interval = cfg.Extraction.Interval
	}
	quality := extractQuality
	if !cmd.Flags().Changed("quality") && cfg != nil && cfg.Extraction.Quality > 0 {
		quality = cfg.Extraction.Quality
	}

	start := 0.0
	if extractStart != "" {
		parsed, err := parseTimeFlag(extractStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		start = parsed
	}

	var end *float64
	if extractEnd != "" {
		parsed, err := parseTimeFlag(extractEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		end = &parsed
	}

	grabber, err := selectGrabber(cmd.Context(), cfg, extractBackend)
	if err != nil {
		return err
	}

	input := appvideo.StillsInput{
		SourcePath: args[0],
		OutputDir:  outputDir,
		Interval:   interval,
		Start:      start,
		End:        end,
		Quality:    quality,
		Overwrite:  extractOverwrite,
	}

	return RunExtractWithDependencies(
		cmd.Context(),
		grabber,
		filesystem.NewChecker(),
		newLogger(),
		input,
		os.Stdout,
	)
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// RunExtractWithDependencies runs the extract command with injected dependencies (for testing)
func RunExtractWithDependencies(
	ctx context.Context,
	grabber video.FrameGrabber,
	fileChecker video.FileChecker,
	logger *zap.Logger,
	input appvideo.StillsInput,
	output OutputWriter,
) error {
	service := appvideo.NewStillsService(grabber, fileChecker, logger)

	fmt.Fprintf(output, "Extracting frames every %gs using %s backend...\n", input.Interval, grabber.Name())

	result, err := service.Extract(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Extracted %d frames to %s (%d skipped, %d failed)\n",
		result.Written, result.OutputDir, result.Skipped, result.Failed)
	return nil
}

// resolveOutputDir returns the second positional argument when given,
// falling back to the configured default output directory
func resolveOutputDir(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	if cfg != nil && cfg.Paths.OutputDirectory != "" {
		return cfg.Paths.OutputDirectory, nil
	}
	return "", fmt.Errorf("%w: no output directory given and paths.output_directory is not configured", video.ErrInvalidArgument)
}

// parseTimeFlag accepts a float number of seconds or an HH:MM:SS timestamp
func parseTimeFlag(s string) (float64, error) {
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		return seconds, nil
	}

	ts, err := video.ParseTimestamp(s)
	if err != nil {
		return 0, fmt.Errorf("expected seconds or HH:MM:SS, got %q", s)
	}
	return float64(ts.TotalSeconds()), nil
}
