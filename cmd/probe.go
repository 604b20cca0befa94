package cmd

import (
	"context"
	"fmt"
	"os"

	"video-stills/domain/video"
	"video-stills/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var probeBackend string

var probeCmd = &cobra.Command{
	Use:   "probe <video>",
	Short: "Print the duration of a video",
	Long: `Print the duration of a video file using the active backend.

Example:
  video-stills probe recording.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVar(&probeBackend, "backend", "auto", "Frame decoding backend: auto, opencv or ffmpeg")
}

func runProbe(cmd *cobra.Command, args []string) error {
	grabber, err := selectGrabber(cmd.Context(), GetConfig(), probeBackend)
	if err != nil {
		return err
	}

	return RunProbeWithDependencies(cmd.Context(), grabber, filesystem.NewChecker(), args[0], os.Stdout)
}

// RunProbeWithDependencies runs the probe command with injected dependencies (for testing)
func RunProbeWithDependencies(
	ctx context.Context,
	grabber video.FrameGrabber,
	fileChecker video.FileChecker,
	sourcePath string,
	output OutputWriter,
) error {
	if !fileChecker.Exists(sourcePath) {
		return fmt.Errorf("source video does not exist: %s", sourcePath)
	}

	duration, err := grabber.Duration(ctx, sourcePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s: %.2fs (%s)\n", sourcePath, duration, video.TimestampFromSeconds(int(duration)))
	return nil
}
