package cmd

import (
	"fmt"
	"os"

	"video-stills/infrastructure/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "video-stills",
	Short: "Extract still frames from a video at fixed intervals",
	Long: `video-stills extracts timestamped JPEG frames from a video file.

Frames are decoded by OpenCV when the tool is built with -tags=opencv,
falling back to an ffmpeg subprocess otherwise. One JPEG is written per
sampled timestamp, named frame_000065s_0-01-05.jpg and so on.

Example:
  video-stills extract recording.mp4 frames/ --interval 2 --start 5 --end 120`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every per-frame event")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config file is optional; flags cover everything it provides
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// newLogger builds the CLI logger. Per-frame warnings always show; info-level
// run details only with --verbose.
func newLogger() *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
