package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"video-stills/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting default paths, extraction
settings and backend preferences.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to video-stills setup!")
	fmt.Println()

	cfg := &config.Config{}

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptExtraction(prompter, cfg); err != nil {
		return err
	}

	if err := promptBackend(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	outputDir, err := prompter.Input("Default output directory for frames:", "frames")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.OutputDirectory = outputDir
	return nil
}

func promptExtraction(prompter Prompter, cfg *config.Config) error {
	intervalStr, err := prompter.Input("Default interval between frames (seconds):", "1")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	interval, err := strconv.ParseFloat(intervalStr, 64)
	if err != nil || interval <= 0 {
		return fmt.Errorf("interval must be a positive number, got %q", intervalStr)
	}
	cfg.Extraction.Interval = interval

	qualityStr, err := prompter.Input("Default JPEG quality (1-100):", "85")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	quality, err := strconv.Atoi(qualityStr)
	if err != nil || quality < 1 || quality > 100 {
		return fmt.Errorf("quality must be an integer between 1 and 100, got %q", qualityStr)
	}
	cfg.Extraction.Quality = quality

	return nil
}

func promptBackend(prompter Prompter, cfg *config.Config) error {
	backend, err := prompter.Input("Preferred backend (auto, opencv, ffmpeg):", "auto")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if backend != "auto" && backend != "opencv" && backend != "ffmpeg" {
		return fmt.Errorf("backend must be auto, opencv or ffmpeg, got %q", backend)
	}
	cfg.Backend = backend

	ffmpegPath, err := prompter.Input("ffmpeg executable path:", "ffmpeg")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.FFmpeg.Path = ffmpegPath

	ffprobePath, err := prompter.Input("ffprobe executable path:", "ffprobe")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.FFmpeg.ProbePath = ffprobePath

	return nil
}
