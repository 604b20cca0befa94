package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Extraction ExtractionConfig `yaml:"extraction"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	Backend    string           `yaml:"backend"`
}

// PathsConfig contains directory paths for frame extraction
type PathsConfig struct {
	OutputDirectory string `yaml:"output_directory"`
}

// ExtractionConfig contains default extraction settings
type ExtractionConfig struct {
	Interval float64 `yaml:"interval"`
	Quality  int     `yaml:"quality"`
}

// FFmpegConfig contains executable paths for the subprocess backend
type FFmpegConfig struct {
	Path      string `yaml:"path"`
	ProbePath string `yaml:"probe_path"`
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
