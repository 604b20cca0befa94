//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-stills/cmd"
	"video-stills/infrastructure/config"

	"github.com/cucumber/godog"
)

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	err             error
}

var SharedSetupContext = &setupContext{}

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		if defaultValue != "" {
			return defaultValue, nil
		}
		return "", fmt.Errorf("no more input responses available for message: %s", message)
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSetupContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config", "config.yaml")
		testCtx.originalContent = ""
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		*testCtx = setupContext{}
		return c, nil
	})

	ctx.Step(`^no config file exists for setup$`, testCtx.noConfigFileExistsForSetup)
	ctx.Step(`^a config file already exists for setup$`, testCtx.aConfigFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with inputs:$`, testCtx.iRunTheSetupCommandWithInputs)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)"$`, testCtx.iRunTheSetupCommandWithConfirmation)
	ctx.Step(`^a config file should exist$`, testCtx.aConfigFileShouldExist)
	ctx.Step(`^the config should have output_directory "([^"]*)"$`, testCtx.theConfigShouldHaveOutputDirectory)
	ctx.Step(`^the config should have interval (\d+)$`, testCtx.theConfigShouldHaveInterval)
	ctx.Step(`^the config should have quality (\d+)$`, testCtx.theConfigShouldHaveQuality)
	ctx.Step(`^the config should have backend "([^"]*)"$`, testCtx.theConfigShouldHaveBackend)
	ctx.Step(`^the config file should be unchanged$`, testCtx.theConfigFileShouldBeUnchanged)
	ctx.Step(`^setup should fail with an error about quality$`, testCtx.setupShouldFailWithQualityError)
}

func (s *setupContext) noConfigFileExistsForSetup() error {
	return nil
}

func (s *setupContext) aConfigFileAlreadyExistsForSetup() error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}
	s.originalContent = "paths:\n  output_directory: original\n"
	return os.WriteFile(s.configPath, []byte(s.originalContent), 0644)
}

func (s *setupContext) iRunTheSetupCommandWithInputs(table *godog.Table) error {
	inputs := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		inputs = append(inputs, row.Cells[0].Value)
	}
	prompter := NewMockPrompter(inputs, []bool{true})
	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath)
	return nil
}

func (s *setupContext) iRunTheSetupCommandWithConfirmation(answer string) error {
	confirm := answer == "yes"
	prompter := NewMockPrompter(nil, []bool{confirm})
	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath)
	return s.err
}

func (s *setupContext) aConfigFileShouldExist() error {
	if s.err != nil {
		return fmt.Errorf("setup failed: %w", s.err)
	}
	if _, err := os.Stat(s.configPath); err != nil {
		return fmt.Errorf("config file not created: %w", err)
	}
	return nil
}

func (s *setupContext) loadConfig() (*config.Config, error) {
	return config.Load(s.configPath)
}

func (s *setupContext) theConfigShouldHaveOutputDirectory(dir string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Paths.OutputDirectory != dir {
		return fmt.Errorf("output_directory = %q, want %q", cfg.Paths.OutputDirectory, dir)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveInterval(interval int) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Extraction.Interval != float64(interval) {
		return fmt.Errorf("interval = %g, want %d", cfg.Extraction.Interval, interval)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveQuality(quality int) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Extraction.Quality != quality {
		return fmt.Errorf("quality = %d, want %d", cfg.Extraction.Quality, quality)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveBackend(backend string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Backend != backend {
		return fmt.Errorf("backend = %q, want %q", cfg.Backend, backend)
	}
	return nil
}

func (s *setupContext) theConfigFileShouldBeUnchanged() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if string(data) != s.originalContent {
		return fmt.Errorf("config file was modified")
	}
	return nil
}

func (s *setupContext) setupShouldFailWithQualityError() error {
	if s.err == nil {
		return fmt.Errorf("expected setup to fail, but it succeeded")
	}
	if !strings.Contains(s.err.Error(), "quality") {
		return fmt.Errorf("error %q does not mention quality", s.err.Error())
	}
	return nil
}
