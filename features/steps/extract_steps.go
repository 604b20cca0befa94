//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	appvideo "video-stills/application/video"
	"video-stills/cmd"
	"video-stills/infrastructure/filesystem"

	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

// fakeGrabber implements video.FrameGrabber for feature tests. It writes a
// placeholder file instead of decoding anything, so skip and overwrite
// behavior runs against the real filesystem.
type fakeGrabber struct {
	name     string
	duration float64
	failAt   map[int]bool
}

func (g *fakeGrabber) Grab(ctx context.Context, sourcePath string, atSeconds float64, quality int, outputPath string) error {
	if g.failAt[int(atSeconds)] {
		return fmt.Errorf("decode failed at %gs", atSeconds)
	}
	return os.WriteFile(outputPath, []byte("jpeg"), 0644)
}

func (g *fakeGrabber) Duration(ctx context.Context, sourcePath string) (float64, error) {
	return g.duration, nil
}

func (g *fakeGrabber) Name() string { return g.name }

// extractContext holds test state for extract scenarios
type extractContext struct {
	tempDir   string
	videoPath string
	outputDir string
	secondDir string
	grabber   *fakeGrabber
	output    *bytes.Buffer
	err       error
}

// SharedExtractContext is reset before each scenario via Before hook
var SharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return SharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "extract-test-*")
		if err != nil {
			return c, err
		}
		SharedExtractContext = &extractContext{
			tempDir:   tempDir,
			outputDir: filepath.Join(tempDir, "frames"),
			secondDir: filepath.Join(tempDir, "frames-fallback"),
			grabber:   &fakeGrabber{name: "opencv", failAt: make(map[int]bool)},
			output:    &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedExtractContext != nil && SharedExtractContext.tempDir != "" {
			os.RemoveAll(SharedExtractContext.tempDir)
		}
		SharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^a video (\d+) seconds long at "([^"]*)"$`, aVideoSecondsLongAt)
	ctx.Step(`^no video exists at "([^"]*)"$`, noVideoExistsAt)
	ctx.Step(`^frames have already been extracted every (\d+) second$`, framesHaveAlreadyBeenExtracted)
	ctx.Step(`^the frame at (\d+) seconds cannot be decoded$`, theFrameAtSecondsCannotBeDecoded)
	ctx.Step(`^I extract frames every (\d+) second$`, iExtractFramesEverySecond)
	ctx.Step(`^I extract frames every (\d+) second from (\d+) to (\d+)$`, iExtractFramesEverySecondFromTo)
	ctx.Step(`^I extract frames every (\d+) second with overwrite$`, iExtractFramesEverySecondWithOverwrite)
	ctx.Step(`^I extract frames every (\d+) second with the "([^"]*)" backend$`, iExtractFramesWithBackend)
	ctx.Step(`^I extract frames into a second directory with the "([^"]*)" backend$`, iExtractFramesIntoSecondDirectory)
	ctx.Step(`^I attempt to extract frames from "([^"]*)"$`, iAttemptToExtractFramesFrom)
	ctx.Step(`^the run should report (\d+) written, (\d+) skipped, (\d+) failed$`, theRunShouldReport)
	ctx.Step(`^the output directory should contain:$`, theOutputDirectoryShouldContain)
	ctx.Step(`^both directories should contain the same frame filenames$`, bothDirectoriesShouldContainTheSameFilenames)
	ctx.Step(`^I should receive an error about a missing source video$`, iShouldReceiveAnErrorAboutMissingSource)
}

func aVideoSecondsLongAt(seconds int, name string) error {
	e := getExtractContext()
	e.videoPath = filepath.Join(e.tempDir, name)
	e.grabber.duration = float64(seconds)
	return os.WriteFile(e.videoPath, []byte("not really a video"), 0644)
}

func noVideoExistsAt(name string) error {
	e := getExtractContext()
	e.videoPath = filepath.Join(e.tempDir, name)
	return nil
}

func theFrameAtSecondsCannotBeDecoded(seconds int) error {
	e := getExtractContext()
	e.grabber.failAt[seconds] = true
	return nil
}

func runExtract(e *extractContext, outputDir string, interval float64, start float64, end *float64, overwrite bool) error {
	input := appvideo.StillsInput{
		SourcePath: e.videoPath,
		OutputDir:  outputDir,
		Interval:   interval,
		Start:      start,
		End:        end,
		Quality:    85,
		Overwrite:  overwrite,
	}
	return cmd.RunExtractWithDependencies(
		context.Background(),
		e.grabber,
		filesystem.NewChecker(),
		zap.NewNop(),
		input,
		e.output,
	)
}

func framesHaveAlreadyBeenExtracted(interval int) error {
	e := getExtractContext()
	discard := &bytes.Buffer{}
	saved := e.output
	e.output = discard
	err := runExtract(e, e.outputDir, float64(interval), 0, nil, false)
	e.output = saved
	return err
}

func iExtractFramesEverySecond(interval int) error {
	e := getExtractContext()
	e.err = runExtract(e, e.outputDir, float64(interval), 0, nil, false)
	return e.err
}

func iExtractFramesEverySecondFromTo(interval, start, end int) error {
	e := getExtractContext()
	endF := float64(end)
	e.err = runExtract(e, e.outputDir, float64(interval), float64(start), &endF, false)
	return e.err
}

func iExtractFramesEverySecondWithOverwrite(interval int) error {
	e := getExtractContext()
	e.err = runExtract(e, e.outputDir, float64(interval), 0, nil, true)
	return e.err
}

func iExtractFramesWithBackend(interval int, backend string) error {
	e := getExtractContext()
	e.grabber.name = backend
	e.err = runExtract(e, e.outputDir, float64(interval), 0, nil, false)
	return e.err
}

func iExtractFramesIntoSecondDirectory(backend string) error {
	e := getExtractContext()
	e.grabber.name = backend
	e.err = runExtract(e, e.secondDir, 1, 0, nil, false)
	return e.err
}

func iAttemptToExtractFramesFrom(name string) error {
	e := getExtractContext()
	e.videoPath = filepath.Join(e.tempDir, name)
	e.err = runExtract(e, e.outputDir, 1, 0, nil, false)
	// Error is asserted in a Then step
	return nil
}

func theRunShouldReport(written, skipped, failed int) error {
	e := getExtractContext()
	if e.err != nil {
		return fmt.Errorf("extraction failed unexpectedly: %w", e.err)
	}
	want := fmt.Sprintf("Extracted %d frames to %s (%d skipped, %d failed)", written, e.outputDir, skipped, failed)
	if !strings.Contains(e.output.String(), want) {
		return fmt.Errorf("output %q does not contain %q", e.output.String(), want)
	}
	return nil
}

func theOutputDirectoryShouldContain(table *godog.Table) error {
	e := getExtractContext()
	for _, row := range table.Rows {
		name := row.Cells[0].Value
		path := filepath.Join(e.outputDir, name)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("expected frame %s: %w", name, err)
		}
	}
	return nil
}

func bothDirectoriesShouldContainTheSameFilenames() error {
	e := getExtractContext()
	first, err := listFilenames(e.outputDir)
	if err != nil {
		return err
	}
	second, err := listFilenames(e.secondDir)
	if err != nil {
		return err
	}
	if len(first) == 0 {
		return fmt.Errorf("no frames were written to %s", e.outputDir)
	}
	if strings.Join(first, ",") != strings.Join(second, ",") {
		return fmt.Errorf("directories differ: %v vs %v", first, second)
	}
	return nil
}

func listFilenames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func iShouldReceiveAnErrorAboutMissingSource() error {
	e := getExtractContext()
	if e.err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	if !strings.Contains(e.err.Error(), "does not exist") {
		return fmt.Errorf("error %q does not mention a missing source", e.err.Error())
	}
	return nil
}
