package filesystem

import (
	"os"

	"video-stills/domain/video"
)

// Checker implements video.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory and any parents if needed
func (c *Checker) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Ensure Checker implements video.FileChecker
var _ video.FileChecker = (*Checker)(nil)
