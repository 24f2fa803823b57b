package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the chapterize home directory.
	DefaultDirName = ".chapterize"

	// InboxDirName is the subdirectory the watch command monitors.
	InboxDirName = "inbox"

	// OutputDirName is the subdirectory receiving run output.
	OutputDirName = "output"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the chapterize home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.chapterize).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// InboxPath returns the path to the inbox directory.
func (d *Dir) InboxPath() string {
	return filepath.Join(d.path, InboxDirName)
}

// OutputPath returns the path to the output directory.
func (d *Dir) OutputPath() string {
	return filepath.Join(d.path, OutputDirName)
}

// RunOutputPath returns the output directory for a single run.
func (d *Dir) RunOutputPath(runName string) string {
	return filepath.Join(d.OutputPath(), runName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.InboxPath(), d.OutputPath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
