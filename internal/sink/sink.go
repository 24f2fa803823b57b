// Package sink writes split chapters to their final destination.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputSink receives finished chapters in order.
type OutputSink interface {
	WriteChapter(number, title, content string) error
}

// unsafeChars matches everything stripped from chapter titles before they
// become filenames.
var unsafeChars = regexp.MustCompile(`[^\w\s-]`)

var spaceRuns = regexp.MustCompile(`\s+`)

// SafeFilename converts a chapter number and title into a filesystem-safe
// name of the form NN_Title_Words.txt.
func SafeFilename(number, title string) string {
	safe := unsafeChars.ReplaceAllString(title, "")
	safe = spaceRuns.ReplaceAllString(strings.TrimSpace(safe), "_")
	if safe == "" {
		safe = "Untitled"
	}
	return fmt.Sprintf("%s_%s.txt", number, safe)
}

// DirSink writes each chapter as a text file under a single directory and
// records a manifest describing the run.
type DirSink struct {
	dir     string
	entries []ManifestEntry
}

// ManifestEntry describes one written chapter file.
type ManifestEntry struct {
	Number   string `yaml:"number"`
	Title    string `yaml:"title"`
	Filename string `yaml:"filename"`
	Words    int    `yaml:"words"`
}

// Manifest is the document written alongside the chapter files.
type Manifest struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	Title       string          `yaml:"title,omitempty"`
	Author      string          `yaml:"author,omitempty"`
	Language    string          `yaml:"language,omitempty"`
	Chapters    []ManifestEntry `yaml:"chapters"`
}

// NewDirSink creates the output directory if needed and returns a sink
// writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Dir returns the directory this sink writes into.
func (s *DirSink) Dir() string {
	return s.dir
}

// WriteChapter writes one chapter file and records it for the manifest.
func (s *DirSink) WriteChapter(number, title, content string) error {
	name := SafeFilename(number, title)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write chapter %s: %w", number, err)
	}
	s.entries = append(s.entries, ManifestEntry{
		Number:   number,
		Title:    title,
		Filename: name,
		Words:    len(strings.Fields(content)),
	})
	return nil
}

// Entries returns the chapters written so far, in write order.
func (s *DirSink) Entries() []ManifestEntry {
	return s.entries
}

// WriteManifest writes manifest.yaml next to the chapter files. The passed
// manifest's Chapters field is filled from the chapters written so far.
func (s *DirSink) WriteManifest(m Manifest) error {
	m.Chapters = s.entries
	if m.GeneratedAt.IsZero() {
		m.GeneratedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(s.dir, "manifest.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

var _ OutputSink = (*DirSink)(nil)
