// Package extract turns source book files into plain text for chapter
// splitting. Formats register themselves at init; callers go through
// FromFile and get back a Document regardless of the source format.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors callers branch on. Wrapped errors carry file context;
// test with errors.Is.
var (
	// ErrUnsupported means no registered format handles the file.
	ErrUnsupported = errors.New("unsupported file format")

	// ErrEncrypted means the source file is password protected.
	ErrEncrypted = errors.New("file is encrypted")

	// ErrImageOnly means the PDF has no text layer (scanned images).
	ErrImageOnly = errors.New("pdf contains no extractable text layer")

	// ErrNoText means extraction succeeded but produced no usable text.
	ErrNoText = errors.New("no text content found")
)

// Document is the extraction result handed to the splitting pipeline.
type Document struct {
	// Text is the full extracted plain text.
	Text string

	// Format is the registered format name ("pdf", "epub", "text").
	Format string

	// PageCount is the source page count, 0 when the format has no pages.
	PageCount int
}

// Format extracts text from one source file type.
type Format interface {
	// Name identifies the format in logs and reports.
	Name() string

	// Extensions lists the file extensions this format handles,
	// lowercase with leading dot.
	Extensions() []string

	// Extract reads the file and produces its text.
	Extract(ctx context.Context, path string) (*Document, error)
}

var formats []Format

// Register adds a format to the dispatch table. Called from init.
func Register(f Format) {
	formats = append(formats, f)
}

// ForPath returns the format registered for the file's extension.
func ForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		for _, e := range f.Extensions() {
			if e == ext {
				return f, true
			}
		}
	}
	return nil, false
}

// Supported reports whether any registered format handles the file.
func Supported(path string) bool {
	_, ok := ForPath(path)
	return ok
}

// FromFile extracts text from path using the format registered for its
// extension.
func FromFile(ctx context.Context, path string) (*Document, error) {
	f, ok := ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
	return f.Extract(ctx, path)
}
