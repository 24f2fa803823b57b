package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TextFormat passes plain text files through unchanged.
type TextFormat struct{}

func init() {
	Register(&TextFormat{})
}

func (f *TextFormat) Name() string         { return "text" }
func (f *TextFormat) Extensions() []string { return []string{".txt", ".text", ".md"} }

func (f *TextFormat) Extract(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoText, path)
	}
	return &Document{Text: text, Format: f.Name()}, nil
}
