package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path   string
		format string
		ok     bool
	}{
		{"book.pdf", "pdf", true},
		{"Book.PDF", "pdf", true},
		{"book.epub", "epub", true},
		{"book.txt", "text", true},
		{"book.md", "text", true},
		{"book.docx", "", false},
		{"book", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, ok := ForPath(tt.path)
			if ok != tt.ok {
				t.Fatalf("ForPath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && f.Name() != tt.format {
				t.Errorf("format = %q, want %q", f.Name(), tt.format)
			}
		})
	}
}

func TestFromFileUnsupported(t *testing.T) {
	_, err := FromFile(context.Background(), "book.docx")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestTextFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	content := "Contents\n1 OnceUponaTime 3\n\nthe story begins here.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := FromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if doc.Text != content {
		t.Errorf("text = %q, want %q", doc.Text, content)
	}
	if doc.Format != "text" {
		t.Errorf("format = %q, want %q", doc.Format, "text")
	}
	if doc.PageCount != 0 {
		t.Errorf("page count = %d, want 0", doc.PageCount)
	}
}

func TestTextFormatEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n\t\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := FromFile(context.Background(), path)
	if !errors.Is(err, ErrNoText) {
		t.Errorf("err = %v, want ErrNoText", err)
	}
}

func TestTextFormatCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromFile(ctx, "book.txt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestHTMLToText(t *testing.T) {
	in := `<html><body>
		<h1>Contents</h1>
		<p>1 OnceUponaTime 3</p>
		<p>It was a <em>bright</em> morning.</p>
	</body></html>`

	got := htmlToText(in)
	for _, want := range []string{"Contents", "1 OnceUponaTime 3", "It was a bright morning."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// Headings and paragraphs stay on separate lines.
	if !strings.Contains(got, "Contents \n") {
		t.Errorf("heading not line-separated:\n%q", got)
	}
}

func TestIsEncryptedErr(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{errors.New("pdfcpu: this file is encrypted"), true},
		{errors.New("missing user password"), true},
		{errors.New("malformed xref table"), false},
	}
	for _, tt := range tests {
		if got := isEncryptedErr(tt.err); got != tt.expected {
			t.Errorf("isEncryptedErr(%v) = %v, want %v", tt.err, got, tt.expected)
		}
	}
}
