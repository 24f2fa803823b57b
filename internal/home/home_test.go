package home

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-chapterize")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-chapterize" {
			t.Errorf("expected path /tmp/test-chapterize, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(dir.Path(), DefaultDirName) {
			t.Errorf("expected path ending in %s, got %s", DefaultDirName, dir.Path())
		}
	})
}

func TestPaths(t *testing.T) {
	dir, err := New("/tmp/ch")
	if err != nil {
		t.Fatal(err)
	}

	if dir.InboxPath() != "/tmp/ch/inbox" {
		t.Errorf("inbox path = %s", dir.InboxPath())
	}
	if dir.OutputPath() != "/tmp/ch/output" {
		t.Errorf("output path = %s", dir.OutputPath())
	}
	if dir.RunOutputPath("my-book") != "/tmp/ch/output/my-book" {
		t.Errorf("run output path = %s", dir.RunOutputPath("my-book"))
	}
	if dir.ConfigPath() != "/tmp/ch/config.yaml" {
		t.Errorf("config path = %s", dir.ConfigPath())
	}
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "home")
	dir, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	if dir.Exists() {
		t.Error("Exists() = true before creation")
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}
	if !dir.Exists() {
		t.Error("Exists() = false after creation")
	}

	for _, sub := range []string{dir.InboxPath(), dir.OutputPath()} {
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			t.Errorf("missing subdirectory %s", sub)
		}
	}

	if dir.ConfigExists() {
		t.Error("ConfigExists() = true with no config file")
	}
	if err := os.WriteFile(dir.ConfigPath(), []byte("llm: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !dir.ConfigExists() {
		t.Error("ConfigExists() = false after writing config")
	}
}
