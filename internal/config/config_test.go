package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected openai API key placeholder")
	}
	if cfg.LLM.Model == "" {
		t.Error("expected a default model")
	}
	if cfg.Split.MinChapterWords != 500 {
		t.Errorf("min_chapter_words = %d, want 500", cfg.Split.MinChapterWords)
	}
	if cfg.Split.AcceptThreshold != 0.75 {
		t.Errorf("accept_threshold = %v, want 0.75", cfg.Split.AcceptThreshold)
	}
	if cfg.ElevenLabs.VoiceCount != 5 {
		t.Errorf("voice_count = %d, want 5", cfg.ElevenLabs.VoiceCount)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestResolvedAPIKey(t *testing.T) {
	os.Setenv("TEST_LLM_KEY", "sk-123")
	defer os.Unsetenv("TEST_LLM_KEY")

	llm := LLMCfg{APIKey: "${TEST_LLM_KEY}"}
	if got := llm.ResolvedAPIKey(); got != "sk-123" {
		t.Errorf("expected sk-123, got %s", got)
	}

	el := ElevenLabsCfg{APIKey: "direct-key"}
	if got := el.ResolvedAPIKey(); got != "direct-key" {
		t.Errorf("expected direct-key, got %s", got)
	}
}

func TestNewManagerLoadsFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `llm:
  model: gpt-4o-mini
  rate_limit: 1.5
split:
  min_chapter_words: 200
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := cm.Get()
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.RateLimit != 1.5 {
		t.Errorf("rate_limit = %v", cfg.LLM.RateLimit)
	}
	if cfg.Split.MinChapterWords != 200 {
		t.Errorf("min_chapter_words = %d", cfg.Split.MinChapterWords)
	}
	// Untouched keys keep their defaults.
	if cfg.Split.AcceptThreshold != 0.75 {
		t.Errorf("accept_threshold = %v, want default 0.75", cfg.Split.AcceptThreshold)
	}
}

func TestNewManagerWithoutFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cm, err := NewManager("")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if cm.Get().LLM.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o default", cm.Get().LLM.Model)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".chapterize", "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("config file is empty")
	}

	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault overwrote an existing file")
	}
}
