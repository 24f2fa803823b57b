package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/audiobooksmith/chapterize/internal/config"
	"github.com/audiobooksmith/chapterize/internal/home"
	"github.com/audiobooksmith/chapterize/internal/pipeline"
	"github.com/audiobooksmith/chapterize/internal/providers"
	"github.com/audiobooksmith/chapterize/version"
)

var (
	cfgFile   string
	homeDir   string
	logLevel  string
	logFormat string

	cfgManager *config.Manager
	appHome    *home.Dir
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chapterize",
	Short: "Split books into audiobook-ready chapters",
	Long: `Chapterize turns a book file (PDF, EPUB, or plain text) into per-chapter
text files ready for audiobook narration.

The pipeline includes:
  - Text extraction from PDF, EPUB, and plain text
  - Table of contents parsing with concatenated-title repair
  - Chapter boundary detection with fuzzy fallbacks
  - Content suitability checks and book metadata via LLM
  - Narrator voice recommendations from the ElevenLabs catalog`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.chapterize/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "chapterize home directory (default: ~/.chapterize)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFormat, "log-format", "", "log format: text or json",
	)

	rootCmd.PersistentPreRunE = setup

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(voicesCmd)
}

// setup wires the home directory, config, and logger before any command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	appHome, err = home.New(homeDir)
	if err != nil {
		return err
	}

	path := cfgFile
	if path == "" && appHome.ConfigExists() {
		path = appHome.ConfigPath()
	}
	cfgManager, err = config.NewManager(path)
	if err != nil {
		return err
	}
	cfg := cfgManager.Get()

	logger = newLogger(cfg.Logging)
	slog.SetDefault(logger)
	return nil
}

func newLogger(cfg config.LoggingCfg) *slog.Logger {
	level := slog.LevelInfo
	if logLevel != "" {
		cfg.Level = logLevel
	}
	if logFormat != "" {
		cfg.Format = logFormat
	}
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// llmClient builds the configured chat client. The API key is required.
func llmClient() (providers.LLMClient, error) {
	cfg := cfgManager.Get().LLM
	key := cfg.ResolvedAPIKey()
	if key == "" {
		return nil, fmt.Errorf("no LLM API key configured (set llm.api_key or OPENAI_API_KEY)")
	}
	return providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:     key,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		RateLimit:  cfg.RateLimit,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	}), nil
}

// voiceProvider builds the ElevenLabs client, or nil when no key is set.
func voiceProvider() providers.VoiceProvider {
	cfg := cfgManager.Get().ElevenLabs
	key := cfg.ResolvedAPIKey()
	if key == "" {
		return nil
	}
	return providers.NewElevenLabsClient(providers.ElevenLabsConfig{
		APIKey:  key,
		BaseURL: cfg.BaseURL,
	})
}

// services assembles the pipeline dependencies from config.
func services() (pipeline.Services, error) {
	llm, err := llmClient()
	if err != nil {
		return pipeline.Services{}, err
	}
	return pipeline.Services{
		LLM:    llm,
		Voices: voiceProvider(),
		Logger: logger,
	}, nil
}
