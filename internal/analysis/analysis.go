// Package analysis covers the LLM-backed steps of audiobook preparation:
// content suitability validation, book metadata extraction, and narrator
// voice recommendation, plus deterministic language detection.
package analysis

import (
	"log/slog"

	"github.com/audiobooksmith/chapterize/internal/providers"
)

// Analyzer runs LLM-backed book analysis. All methods degrade gracefully:
// an LLM failure yields conservative defaults rather than aborting a run,
// except for suitability rejection which is a deliberate hard stop.
type Analyzer struct {
	llm providers.LLMClient
	log *slog.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(llm providers.LLMClient, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{llm: llm, log: logger}
}
