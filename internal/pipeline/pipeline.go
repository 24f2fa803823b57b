// Package pipeline runs a document through the full production flow:
// extraction, content checks, chapter splitting, metadata, narrator
// matching, and output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/audiobooksmith/chapterize/internal/analysis"
	"github.com/audiobooksmith/chapterize/internal/extract"
	"github.com/audiobooksmith/chapterize/internal/metrics"
	"github.com/audiobooksmith/chapterize/internal/providers"
	"github.com/audiobooksmith/chapterize/internal/report"
	"github.com/audiobooksmith/chapterize/internal/sink"
	"github.com/audiobooksmith/chapterize/internal/splitter"
)

// Services holds the external dependencies a pipeline run needs. LLM is
// required; Voices may be nil to skip narrator matching.
type Services struct {
	LLM    providers.LLMClient
	Voices providers.VoiceProvider
	Logger *slog.Logger
}

// Request describes one document to process.
type Request struct {
	// InputPath is the source document (pdf, epub, or plain text).
	InputPath string

	// OutputDir receives chapter files, manifest.yaml, and report.html.
	OutputDir string

	// UserTitles optionally overrides automatic chapter detection.
	UserTitles []string

	// SkipValidation bypasses the content suitability check.
	SkipValidation bool

	// SkipVoices bypasses narrator matching even when a voice provider
	// is configured.
	SkipVoices bool

	// VoiceCount is how many narrator recommendations to produce.
	// Zero means the default.
	VoiceCount int

	// Split overrides individual splitter options; zero values keep
	// defaults.
	Split splitter.Options
}

// RunResult summarizes a completed pipeline run.
type RunResult struct {
	RunID      string
	Split      splitter.Result
	Metadata   analysis.BookMetadata
	Language   analysis.Language
	Voices     []analysis.VoiceRecommendation
	OutputDir  string
	ReportPath string
	Duration   time.Duration
	Usage      metrics.Usage
}

// Run processes one document end to end. A content-unsuitability
// rejection is returned as *analysis.UnsuitableError so callers can show
// the user-facing message.
func Run(ctx context.Context, svc Services, req Request) (*RunResult, error) {
	start := time.Now()
	log := svc.Logger
	if log == nil {
		log = slog.Default()
	}
	if svc.LLM == nil {
		return nil, errors.New("pipeline requires an LLM client")
	}

	runID := uuid.New().String()
	log = log.With("run_id", runID, "input", req.InputPath)

	doc, err := extract.FromFile(ctx, req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	log.Info("text extracted", "format", doc.Format, "pages", doc.PageCount, "chars", len(doc.Text))

	lang := analysis.DetectLanguage(doc.Text)
	log.Info("language detected", "code", lang.Code, "name", lang.Name)

	usage := metrics.NewRecorder()
	analyzer := analysis.NewAnalyzer(metrics.Meter(svc.LLM, usage), log)

	if !req.SkipValidation {
		if _, err := analyzer.ClassifyContent(ctx, doc.Text); err != nil {
			var unsuitable *analysis.UnsuitableError
			if errors.As(err, &unsuitable) {
				log.Warn("content rejected", "category", unsuitable.Category, "reason", unsuitable.Reason)
				return nil, err
			}
			return nil, fmt.Errorf("content check failed: %w", err)
		}
	}

	opts := req.Split
	opts.UserTitles = req.UserTitles
	opts.Logger = log
	res := splitter.Run(doc.Text, opts)
	log.Info("chapters split",
		"chapters", len(res.Chapters),
		"low_confidence", len(res.LowConfidence),
		"unmatched", len(res.Unmatched),
		"toc_found", res.TocFound,
		"used_fallback", res.UsedFallback)

	meta, err := analyzer.ExtractMetadata(ctx, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("metadata extraction failed: %w", err)
	}

	var recs []analysis.VoiceRecommendation
	if svc.Voices != nil && !req.SkipVoices {
		recs, err = recommendVoices(ctx, svc, analyzer, meta, res, req.VoiceCount, log)
		if err != nil {
			// Narrator matching is advisory. The run still produces
			// chapters without it.
			log.Warn("narrator matching failed", "error", err)
		}
	}

	out, err := sink.NewDirSink(req.OutputDir)
	if err != nil {
		return nil, err
	}
	for _, ch := range append(res.Chapters, res.LowConfidence...) {
		if err := out.WriteChapter(ch.Number, ch.Title, ch.Content); err != nil {
			return nil, err
		}
	}
	if err := out.WriteManifest(sink.Manifest{
		Title:    meta.Title,
		Author:   meta.Author,
		Language: lang.Code,
	}); err != nil {
		return nil, err
	}

	reportPath := filepath.Join(req.OutputDir, "report.html")
	data := report.Build(runID, filepath.Base(req.InputPath), &res, *meta, lang, recs)
	if err := report.WriteFile(reportPath, data); err != nil {
		return nil, err
	}

	log.Info("run complete",
		"output", req.OutputDir,
		"duration", time.Since(start),
		"llm_requests", usage.Total().Requests,
		"llm_tokens", usage.Total().TotalTokens)
	return &RunResult{
		RunID:      runID,
		Split:      res,
		Metadata:   *meta,
		Language:   lang,
		Voices:     recs,
		OutputDir:  req.OutputDir,
		ReportPath: reportPath,
		Duration:   time.Since(start),
		Usage:      usage.Total(),
	}, nil
}

func recommendVoices(ctx context.Context, svc Services, analyzer *analysis.Analyzer, meta *analysis.BookMetadata, res splitter.Result, count int, log *slog.Logger) ([]analysis.VoiceRecommendation, error) {
	catalog, err := svc.Voices.ListVoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}
	if len(catalog) == 0 {
		return nil, errors.New("voice catalog is empty")
	}

	excerpt := ""
	if len(res.Chapters) > 0 {
		excerpt = res.Chapters[0].Content
	} else if len(res.LowConfidence) > 0 {
		excerpt = res.LowConfidence[0].Content
	}

	profile, err := analyzer.IdealVoiceProfile(ctx, meta, excerpt)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = analysis.DefaultVoiceRecommendations
	}
	recs, err := analyzer.MatchVoices(ctx, profile, catalog, count)
	if err != nil {
		return nil, err
	}
	log.Info("narrators matched", "catalog", len(catalog), "recommendations", len(recs))
	return recs, nil
}
