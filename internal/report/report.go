// Package report renders an HTML production report summarizing a run.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/audiobooksmith/chapterize/internal/analysis"
	"github.com/audiobooksmith/chapterize/internal/splitter"
)

//go:embed report.tmpl
var reportTmpl string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
	"score":   func(f float64) string { return fmt.Sprintf("%.2f", f) },
}).Parse(reportTmpl))

// ChapterSummary is one chapter row in the report.
type ChapterSummary struct {
	Number     string
	Title      string
	Words      int
	Confidence float64
	Strategy   string
	LowConf    bool
}

// Data holds everything the report template renders.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	InputFile   string
	Metadata    analysis.BookMetadata
	Language    analysis.Language
	Accuracy    float64
	UsedToc     bool
	Chapters    []ChapterSummary
	Unmatched   []string
	Voices      []analysis.VoiceRecommendation
	Warnings    []string
}

// Build assembles report data from a split result.
func Build(runID, inputFile string, res *splitter.Result, meta analysis.BookMetadata, lang analysis.Language, voices []analysis.VoiceRecommendation) Data {
	d := Data{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		InputFile:   inputFile,
		Metadata:    meta,
		Language:    lang,
		Accuracy:    res.Accuracy(),
		UsedToc:     res.TocFound,
		Voices:      voices,
	}

	for _, ch := range res.Chapters {
		d.Chapters = append(d.Chapters, summarize(ch, false))
	}
	for _, ch := range res.LowConfidence {
		d.Chapters = append(d.Chapters, summarize(ch, true))
	}
	for _, entry := range res.Unmatched {
		d.Unmatched = append(d.Unmatched, entry.Display())
	}

	if !res.TocFound {
		d.Warnings = append(d.Warnings, "No table of contents found; chapters were detected from body headings.")
	}
	if res.UsedFallback {
		d.Warnings = append(d.Warnings, "Chapter boundaries came from pattern scanning rather than the table of contents.")
	}
	if res.UsedUserTitles {
		d.Warnings = append(d.Warnings, "Chapter titles were supplied by the user.")
	}
	if len(res.LowConfidence) > 0 {
		d.Warnings = append(d.Warnings, fmt.Sprintf("%d chapter(s) scored below the confidence threshold and need review.", len(res.LowConfidence)))
	}

	return d
}

func summarize(ch splitter.Chapter, low bool) ChapterSummary {
	return ChapterSummary{
		Number:     ch.Number,
		Title:      ch.Title,
		Words:      ch.WordCount,
		Confidence: ch.Confidence,
		Strategy:   string(ch.SourceStrategy),
		LowConf:    low,
	}
}

// Render writes the HTML report to w.
func Render(w io.Writer, d Data) error {
	if err := reportTemplate.Execute(w, d); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the report to a file at path.
func WriteFile(path string, d Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Render(f, d); err != nil {
		return err
	}
	return f.Close()
}
