package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/audiobooksmith/chapterize/internal/analysis"
	"github.com/audiobooksmith/chapterize/internal/extract"
	"github.com/audiobooksmith/chapterize/internal/providers"
)

const (
	suitableResponse = `{"is_suitable": true, "document_type": "fiction_book", "confidence": 0.95, "reason": "narrative fiction"}`
	metadataResponse = `{"title": "The Long Winter", "author": "A. Writer", "genre": "Fiction"}`
	profileResponse  = `{"gender": "female", "age_range": "30-50", "accent": "neutral", "tone": "warm"}`
	matchResponse    = `{"recommendations": [{"voice_id": "v1", "match_score": 92, "match_reason": "warm and measured"}]}`
)

// testBook mirrors a small extracted book: front matter, a TOC with
// concatenated titles, and body headings.
func testBook() string {
	prose := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 60)
	return strings.Join([]string{
		"The Long Winter",
		"by A. Writer",
		"",
		"Contents",
		"",
		"Prologue",
		"1 OnceUponaTime 3",
		"Epilogue",
		"",
		"Prologue",
		"",
		prose,
		"",
		"1",
		"Once Upon a Time",
		"",
		prose,
		"",
		"Epilogue",
		"",
		prose,
	}, "\n")
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte(testBook()), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	svc := Services{
		LLM: providers.NewMockClient(suitableResponse, metadataResponse, profileResponse, matchResponse),
		Voices: &providers.MockVoiceProvider{Voices: []providers.Voice{
			{VoiceID: "v1", Name: "Clara", Description: "warm narrator"},
		}},
	}

	res, err := Run(context.Background(), svc, Request{
		InputPath: writeInput(t),
		OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(res.Split.Chapters) != 3 {
		t.Fatalf("got %d chapters, want 3", len(res.Split.Chapters))
	}
	if res.Metadata.Title != "The Long Winter" || res.Metadata.Author != "A. Writer" {
		t.Errorf("metadata = %+v", res.Metadata)
	}
	if res.Language.Code != "en" {
		t.Errorf("language = %q, want en", res.Language.Code)
	}
	if len(res.Voices) != 1 || res.Voices[0].Voice.Name != "Clara" {
		t.Errorf("voices = %+v", res.Voices)
	}
	if res.Usage.Requests != 4 {
		t.Errorf("LLM requests = %d, want 4", res.Usage.Requests)
	}
	if res.Usage.TotalTokens == 0 {
		t.Error("no token usage recorded")
	}

	for _, name := range []string{"00_Prologue.txt", "01_1_Once_Upon_a_Time.txt", "900_Epilogue.txt", "manifest.yaml", "report.html"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	html, err := os.ReadFile(res.ReportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(html), "The Long Winter") {
		t.Error("report does not mention the book title")
	}
}

func TestRunRejectsUnsuitableContent(t *testing.T) {
	rejection := `{"is_suitable": false, "document_type": "template", "confidence": 0.9, "reason": "fill-in form", "rejection_category": "template"}`
	svc := Services{LLM: providers.NewMockClient(rejection)}

	_, err := Run(context.Background(), svc, Request{
		InputPath: writeInput(t),
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})

	var unsuitable *analysis.UnsuitableError
	if !errors.As(err, &unsuitable) {
		t.Fatalf("Run error = %v, want UnsuitableError", err)
	}
	if unsuitable.Category != "template" {
		t.Errorf("category = %q, want template", unsuitable.Category)
	}
	if unsuitable.UserMessage == "" {
		t.Error("rejection has no user message")
	}
}

func TestRunSkipValidation(t *testing.T) {
	llm := providers.NewMockClient(metadataResponse)
	svc := Services{LLM: llm}

	res, err := Run(context.Background(), svc, Request{
		InputPath:      writeInput(t),
		OutputDir:      filepath.Join(t.TempDir(), "out"),
		SkipValidation: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Metadata.Title != "The Long Winter" {
		t.Errorf("metadata title = %q", res.Metadata.Title)
	}
	if got := llm.RequestCount(); got != 1 {
		t.Errorf("LLM requests = %d, want 1 (metadata only)", got)
	}
}

func TestRunVoiceFailureIsNonFatal(t *testing.T) {
	svc := Services{
		LLM:    providers.NewMockClient(suitableResponse, metadataResponse),
		Voices: &providers.MockVoiceProvider{ShouldFail: true},
	}

	res, err := Run(context.Background(), svc, Request{
		InputPath: writeInput(t),
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Voices) != 0 {
		t.Errorf("voices = %+v, want none", res.Voices)
	}
}

func TestRunUnsupportedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.docx")
	if err := os.WriteFile(path, []byte("not really a docx"), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	svc := Services{LLM: providers.NewMockClient()}

	_, err := Run(context.Background(), svc, Request{
		InputPath: path,
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	if !errors.Is(err, extract.ErrUnsupported) {
		t.Errorf("Run error = %v, want ErrUnsupported", err)
	}
}

func TestRunRequiresLLM(t *testing.T) {
	_, err := Run(context.Background(), Services{}, Request{InputPath: "x.txt"})
	if err == nil {
		t.Fatal("Run succeeded without an LLM client")
	}
}
