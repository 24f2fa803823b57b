package analysis

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/audiobooksmith/chapterize/internal/providers"
)

// metadataSampleChars bounds the excerpt sent for metadata extraction.
const metadataSampleChars = 5000

// BookMetadata is the extracted book-level metadata.
type BookMetadata struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Genre           string   `json:"genre"`
	Themes          []string `json:"themes"`
	NarrativeTone   string   `json:"narrative_tone"`
	TargetAudience  string   `json:"target_audience"`
	ContentWarnings []string `json:"content_warnings"`
	AgeRating       string   `json:"estimated_age_rating"`
}

var metadataSchema = jsonschema.MustCompileString("metadata.json", `{
	"type": "object",
	"required": ["title", "author", "genre"],
	"properties": {
		"title": {"type": "string"},
		"author": {"type": "string"},
		"genre": {"type": "string"},
		"themes": {"type": "array", "items": {"type": "string"}},
		"narrative_tone": {"type": "string"},
		"target_audience": {"type": "string"},
		"content_warnings": {"type": "array", "items": {"type": "string"}},
		"estimated_age_rating": {"type": "string"}
	}
}`)

const metadataSystemPrompt = "You are a literary analyst. Extract metadata from book text."

const metadataPromptTemplate = `Analyze this book excerpt and extract key metadata.

Book excerpt:
%s

Extract and return ONLY a JSON object with:
{
    "title": "The actual book title (if found in text)",
    "author": "The author's name (if found in text)",
    "genre": "Specific genre (e.g., Memoir, Thriller, Romance, Self-Help)",
    "themes": ["theme1", "theme2", "theme3"],
    "narrative_tone": "Description of narrative voice and tone",
    "target_audience": "Who this book is for",
    "content_warnings": ["any sensitive content"],
    "estimated_age_rating": "General/Teen/Adult"
}

If title or author not found in text, use "Unknown".`

// defaultMetadata is returned when extraction fails.
func defaultMetadata() *BookMetadata {
	return &BookMetadata{
		Title:          "Unknown",
		Author:         "Unknown",
		Genre:          "Unknown",
		NarrativeTone:  "Unknown",
		TargetAudience: "General",
		AgeRating:      "General",
	}
}

// ExtractMetadata pulls title, author, genre, and narration-relevant
// attributes from the book's opening text. Failures return conservative
// defaults: metadata enriches the report but never blocks a run.
func (a *Analyzer) ExtractMetadata(ctx context.Context, text string) (*BookMetadata, error) {
	sample := truncate(text, metadataSampleChars)

	result, err := a.llm.Chat(ctx, &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: metadataSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(metadataPromptTemplate, sample)},
		},
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		a.log.Warn("metadata extraction call failed", "error", err)
		return defaultMetadata(), nil
	}

	var meta BookMetadata
	if err := decodeValidated(result.Content, metadataSchema, &meta); err != nil {
		a.log.Warn("metadata response unparseable", "error", err)
		return defaultMetadata(), nil
	}

	a.log.Info("metadata extracted", "title", meta.Title, "author", meta.Author, "genre", meta.Genre)
	return &meta, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
