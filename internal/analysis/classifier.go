package analysis

import (
	"context"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/audiobooksmith/chapterize/internal/providers"
)

// classifySampleChars bounds the document sample sent for validation.
const classifySampleChars = 3000

// Classification is the content suitability verdict for a document.
type Classification struct {
	IsSuitable        bool    `json:"is_suitable"`
	DocumentType      string  `json:"document_type"`
	EstimatedGenre    string  `json:"estimated_genre"`
	Confidence        float64 `json:"confidence"`
	Reason            string  `json:"reason"`
	RejectionCategory string  `json:"rejection_category,omitempty"`
}

// UnsuitableError is returned when a document is rejected for audiobook
// production. UserMessage and Suggestions are written for end users, not
// operators.
type UnsuitableError struct {
	Reason      string
	Category    string
	UserMessage string
	Suggestions []string
}

func (e *UnsuitableError) Error() string {
	return fmt.Sprintf("content not suitable for audiobook production: %s", e.Reason)
}

var classificationSchema = jsonschema.MustCompileString("classification.json", `{
	"type": "object",
	"required": ["is_suitable", "document_type"],
	"properties": {
		"is_suitable": {"type": "boolean"},
		"document_type": {"type": "string"},
		"estimated_genre": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"reason": {"type": "string"},
		"rejection_category": {"type": "string"}
	}
}`)

// rejectionMessages maps rejection categories to end-user explanations.
var rejectionMessages = map[string]string{
	"template": "This appears to be a template document, not a book. Our service is for audiobook production, not template processing.",
	"guide":    "This appears to be a guide or instruction manual, not a book suitable for audiobook narration.",
	"report":   "This appears to be a report or analysis document, not a narrative book.",
	"manual":   "This appears to be a technical or user manual, not a book for audiobook production.",
	"academic": "This appears to be an academic paper or research document, not a narrative book.",
}

const defaultRejectionMessage = "This document is not suitable for audiobook production. We accept narrative books and stories only."

const classifySystemPrompt = "You are a strict content validator. Reject anything that is not a narrative book or story."

const classifyPromptTemplate = `You are a strict content validator for an audiobook production service.

Analyze this document and determine if it is suitable for audiobook production.

Document sample:
%s

STRICT RULES:
ACCEPT ONLY:
- Fiction books (novels, short stories, novellas)
- Non-fiction narrative books (memoirs, biographies, autobiographies)
- Self-help books with narrative structure
- Educational books with narrative flow
- Sample chapters from books

REJECT ALL:
- Business proposals or templates
- Deployment guides, setup instructions, how-to guides
- Technical documentation, API documentation
- Requirements documents and specifications
- Templates of any kind (forms, applications, etc.)
- Academic papers, research papers
- Reports (business, technical, analysis)
- Presentations, slide decks
- Reference materials, glossaries
- Marketing materials, brochures
- Legal documents, contracts
- Configuration files, code documentation
- Instruction manuals, user guides

Return ONLY a JSON object:
{
    "is_suitable": true/false,
    "document_type": "Novel/Memoir/Template/Guide/Report/etc",
    "estimated_genre": "Fiction/Non-fiction/Memoir/etc",
    "confidence": 0.0-1.0,
    "reason": "Brief explanation",
    "rejection_category": "template/guide/report/manual/academic/etc" (if rejected)
}`

// ClassifyContent validates that the document is a narrative book. An
// unsuitable document returns (*Classification, *UnsuitableError). An LLM
// failure fails open: processing a book a human already uploaded beats
// blocking on a flaky validation call.
func (a *Analyzer) ClassifyContent(ctx context.Context, text string) (*Classification, error) {
	sample := truncate(text, classifySampleChars)

	result, err := a.llm.Chat(ctx, &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: classifySystemPrompt},
			{Role: "user", Content: fmt.Sprintf(classifyPromptTemplate, sample)},
		},
		Temperature:  0.1,
		JSONResponse: true,
	})
	if err != nil {
		a.log.Warn("content validation call failed, accepting document", "error", err)
		return &Classification{
			IsSuitable:     true,
			DocumentType:   "Unknown",
			EstimatedGenre: "Unknown",
			Confidence:     0.5,
			Reason:         "validation check failed",
		}, nil
	}

	var c Classification
	if err := decodeValidated(result.Content, classificationSchema, &c); err != nil {
		a.log.Warn("content validation response unparseable, accepting document", "error", err)
		return &Classification{
			IsSuitable:     true,
			DocumentType:   "Unknown",
			EstimatedGenre: "Unknown",
			Confidence:     0.5,
			Reason:         "validation check failed",
		}, nil
	}

	if !c.IsSuitable {
		userMessage, ok := rejectionMessages[c.RejectionCategory]
		if !ok {
			userMessage = defaultRejectionMessage
		}
		a.log.Info("content rejected",
			"document_type", c.DocumentType,
			"category", c.RejectionCategory,
			"reason", c.Reason)
		return &c, &UnsuitableError{
			Reason:      c.Reason,
			Category:    c.RejectionCategory,
			UserMessage: userMessage,
			Suggestions: []string{
				"Upload an actual book, short story, or sample chapter",
				"Not suitable: templates, forms, proposals, guides",
				"Suitable: novels, memoirs, biographies, self-help books",
			},
		}
	}

	a.log.Info("content validated",
		"document_type", c.DocumentType,
		"genre", c.EstimatedGenre,
		"confidence", c.Confidence)
	return &c, nil
}
