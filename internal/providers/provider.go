// Package providers holds the external service clients: the LLM used for
// content analysis and the voice catalog service. Interfaces are small so
// the pipeline can be tested against mocks.
package providers

import (
	"context"
	"time"
)

// LLMClient is the interface for chat completion requests.
type LLMClient interface {
	// Chat sends a chat completion request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// Name returns the client identifier (e.g., "openai").
	Name() string
}

// VoiceProvider lists narration voices available for recommendation.
type VoiceProvider interface {
	// ListVoices retrieves the available voices.
	ListVoices(ctx context.Context) ([]Voice, error)

	// Name returns the provider identifier (e.g., "elevenlabs").
	Name() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatRequest is a request to an LLM.
type ChatRequest struct {
	Messages []Message `json:"messages"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Generation parameters
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// JSONResponse constrains the model to emit a JSON object.
	JSONResponse bool `json:"-"`
}

// ChatResult is the response from an LLM call.
type ChatResult struct {
	Content string `json:"content"`

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Timing and provenance
	ExecutionTime time.Duration `json:"execution_time"`
	ModelUsed     string        `json:"model_used"`
	Attempts      int           `json:"attempts"`
}

// Voice describes one narration voice from a voice provider.
type Voice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Label returns a voice label value, empty when absent.
func (v Voice) Label(key string) string {
	return v.Labels[key]
}
