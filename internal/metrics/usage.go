// Package metrics provides token usage tracking for LLM operations.
package metrics

import (
	"context"
	"sync"

	"github.com/audiobooksmith/chapterize/internal/providers"
)

// Usage aggregates token counts across LLM calls.
type Usage struct {
	Requests         int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Recorder accumulates usage, overall and per model.
type Recorder struct {
	mu      sync.Mutex
	total   Usage
	byModel map[string]Usage
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{byModel: make(map[string]Usage)}
}

// Record adds one call's token counts.
func (r *Recorder) Record(model string, prompt, completion int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total.Requests++
	r.total.PromptTokens += prompt
	r.total.CompletionTokens += completion
	r.total.TotalTokens += prompt + completion

	u := r.byModel[model]
	u.Requests++
	u.PromptTokens += prompt
	u.CompletionTokens += completion
	u.TotalTokens += prompt + completion
	r.byModel[model] = u
}

// Total returns the accumulated usage across all models.
func (r *Recorder) Total() Usage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// ByModel returns a copy of per-model usage.
func (r *Recorder) ByModel() map[string]Usage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Usage, len(r.byModel))
	for model, u := range r.byModel {
		out[model] = u
	}
	return out
}

// MeteredClient wraps an LLMClient and records token usage for every call.
type MeteredClient struct {
	inner    providers.LLMClient
	recorder *Recorder
}

// Meter wraps client so its usage lands in recorder.
func Meter(client providers.LLMClient, recorder *Recorder) *MeteredClient {
	return &MeteredClient{inner: client, recorder: recorder}
}

// Name returns the wrapped client's identifier.
func (m *MeteredClient) Name() string {
	return m.inner.Name()
}

// Chat delegates to the wrapped client and records the result's usage.
// Failed calls record nothing.
func (m *MeteredClient) Chat(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResult, error) {
	res, err := m.inner.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	m.recorder.Record(res.ModelUsed, res.PromptTokens, res.CompletionTokens)
	return res, nil
}

var _ providers.LLMClient = (*MeteredClient)(nil)
