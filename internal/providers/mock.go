package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing. Responses are served in order;
// the last one repeats once the queue is exhausted.
type MockClient struct {
	// Configurable behavior
	Responses  []string
	ShouldFail bool
	FailAfter  int // Fail after N requests (0 = never)

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with a single canned response.
func NewMockClient(responses ...string) *MockClient {
	if len(responses) == 0 {
		responses = []string{"mock response"}
	}
	return &MockClient{Responses: responses}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Chat serves the next scripted response.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.ShouldFail {
		return nil, fmt.Errorf("mock client configured to fail")
	}
	if c.FailAfter > 0 && int(count) > c.FailAfter {
		return nil, fmt.Errorf("mock client failed after %d requests", c.FailAfter)
	}

	idx := int(count) - 1
	if idx >= len(c.Responses) {
		idx = len(c.Responses) - 1
	}
	content := c.Responses[idx]

	promptTokens := 0
	for _, m := range req.Messages {
		promptTokens += len(m.Content) / 4
	}
	completionTokens := len(content) / 4

	return &ChatResult{
		Content:          content,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		ExecutionTime:    time.Since(start),
		ModelUsed:        req.Model,
		Attempts:         1,
	}, nil
}

// RequestCount returns the number of requests made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)

// MockVoiceProvider is a VoiceProvider for testing.
type MockVoiceProvider struct {
	Voices     []Voice
	ShouldFail bool
}

// Name returns the provider identifier.
func (p *MockVoiceProvider) Name() string {
	return "mock-voices"
}

// ListVoices returns the configured voice list.
func (p *MockVoiceProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.ShouldFail {
		return nil, fmt.Errorf("mock voice provider configured to fail")
	}
	return p.Voices, nil
}

// Verify interface
var _ VoiceProvider = (*MockVoiceProvider)(nil)
