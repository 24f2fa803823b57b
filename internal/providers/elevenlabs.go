package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	ElevenLabsName       = "elevenlabs"
	ElevenLabsAPIBaseURL = "https://api.elevenlabs.io"
)

// ElevenLabsConfig holds configuration for the ElevenLabs voice client.
type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string // Optional override, used in tests
	Timeout time.Duration
}

// ElevenLabsClient implements VoiceProvider against the ElevenLabs API.
type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewElevenLabsClient creates a new ElevenLabs voice client.
func NewElevenLabsClient(cfg ElevenLabsConfig) *ElevenLabsClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ElevenLabsAPIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ElevenLabsClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the provider identifier.
func (c *ElevenLabsClient) Name() string {
	return ElevenLabsName
}

// HealthCheck verifies the API is reachable and the key is valid.
func (c *ElevenLabsClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/user", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ListVoices retrieves the available voices.
func (c *ElevenLabsClient) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v2/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list voices (status %d): %s", resp.StatusCode, string(body))
	}

	var result elevenLabsVoicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	voices := make([]Voice, 0, len(result.Voices))
	for _, v := range result.Voices {
		description := v.Description
		if description == "" && len(v.Labels) > 0 {
			for key, val := range v.Labels {
				if description != "" {
					description += ", "
				}
				description += key + ": " + val
			}
		}
		voices = append(voices, Voice{
			VoiceID:     v.VoiceID,
			Name:        v.Name,
			Description: description,
			Category:    v.Category,
			Labels:      v.Labels,
		})
	}
	return voices, nil
}

// ElevenLabs API types

type elevenLabsVoicesResponse struct {
	Voices []elevenLabsVoice `json:"voices"`
}

type elevenLabsVoice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Verify interface
var _ VoiceProvider = (*ElevenLabsClient)(nil)
