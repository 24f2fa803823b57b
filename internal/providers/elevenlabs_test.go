package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestElevenLabsListVoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/voices" {
			t.Errorf("path = %q, want /v2/voices", r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("xi-api-key = %q, want %q", got, "test-key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"voices": [
				{
					"voice_id": "v1",
					"name": "Rachel",
					"category": "premade",
					"labels": {"gender": "female", "age": "young", "accent": "american"}
				},
				{
					"voice_id": "v2",
					"name": "George",
					"description": "warm british narrator",
					"category": "premade",
					"labels": {"gender": "male"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	voices, err := client.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}

	if voices[0].VoiceID != "v1" || voices[0].Name != "Rachel" {
		t.Errorf("voice 0 = %+v", voices[0])
	}
	// Description is synthesized from labels when absent.
	if !strings.Contains(voices[0].Description, "gender: female") {
		t.Errorf("voice 0 description = %q, want labels summary", voices[0].Description)
	}
	if voices[1].Description != "warm british narrator" {
		t.Errorf("voice 1 description = %q", voices[1].Description)
	}
	if voices[0].Label("accent") != "american" {
		t.Errorf("accent label = %q, want american", voices[0].Label("accent"))
	}
}

func TestElevenLabsListVoicesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.ListVoices(context.Background()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestElevenLabsHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/user" {
			t.Errorf("path = %q, want /v1/user", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestElevenLabsHealthCheckUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "bad-key", BaseURL: server.URL})
	err := client.HealthCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid API key") {
		t.Fatalf("err = %v, want invalid API key", err)
	}
}
