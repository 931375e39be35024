package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docsummary-backend/internal/llm"
)

func TestClientDefaults(t *testing.T) {
	c, err := NewClient("sk-test", "", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.model != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, c.model)
	}
	if c.baseURL != defaultBaseURL {
		t.Fatalf("expected default base URL %q, got %q", defaultBaseURL, c.baseURL)
	}

	ds, err := NewDeepSeekClient("sk-test", "", "")
	if err != nil {
		t.Fatalf("NewDeepSeekClient: %v", err)
	}
	if ds.model != DefaultDeepSeekModel {
		t.Fatalf("expected default model %q, got %q", DefaultDeepSeekModel, ds.model)
	}
	if ds.baseURL != deepseekBaseURL {
		t.Fatalf("expected deepseek base URL %q, got %q", deepseekBaseURL, ds.baseURL)
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("  ", "", ""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSummarizeRequestShape(t *testing.T) {
	var captured chatRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  a summary  "}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient("sk-test", "test-model", server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	out, err := c.Summarize(context.Background(), llm.Request{
		Instructions:    "summarize in English",
		Text:            "document body",
		MaxOutputTokens: 1000,
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out != "a summary" {
		t.Fatalf("expected trimmed content, got %q", out)
	}
	if authHeader != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", authHeader)
	}
	if captured.Model != "test-model" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if captured.MaxTokens != 1000 {
		t.Fatalf("unexpected max_tokens %d", captured.MaxTokens)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", captured.Messages)
	}
	if !strings.HasPrefix(captured.Messages[1].Content, "Summarize the following document:") {
		t.Fatalf("unexpected user message %q", captured.Messages[1].Content)
	}
}

func TestSummarizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "insufficient balance", "type": "invalid_request"},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient("sk-test", "", server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Summarize(context.Background(), llm.Request{Text: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid_request") {
		t.Fatalf("expected error type in message, got %v", err)
	}
}

func TestSummarizeEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient("sk-test", "", server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.Summarize(context.Background(), llm.Request{Text: "x"}); err == nil {
		t.Fatal("expected error for missing choices")
	}
}
