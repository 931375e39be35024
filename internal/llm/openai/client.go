package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"docsummary-backend/internal/llm"
	"docsummary-backend/internal/shared/telemetry"
)

const (
	defaultBaseURL  = "https://api.openai.com/v1"
	deepseekBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is used when LLM_MODEL is not set.
	DefaultModel = "gpt-4o-mini"
	// DefaultDeepSeekModel is used for the DeepSeek-compatible endpoint.
	DefaultDeepSeekModel = "deepseek-chat"
)

// Client implements llm.Client against an OpenAI-compatible Chat Completions API.
// The same client serves DeepSeek through its alternate base URL.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the OpenAI endpoint.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	return newClient(apiKey, model, baseURL, defaultBaseURL, DefaultModel)
}

// NewDeepSeekClient constructs a client for the DeepSeek-compatible endpoint.
func NewDeepSeekClient(apiKey, model, baseURL string) (*Client, error) {
	return newClient(apiKey, model, baseURL, deepseekBaseURL, DefaultDeepSeekModel)
}

func newClient(apiKey, model, baseURL, defBaseURL, defModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defModel
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defBaseURL
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Summarize sends one chat completion request and returns the response text.
func (c *Client) Summarize(ctx context.Context, req llm.Request) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.Instructions},
			{Role: "user", Content: "Summarize the following document:\n\n" + req.Text},
		},
		MaxTokens: req.MaxOutputTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("chat completion request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("chat completion response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat completion error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion response empty content")
	}
	if parsed.Usage != nil {
		telemetry.Info("llm.usage", map[string]any{
			"model":             c.model,
			"prompt_tokens":     parsed.Usage.PromptTokens,
			"completion_tokens": parsed.Usage.CompletionTokens,
			"total_tokens":      parsed.Usage.TotalTokens,
		})
	}
	return content, nil
}

var _ llm.Client = (*Client)(nil)
