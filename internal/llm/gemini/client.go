package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"docsummary-backend/internal/llm"
)

// DefaultModel is used when LLM_MODEL is not set.
const DefaultModel = "gemini-1.5-flash"

// Client implements llm.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Summarize sends one generateContent request and returns the response text.
func (c *Client) Summarize(ctx context.Context, req llm.Request) (string, error) {
	prompt := req.Instructions + "\n\nDocument to summarize:\n\n" + req.Text

	cfg := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		if reason := blockReason(resp); reason != "" {
			return "", fmt.Errorf("%w: %s. Try a different document", llm.ErrBlocked, reason)
		}
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return string(resp.PromptFeedback.BlockReason)
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		switch cand.FinishReason {
		case genai.FinishReasonSafety, genai.FinishReasonRecitation, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist:
			return string(cand.FinishReason)
		}
	}
	return ""
}

var _ llm.Client = (*Client)(nil)
