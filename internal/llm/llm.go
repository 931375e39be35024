package llm

import (
	"context"
	"errors"
)

// Request carries everything a backend needs for one summary generation.
type Request struct {
	// Instructions is the system/style prompt, including language constraints.
	Instructions string
	// Text is the (already truncated) document text to summarize.
	Text string
	// MaxOutputTokens bounds the response length.
	MaxOutputTokens int
}

// Client abstracts interchangeable LLM backends. Implementations make exactly
// one provider call per Summarize; callers never retry.
type Client interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured means no provider is configured for this process.
var ErrNotConfigured = errors.New("no LLM provider configured")

// ErrBlocked means the provider refused the content for safety reasons.
var ErrBlocked = errors.New("provider blocked response")

// Unconfigured is the client used when no provider is set; every call fails
// with ErrNotConfigured so handlers can return a remediation hint.
type Unconfigured struct{}

// Summarize returns ErrNotConfigured.
func (Unconfigured) Summarize(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
