package summaries

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"docsummary-backend/internal/documents"
	"docsummary-backend/internal/extract"
	"docsummary-backend/internal/llm"
	"docsummary-backend/internal/shared/metrics"
	"docsummary-backend/internal/shared/storage/object"
	"docsummary-backend/internal/shared/telemetry"
)

const (
	// truncateLimit caps the characters sent to the provider. A hard cost
	// control, not a quality-aware limit.
	truncateLimit = 2500
	// maxOutputTokens bounds the provider response length.
	maxOutputTokens = 1000
)

// ErrEmptyText means no text could be extracted from the document.
var ErrEmptyText = errors.New("no text content could be extracted")

// Result is the outcome of one summarize call.
type Result struct {
	Summary string
	Cached  bool
}

// Service generates document summaries through an LLM backend and maintains
// the per-document cache and history.
type Service struct {
	Store object.ObjectStore
	Repo  documents.Repo
	LLM   llm.Client
}

// Summarize returns a summary for the document at docPath in the requested
// language. English requests may be served from the cached summary; see the
// cache rule in serveFromCache. Exactly one provider call is made on a miss.
func (s *Service) Summarize(ctx context.Context, docPath string, language Language) (Result, error) {
	if cached, ok := s.serveFromCache(ctx, docPath, language); ok {
		metrics.IncSummarizeCached()
		return Result{Summary: cached, Cached: true}, nil
	}

	text, err := s.documentText(ctx, docPath)
	if err != nil {
		return Result{}, err
	}

	truncated := truncate(text, truncateLimit)

	metrics.IncSummarizeStarted()
	start := time.Now()
	summary, err := s.LLM.Summarize(ctx, llm.Request{
		Instructions:    language.Instructions(),
		Text:            truncated,
		MaxOutputTokens: maxOutputTokens,
	})
	metrics.ObserveSummarizeDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncSummarizeFailed()
		return Result{}, err
	}
	metrics.IncSummarizeCompleted()

	s.persist(ctx, docPath, language, summary)
	return Result{Summary: summary}, nil
}

// serveFromCache returns the cached English summary when the request is for
// the default language AND the most recent history entry (if any) was also
// English. A more recent non-English generation invalidates reuse even though
// the cached English text itself is untouched.
func (s *Service) serveFromCache(ctx context.Context, docPath string, language Language) (string, bool) {
	if language != DefaultLanguage {
		return "", false
	}
	row, err := s.Repo.Get(ctx, docPath)
	if err != nil {
		return "", false
	}
	summary := strings.TrimSpace(row.Summary)
	if summary == "" {
		return "", false
	}
	if len(row.SummaryHistory) > 0 && row.SummaryHistory[0].Language != DefaultLanguage.Label() {
		return "", false
	}
	return row.Summary, true
}

func (s *Service) documentText(ctx context.Context, docPath string) (string, error) {
	rc, err := s.Store.Open(ctx, docPath)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	text, err := extract.ByExtension(data, extract.Ext(docPath))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// persist caches the summary (default language only) and prepends a history
// entry, capped at the most recent entries. Failures are logged and swallowed;
// the generated summary is still returned to the caller.
func (s *Service) persist(ctx context.Context, docPath string, language Language, summary string) {
	now := time.Now().UTC()

	var prev []documents.SummaryEntry
	if row, err := s.Repo.Get(ctx, docPath); err == nil {
		prev = row.SummaryHistory
	}

	history := append([]documents.SummaryEntry{{
		Summary:   summary,
		Language:  language.Label(),
		CreatedAt: now,
	}}, prev...)
	if len(history) > documents.HistoryLimit {
		history = history[:documents.HistoryLimit]
	}

	var summaryPtr *string
	if language == DefaultLanguage {
		summaryPtr = &summary
	}

	if err := s.Repo.SetSummary(ctx, docPath, path.Base(docPath), summaryPtr, history, now); err != nil {
		telemetry.Error("summaries.persist_failed", map[string]any{
			"path":  docPath,
			"error": err.Error(),
		})
	}
}

// truncate limits text to a rune budget, marking the cut with an ellipsis.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
