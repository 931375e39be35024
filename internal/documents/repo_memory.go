package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Document)}
}

// Get returns the row for a storage path.
func (r *MemoryRepo) Get(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[path]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(doc), nil
}

// ListAll returns every row, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, 0, len(r.data))
	for _, doc := range r.data {
		out = append(out, cloneDocument(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Upsert creates or refreshes the row for an uploaded object.
func (r *MemoryRepo) Upsert(ctx context.Context, path, name string, size *int64, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[path]
	if !ok {
		doc = Document{Path: path, CreatedAt: now}
	}
	doc.Name = name
	doc.Size = size
	doc.UpdatedAt = now
	r.data[path] = doc
	return nil
}

// SetSummary upserts the row with a new history, overwriting the cached
// summary only when summary is non-nil.
func (r *MemoryRepo) SetSummary(ctx context.Context, path, name string, summary *string, history []SummaryEntry, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[path]
	if !ok {
		doc = Document{Path: path, Name: name, CreatedAt: now}
	}
	if summary != nil {
		doc.Summary = *summary
	}
	doc.SummaryHistory = append([]SummaryEntry(nil), history...)
	doc.UpdatedAt = now
	r.data[path] = doc
	return nil
}

// SetSummaryFilePath links a derived summary file to its source document.
func (r *MemoryRepo) SetSummaryFilePath(ctx context.Context, path, summaryFilePath string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[path]
	if !ok {
		return nil
	}
	doc.SummaryFilePath = summaryFilePath
	doc.UpdatedAt = now
	r.data[path] = doc
	return nil
}

// Delete removes the row.
func (r *MemoryRepo) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, path)
	return nil
}

func cloneDocument(doc Document) Document {
	out := doc
	out.SummaryHistory = append([]SummaryEntry(nil), doc.SummaryHistory...)
	if doc.Size != nil {
		size := *doc.Size
		out.Size = &size
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
