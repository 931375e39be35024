package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for document metadata.
type Repo interface {
	// Get returns the row for a storage path, or ErrNotFound.
	Get(ctx context.Context, path string) (Document, error)
	// ListAll returns every row; callers build their own path-keyed lookup.
	ListAll(ctx context.Context) ([]Document, error)
	// Upsert creates or refreshes the row for an uploaded object.
	Upsert(ctx context.Context, path, name string, size *int64, now time.Time) error
	// SetSummary upserts the row, overwriting the cached summary only when
	// summary is non-nil, and always replacing the history.
	SetSummary(ctx context.Context, path, name string, summary *string, history []SummaryEntry, now time.Time) error
	// SetSummaryFilePath links a derived summary file to its source document.
	SetSummaryFilePath(ctx context.Context, path, summaryFilePath string, now time.Time) error
	// Delete removes the row. Deleting a missing path is not an error.
	Delete(ctx context.Context, path string) error
}
