package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `path, name, size, summary, summary_history, summary_file_path, created_at, updated_at`

// Get returns the row for a storage path.
func (r *PGRepo) Get(ctx context.Context, path string) (Document, error) {
	const query = `
SELECT ` + selectColumns + `
FROM documents
WHERE path = $1`
	row := r.DB.QueryRowContext(ctx, query, path)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListAll returns every metadata row.
func (r *PGRepo) ListAll(ctx context.Context) ([]Document, error) {
	const query = `
SELECT ` + selectColumns + `
FROM documents
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Upsert creates or refreshes the row for an uploaded object.
func (r *PGRepo) Upsert(ctx context.Context, path, name string, size *int64, now time.Time) error {
	const query = `
INSERT INTO documents (path, name, size, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (path) DO UPDATE SET
    name = EXCLUDED.name,
    size = EXCLUDED.size,
    updated_at = EXCLUDED.updated_at`

	var sizeArg sql.NullInt64
	if size != nil {
		sizeArg = sql.NullInt64{Int64: *size, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, path, name, sizeArg, now)
	return err
}

// SetSummary upserts the row with a new history, overwriting the cached
// summary column only when summary is non-nil.
func (r *PGRepo) SetSummary(ctx context.Context, path, name string, summary *string, history []SummaryEntry, now time.Time) error {
	const query = `
INSERT INTO documents (path, name, summary, summary_history, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (path) DO UPDATE SET
    summary = COALESCE(EXCLUDED.summary, documents.summary),
    summary_history = EXCLUDED.summary_history,
    updated_at = EXCLUDED.updated_at`

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal summary history: %w", err)
	}

	var summaryArg sql.NullString
	if summary != nil {
		summaryArg = sql.NullString{String: *summary, Valid: true}
	}
	_, err = r.DB.ExecContext(ctx, query, path, name, summaryArg, historyJSON, now)
	return err
}

// SetSummaryFilePath links a derived summary file to its source document.
func (r *PGRepo) SetSummaryFilePath(ctx context.Context, path, summaryFilePath string, now time.Time) error {
	const query = `
UPDATE documents
SET summary_file_path = $1, updated_at = $2
WHERE path = $3`
	_, err := r.DB.ExecContext(ctx, query, summaryFilePath, now, path)
	return err
}

// Delete removes the row.
func (r *PGRepo) Delete(ctx context.Context, path string) error {
	const query = `DELETE FROM documents WHERE path = $1`
	_, err := r.DB.ExecContext(ctx, query, path)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var size sql.NullInt64
	var summary sql.NullString
	var historyRaw []byte
	var summaryFilePath sql.NullString
	if err := row.Scan(
		&doc.Path,
		&doc.Name,
		&size,
		&summary,
		&historyRaw,
		&summaryFilePath,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return Document{}, err
	}
	if size.Valid {
		doc.Size = &size.Int64
	}
	if summary.Valid {
		doc.Summary = summary.String
	}
	if summaryFilePath.Valid {
		doc.SummaryFilePath = summaryFilePath.String
	}
	if len(historyRaw) > 0 {
		if err := json.Unmarshal(historyRaw, &doc.SummaryHistory); err != nil {
			return Document{}, fmt.Errorf("unmarshal summary history: %w", err)
		}
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
