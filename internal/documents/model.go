package documents

import "time"

// HistoryLimit caps summary_history at the most recent entries; older ones
// are dropped on write.
const HistoryLimit = 10

// SummaryEntry is one generation in a document's summary history. Entries are
// ordered newest first. Language holds the display label, not the request code.
type SummaryEntry struct {
	Summary   string    `json:"summary"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is the persisted metadata row, keyed by storage path.
type Document struct {
	Path            string
	Name            string
	Size            *int64
	Summary         string
	SummaryHistory  []SummaryEntry
	SummaryFilePath string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
