package documents

import "time"

// FileEntry is one listing row: the stored object annotated with metadata.
type FileEntry struct {
	Name            string    `json:"name"`
	Path            string    `json:"path"`
	CreatedAt       time.Time `json:"created_at"`
	Size            int64     `json:"size"`
	HasSummary      bool      `json:"has_summary"`
	SummaryFilePath string    `json:"summary_file_path,omitempty"`
	IsAISummary     bool      `json:"is_ai_summary"`
}

// ListResponse wraps the file listing.
type ListResponse struct {
	Files []FileEntry `json:"files"`
}

// UploadResult describes a stored upload.
type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// SaveSummaryResult describes a persisted summary file.
type SaveSummaryResult struct {
	SummaryFilePath string `json:"summaryFilePath"`
	SummaryFileName string `json:"summaryFileName"`
	AlreadySaved    bool   `json:"alreadySaved"`
}
