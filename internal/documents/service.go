package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"docsummary-backend/internal/extract"
	"docsummary-backend/internal/shared/storage/object"
	"docsummary-backend/internal/shared/telemetry"
	"docsummary-backend/internal/shared/util"
)

const (
	listLimit          = 100
	duplicateScanLimit = 1000
	emptyFileSentinel  = "(Empty file)"
	summaryContentType = "text/plain; charset=utf-8"
	hiddenObjectMarker = "."
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	// CascadeDelete removes the metadata row when the object is deleted.
	// Off by default: keeping the row preserves summary history across
	// re-uploads of the same path.
	CascadeDelete bool
}

// List returns up to 100 stored objects, newest first, annotated with summary
// metadata. A metadata read failure degrades to an un-enriched listing.
func (s *Service) List(ctx context.Context) ([]FileEntry, error) {
	objs, err := s.Store.List(ctx, listLimit)
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]Document)
	rows, err := s.Repo.ListAll(ctx)
	if err != nil {
		telemetry.Error("documents.list.enrich_failed", map[string]any{"error": err.Error()})
	} else {
		for _, row := range rows {
			byPath[row.Path] = row
		}
	}

	entries := make([]FileEntry, 0, len(objs))
	for _, obj := range objs {
		if obj.Key == "" || strings.HasPrefix(path.Base(obj.Key), hiddenObjectMarker) {
			continue
		}
		entry := FileEntry{
			Name:      util.DisplayName(obj.Key),
			Path:      obj.Key,
			CreatedAt: obj.LastModified,
			Size:      obj.Size,
		}
		if row, ok := byPath[obj.Key]; ok {
			entry.HasSummary = strings.TrimSpace(row.Summary) != ""
			entry.SummaryFilePath = row.SummaryFilePath
			entry.IsAISummary = row.SummaryFilePath != ""
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Upload stores a file under a timestamp-prefixed key and records metadata.
// The object write is authoritative; a metadata failure is logged, not fatal.
func (s *Service) Upload(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (UploadResult, error) {
	safeName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	existing, err := s.Store.List(ctx, duplicateScanLimit)
	if err != nil {
		return UploadResult{}, err
	}
	for _, obj := range existing {
		base := path.Base(obj.Key)
		if strings.HasPrefix(base, hiddenObjectMarker) {
			continue
		}
		if util.StripTimestampPrefix(base) == safeName {
			return UploadResult{}, ErrDuplicateName
		}
	}

	now := time.Now()
	key := util.TimestampKey(safeName, now)
	if _, err := s.Store.Upload(ctx, key, contentType, r); err != nil {
		return UploadResult{}, err
	}

	var sizePtr *int64
	if size > 0 {
		sizePtr = &size
	}
	if err := s.Repo.Upsert(ctx, key, fileName, sizePtr, now.UTC()); err != nil {
		telemetry.Error("documents.upload.metadata_failed", map[string]any{
			"path":  key,
			"error": err.Error(),
		})
	}

	return UploadResult{
		Path: key,
		URL:  s.Store.PublicURL(key),
		Name: fileName,
	}, nil
}

// Delete removes the object. The metadata row survives unless CascadeDelete
// is enabled.
func (s *Service) Delete(ctx context.Context, docPath string) error {
	if err := s.Store.Remove(ctx, docPath); err != nil {
		return err
	}
	if s.CascadeDelete {
		if err := s.Repo.Delete(ctx, docPath); err != nil {
			telemetry.Error("documents.delete.metadata_failed", map[string]any{
				"path":  docPath,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// Content downloads the object and extracts text for preview.
func (s *Service) Content(ctx context.Context, docPath string) (string, error) {
	data, err := s.download(ctx, docPath)
	if err != nil {
		return "", err
	}
	text, err := extract.ByExtension(data, extract.Ext(docPath))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return emptyFileSentinel, nil
	}
	return text, nil
}

// Download returns the raw object bytes plus a sanitized display file name
// with the timestamp prefix stripped, for attachment-style serving.
func (s *Service) Download(ctx context.Context, docPath string) ([]byte, string, error) {
	data, err := s.download(ctx, docPath)
	if err != nil {
		return nil, "", err
	}
	name := util.DisplayName(docPath)
	if safe, err := util.SanitizeFileName(name); err == nil {
		name = safe
	} else {
		name = "summary.txt"
	}
	return data, name, nil
}

// SaveSummary persists summary text as a derived .txt object and links it to
// the source document. Falls back to the cached summary when the caller
// supplies none.
func (s *Service) SaveSummary(ctx context.Context, docPath, customName, summaryText string) (SaveSummaryResult, error) {
	summaryText = strings.TrimSpace(summaryText)
	if summaryText == "" {
		row, err := s.Repo.Get(ctx, docPath)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return SaveSummaryResult{}, err
		}
		summaryText = strings.TrimSpace(row.Summary)
	}
	if summaryText == "" {
		return SaveSummaryResult{}, ErrNoSummary
	}

	now := time.Now()
	fileName := summaryFileName(docPath, customName, now)

	content := append(append([]byte(nil), utf8BOM...), []byte(summaryText)...)
	if _, err := s.Store.Upload(ctx, fileName, summaryContentType, bytes.NewReader(content)); err != nil {
		return SaveSummaryResult{}, err
	}

	if err := s.Repo.SetSummaryFilePath(ctx, docPath, fileName, now.UTC()); err != nil {
		telemetry.Error("documents.save_summary.link_failed", map[string]any{
			"path":  docPath,
			"error": err.Error(),
		})
	}

	return SaveSummaryResult{
		SummaryFilePath: fileName,
		SummaryFileName: util.StripTimestampPrefix(fileName),
		AlreadySaved:    false,
	}, nil
}

// History returns the stored summary history, newest first.
func (s *Service) History(ctx context.Context, docPath string) ([]SummaryEntry, error) {
	row, err := s.Repo.Get(ctx, docPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []SummaryEntry{}, nil
		}
		return nil, err
	}
	if row.SummaryHistory == nil {
		return []SummaryEntry{}, nil
	}
	return row.SummaryHistory, nil
}

func (s *Service) download(ctx context.Context, docPath string) ([]byte, error) {
	rc, err := s.Store.Open(ctx, docPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// summaryFileName builds the timestamp-prefixed .txt key for a saved summary.
// A custom name wins; otherwise the name derives from the source document.
func summaryFileName(docPath, customName string, now time.Time) string {
	if trimmed := strings.TrimSpace(customName); trimmed != "" {
		base := strings.TrimSuffix(strings.TrimSuffix(trimmed, ".txt"), ".TXT")
		if safe, err := util.SanitizeFileName(base); err == nil {
			return util.TimestampKey(safe+".txt", now)
		}
	}
	base := util.StripTimestampPrefix(path.Base(docPath))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	if base == "" {
		base = "document"
	}
	safe, err := util.SanitizeFileName(base)
	if err != nil {
		safe = "document"
	}
	return util.TimestampKey("summary_"+safe+".txt", now)
}
