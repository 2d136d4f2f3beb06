package documents

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/extract"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/storage/object"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/telemetry"
)

const maxUploadBytes = 5 << 20

var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/zip": {},
}

// Service stores uploaded files and extracts their text.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	Now   func() time.Time
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store, Now: time.Now}
}

// Upload saves the file, records it and extracts its text. Extraction
// failures are logged but do not fail the upload; the document stays
// usable without derived text.
func (s *Service) Upload(ctx context.Context, userID, companyID, fileName string, size int64, r io.Reader) (Document, error) {
	if size > maxUploadBytes {
		return Document{}, ErrTooLarge
	}

	storageKey, written, mimeType, err := s.Store.Save(ctx, userID, fileName, io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return Document{}, err
	}
	if written > maxUploadBytes {
		s.discard(ctx, storageKey)
		return Document{}, ErrTooLarge
	}
	if _, ok := allowedMimeTypes[baseMime(mimeType)]; !ok {
		s.discard(ctx, storageKey)
		return Document{}, ErrUnsupported
	}

	d := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		CompanyID:  companyID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  written,
		StorageKey: storageKey,
		CreatedAt:  s.Now().UTC(),
	}

	if _, extractedKey, err := extract.Text(ctx, s.Store, storageKey, mimeType, fileName); err != nil {
		telemetry.Warn("document text extraction failed", map[string]any{
			"document_id": d.ID,
			"mime_type":   mimeType,
			"error":       err.Error(),
		})
	} else {
		now := s.Now().UTC()
		d.ExtractedTextKey = extractedKey
		d.ExtractedAt = &now
	}

	if err := s.Repo.Create(ctx, d); err != nil {
		s.discard(ctx, storageKey)
		s.discard(ctx, d.ExtractedTextKey)
		return Document{}, err
	}
	return d, nil
}

// discard removes a stored object for a rejected upload, best effort.
func (s *Service) discard(ctx context.Context, storageKey string) {
	if storageKey == "" {
		return
	}
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Warn("failed to remove rejected upload", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}

// Get returns one document record.
func (s *Service) Get(ctx context.Context, userID, id string) (Document, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes the record. The stored object is left in place; the
// record is the source of truth.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

// ExtractedText streams the derived text of a document.
func (s *Service) ExtractedText(ctx context.Context, userID, id string) (io.ReadCloser, error) {
	d, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d.ExtractedTextKey == "" {
		return nil, ErrNotFound
	}
	return s.Store.Open(ctx, d.ExtractedTextKey)
}

func baseMime(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
