package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>直近の売上高は1億円</w:t></w:r></w:p></w:body></w:document>`)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryRepo(), local.New(t.TempDir()))
}

func TestUploadExtractsText(t *testing.T) {
	svc := newTestService(t)
	data := buildDocx(t)

	doc, err := svc.Upload(context.Background(), "user-1", "company-1", "kessan.docx", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.ID == "" || doc.StorageKey == "" {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.ExtractedAt == nil || doc.ExtractedTextKey == "" {
		t.Fatalf("expected extraction, got %+v", doc)
	}

	body, err := svc.ExtractedText(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("ExtractedText: %v", err)
	}
	defer body.Close()
	text, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	if !strings.Contains(string(text), "直近の売上高は1億円") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(t)
	data := []byte("これはただのテキストです")

	if _, err := svc.Upload(context.Background(), "user-1", "", "memo.txt", int64(len(data)), bytes.NewReader(data)); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestRejectedUploadLeavesNoObject(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(NewMemoryRepo(), local.New(dir))

	data := []byte("これはただのテキストです")
	if _, err := svc.Upload(context.Background(), "user-1", "", "memo.txt", int64(len(data)), bytes.NewReader(data)); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}

	oversize := bytes.NewReader(make([]byte, maxUploadBytes+1))
	if _, err := svc.Upload(context.Background(), "user-1", "", "big.pdf", maxUploadBytes, oversize); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	if n := countFiles(t, dir); n != 0 {
		t.Fatalf("expected empty store after rejections, found %d files", n)
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk store: %v", err)
	}
	return n
}

func TestUploadRejectsOversize(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Upload(context.Background(), "user-1", "", "big.pdf", maxUploadBytes+1, bytes.NewReader(nil)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestDocumentsScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	data := buildDocx(t)

	doc, err := svc.Upload(context.Background(), "user-1", "", "kessan.docx", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-1", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
