package blobstore

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"strings"
	"testing"
)

func seedBlob(t *testing.T, store BlobStore, assessmentID, category, fileName, contentType, content string) *BlobMetadata {
	t.Helper()
	meta := BlobMetadata{
		FileName:     fileName,
		ContentType:  contentType,
		AssessmentID: assessmentID,
		Category:     category,
		CreatedBy:    "test-user",
	}
	result, err := store.Upload(context.Background(), meta, strings.NewReader(content))
	if err != nil {
		t.Fatalf("seedBlob: %v", err)
	}
	return result
}

func TestUpload(t *testing.T) {
	store := NewInMemoryBlobStore()
	content := "signature strokes"

	result := seedBlob(t, store, "assessment-1", "signature", "sig.png", "image/png", content)

	if result.ID == "" {
		t.Error("expected generated id")
	}
	if result.Size != int64(len(content)) {
		t.Errorf("size: got %d, want %d", result.Size, len(content))
	}
	wantHash := fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
	if result.Hash != wantHash {
		t.Errorf("hash mismatch: %s", result.Hash)
	}
	if result.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestUpload_Validation(t *testing.T) {
	store := NewInMemoryBlobStore()

	if _, err := store.Upload(context.Background(), BlobMetadata{}, strings.NewReader("x")); err != ErrMissingFileName {
		t.Errorf("expected ErrMissingFileName, got %v", err)
	}
	_, err := store.Upload(context.Background(),
		BlobMetadata{FileName: "x.exe", ContentType: "application/x-msdownload"}, strings.NewReader("x"))
	if err == nil {
		t.Error("expected content type rejection")
	}
	_, err = store.Upload(context.Background(),
		BlobMetadata{FileName: "x.pdf", Category: "holiday_photos"}, strings.NewReader("x"))
	if err == nil {
		t.Error("expected category rejection")
	}
}

func TestUpload_DefaultsCategory(t *testing.T) {
	store := NewInMemoryBlobStore()
	result := seedBlob(t, store, "a1", "", "doc.pdf", "application/pdf", "pdf bytes")
	if result.Category != "other" {
		t.Errorf("expected default category, got %q", result.Category)
	}
}

func TestDownloadRoundTrip(t *testing.T) {
	store := NewInMemoryBlobStore()
	seeded := seedBlob(t, store, "a1", "dnacpr", "dnacpr.pdf", "application/pdf", "pdf bytes")

	rc, meta, err := store.Download(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "pdf bytes" {
		t.Errorf("content mismatch: %q", data)
	}
	if meta.FileName != "dnacpr.pdf" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
}

func TestDownload_NotFound(t *testing.T) {
	store := NewInMemoryBlobStore()
	if _, _, err := store.Download(context.Background(), "missing"); err != ErrBlobNotFound {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := NewInMemoryBlobStore()
	seeded := seedBlob(t, store, "a1", "other", "note.txt", "text/plain", "note")
	if err := store.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(context.Background(), seeded.ID); err != ErrBlobNotFound {
		t.Errorf("expected ErrBlobNotFound on second delete, got %v", err)
	}
}

func TestListByAssessment(t *testing.T) {
	store := NewInMemoryBlobStore()
	seedBlob(t, store, "a1", "dnacpr", "dnacpr.pdf", "application/pdf", "x")
	seedBlob(t, store, "a1", "signature", "sig.png", "image/png", "y")
	seedBlob(t, store, "a2", "dnacpr", "other.pdf", "application/pdf", "z")

	items, total, err := store.ListByAssessment(context.Background(), "a1", "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 blobs for a1, got %d", total)
	}

	items, total, _ = store.ListByAssessment(context.Background(), "a1", "signature", 20, 0)
	if total != 1 || items[0].FileName != "sig.png" {
		t.Errorf("category filter failed: %v", items)
	}
}
