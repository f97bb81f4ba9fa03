package attachment

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucna/ucna/internal/domain/assessment"
	"github.com/ucna/ucna/internal/platform/blobstore"
)

// Service stores attachment binaries in the blob store and tracks them in the
// attachments table so they can be listed per assessment.
type Service struct {
	repo    AttachmentRepository
	blobs   blobstore.BlobStore
	gateway *assessment.Service
	log     zerolog.Logger
}

func NewService(repo AttachmentRepository, blobs blobstore.BlobStore, gateway *assessment.Service, log zerolog.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, gateway: gateway, log: log}
}

// Upload stores the file content and records its metadata against the
// assessment. The assessment must already exist.
func (s *Service) Upload(ctx context.Context, assessmentID uuid.UUID, category, fileName, contentType string, content io.Reader, uploadedBy string) (*Attachment, error) {
	if _, err := s.gateway.Get(ctx, assessmentID); err != nil {
		return nil, fmt.Errorf("assessment %s: %w", assessmentID, err)
	}

	meta, err := s.blobs.Upload(ctx, blobstore.BlobMetadata{
		FileName:     fileName,
		ContentType:  contentType,
		AssessmentID: assessmentID.String(),
		Category:     category,
		CreatedBy:    uploadedBy,
	}, content)
	if err != nil {
		return nil, err
	}

	a := &Attachment{
		ID:           uuid.New(),
		AssessmentID: assessmentID,
		Category:     meta.Category,
		FileName:     meta.FileName,
		ContentType:  meta.ContentType,
		Size:         meta.Size,
		BlobID:       meta.ID,
	}
	if meta.Hash != "" {
		a.Hash = &meta.Hash
	}
	if uploadedBy != "" {
		a.UploadedBy = &uploadedBy
	}

	// A signature is 1:1 with its assessment; re-signing replaces the old
	// image. The old rows are removed only after the new upload succeeded.
	var replaced []*Attachment
	if a.Category == "signature" {
		replaced, err = s.repo.ListByAssessment(ctx, assessmentID, "signature")
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// keep blob store and metadata table consistent
		if derr := s.blobs.Delete(ctx, meta.ID); derr != nil {
			s.log.Warn().Err(derr).Str("blob_id", meta.ID).Msg("orphaned blob after failed metadata insert")
		}
		return nil, err
	}

	for _, old := range replaced {
		if err := s.Delete(ctx, old.ID); err != nil {
			s.log.Warn().Err(err).Str("attachment_id", old.ID.String()).Msg("removing replaced signature")
		}
	}

	s.log.Info().
		Str("assessment_id", assessmentID.String()).
		Str("attachment_id", a.ID.String()).
		Str("category", a.Category).
		Int64("size", a.Size).
		Msg("attachment uploaded")
	return a, nil
}

// Open returns the attachment metadata and a reader over its content.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (*Attachment, io.ReadCloser, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.blobs.Download(ctx, a.BlobID)
	if err != nil {
		return nil, nil, fmt.Errorf("blob %s: %w", a.BlobID, err)
	}
	return a, rc, nil
}

// List returns attachment metadata for an assessment, optionally filtered by
// category.
func (s *Service) List(ctx context.Context, assessmentID uuid.UUID, category string) ([]*Attachment, error) {
	if category != "" && !blobstore.AllowedCategories[category] {
		return nil, fmt.Errorf("%w: %s", blobstore.ErrInvalidCategory, category)
	}
	return s.repo.ListByAssessment(ctx, assessmentID, category)
}

// Delete removes the metadata row and the stored blob. A missing blob is
// logged, not fatal; the metadata row is authoritative.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, a.BlobID); err != nil {
		s.log.Warn().Err(err).Str("blob_id", a.BlobID).Msg("delete blob")
	}
	return nil
}
