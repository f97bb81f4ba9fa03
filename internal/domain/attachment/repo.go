package attachment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// AttachmentRepository persists attachment metadata rows.
type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID, category string) ([]*Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
