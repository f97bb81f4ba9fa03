package assessment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ucna/ucna/internal/schema"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Touch(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Assessment, int, error)
}

// SectionRepository persists one section record per assessment. Upsert is
// keyed on assessment_id: saving the same section twice updates in place
// rather than growing a second row.
type SectionRepository interface {
	Upsert(ctx context.Context, assessmentID uuid.UUID, section *schema.Section, data map[string]string) error
	Get(ctx context.Context, assessmentID uuid.UUID, section *schema.Section) (map[string]string, error)
}
