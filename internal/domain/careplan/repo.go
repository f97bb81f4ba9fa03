package careplan

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository stores planned needs per assessment and domain. Replace is
// the write path generation uses: the domain's entries are swapped
// wholesale, so re-running generation never duplicates rows.
type EntryRepository interface {
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID, domain Domain) ([]*Entry, error)
	Replace(ctx context.Context, assessmentID uuid.UUID, domain Domain, entries []*Entry) error
	DeleteByAssessment(ctx context.Context, assessmentID uuid.UUID) error
}
