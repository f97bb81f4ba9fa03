package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucna/ucna/internal/schema"
)

// placeholderAssessor fills the assessor column when a record is created
// lazily on first save, before section 10 captures the real name.
const placeholderAssessor = "unassigned"

// Service is the persistence gateway for assessment records and their
// section data. All writes funnel through here so that empty-save
// suppression, identifier repair, and status monotonicity hold everywhere.
type Service struct {
	assessments AssessmentRepository
	sections    SectionRepository
	log         zerolog.Logger
}

func NewService(assessments AssessmentRepository, sections SectionRepository, log zerolog.Logger) *Service {
	return &Service{assessments: assessments, sections: sections, log: log}
}

// NormalizeID parses raw as a UUID, minting a fresh one when raw is empty or
// malformed. The second return reports whether a repair happened, so callers
// can surface the replacement identifier to the client.
func NormalizeID(raw string) (uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			return id, false
		}
	}
	return uuid.New(), true
}

// GetOrCreate returns the assessment with the given id, creating a draft
// record when none exists yet. Creation is lazy: a record appears the first
// time anything needs to hang data off it.
func (s *Service) GetOrCreate(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	a = &Assessment{
		ID:             id,
		Status:         StatusDraft,
		AssessorName:   placeholderAssessor,
		AssessmentDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		s.log.Error().Err(err).
			Str("assessment_id", id.String()).
			Msg("creating assessment record failed")
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	return s.assessments.List(ctx, limit, offset)
}

// SaveSection validates and persists one section's data. Values that filter
// down to nothing (all empty strings and unticked flags) are dropped without
// touching storage; the bool return reports whether a write happened.
// Repeated saves for the same assessment and section update in place.
func (s *Service) SaveSection(ctx context.Context, id uuid.UUID, key schema.SectionKey, data map[string]string) (bool, error) {
	section, ok := schema.SectionByKey(key)
	if !ok {
		return false, fmt.Errorf("unknown section: %s", key)
	}

	filtered := schema.FilterEmpty(data)
	if len(filtered) == 0 {
		return false, nil
	}
	if errs := schema.ValidatePartial(key, filtered); len(errs) > 0 {
		return false, validationError(key, errs)
	}

	a, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return false, err
	}
	if a.Status == StatusLocked {
		return false, fmt.Errorf("assessment %s is locked", id)
	}

	if err := s.sections.Upsert(ctx, id, section, filtered); err != nil {
		s.log.Error().Err(err).
			Str("assessment_id", id.String()).
			Str("section", string(key)).
			Msg("section upsert failed")
		return false, err
	}
	if err := s.assessments.Touch(ctx, id); err != nil {
		s.log.Error().Err(err).
			Str("assessment_id", id.String()).
			Str("section", string(key)).
			Msg("touching assessment after section save failed")
		return false, err
	}
	return true, nil
}

// Section returns the persisted record for one section, or an empty map when
// nothing has been saved yet.
func (s *Service) Section(ctx context.Context, id uuid.UUID, key schema.SectionKey) (map[string]string, error) {
	section, ok := schema.SectionByKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown section: %s", key)
	}
	rec, err := s.sections.Get(ctx, id, section)
	if errors.Is(err, ErrNotFound) {
		return map[string]string{}, nil
	}
	return rec, err
}

// SnapshotOf loads the assessment and every section record that has been
// persisted for it. Sections never saved are absent from the map.
func (s *Service) SnapshotOf(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Assessment: a,
		Sections:   make(map[schema.SectionKey]map[string]string),
	}
	for _, key := range schema.Keys() {
		section, _ := schema.SectionByKey(key)
		rec, err := s.sections.Get(ctx, id, section)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > 0 {
			snap.Sections[key] = rec
		}
	}
	return snap, nil
}

// UpdateStatus advances the assessment's lifecycle. Moving backwards or to
// an unknown status is an error; re-asserting the current status is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, target Status) error {
	if !target.Valid() {
		return fmt.Errorf("invalid status: %s", target)
	}
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == target {
		return nil
	}
	if !a.Status.CanTransition(target) {
		return fmt.Errorf("cannot move assessment from %s to %s", a.Status, target)
	}
	if err := s.assessments.UpdateStatus(ctx, id, target); err != nil {
		s.log.Error().Err(err).
			Str("assessment_id", id.String()).
			Str("status", string(target)).
			Msg("status update failed")
		return err
	}
	return nil
}

func validationError(key schema.SectionKey, errs []schema.FieldError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("section %s: %s", key, strings.Join(msgs, "; "))
}
