package careplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucna/ucna/internal/domain/assessment"
	"github.com/ucna/ucna/internal/schema"
)

// Generator produces a care plan for an assessment. The HTTP Client is the
// production implementation.
type Generator interface {
	Generate(ctx context.Context, assessmentID uuid.UUID) (*GeneratedPlan, error)
}

// Service assembles care plans and drives generation. Reads are fail-closed:
// asking for a plan over an assessment that does not exist is an error, never
// a silent fallback to some other record.
type Service struct {
	entries EntryRepository
	gateway *assessment.Service
	gen     Generator
	log     zerolog.Logger
}

func NewService(entries EntryRepository, gateway *assessment.Service, gen Generator, log zerolog.Logger) *Service {
	return &Service{entries: entries, gateway: gateway, gen: gen, log: log}
}

// Generate runs the external generation service for one assessment and
// stores the result. Existing entries for the assessment are replaced, so
// regenerating is safe. Satisfies the session layer's PlanGenerator.
func (s *Service) Generate(ctx context.Context, assessmentID uuid.UUID) error {
	if s.gen == nil {
		return fmt.Errorf("no care plan generator configured")
	}
	if _, err := s.gateway.Get(ctx, assessmentID); err != nil {
		return fmt.Errorf("assessment %s: %w", assessmentID, err)
	}

	plan, err := s.gen.Generate(ctx, assessmentID)
	if err != nil {
		return err
	}

	for _, domain := range Domains() {
		if err := s.entries.Replace(ctx, assessmentID, domain, plan.Domains[domain]); err != nil {
			return fmt.Errorf("storing %s entries: %w", domain, err)
		}
	}
	s.log.Info().
		Str("assessment_id", assessmentID.String()).
		Int("entries", len(plan.Domains)).
		Msg("care plan generated")
	return nil
}

// Plan assembles the stored care plan for one assessment. The assessment
// must exist; domains without entries are left out of the result.
func (s *Service) Plan(ctx context.Context, assessmentID uuid.UUID) (*Plan, error) {
	a, err := s.gateway.Get(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("assessment %s: %w", assessmentID, err)
	}

	plan := &Plan{
		Assessment:  a,
		Domains:     make(map[Domain][]*Entry),
		GeneratedAt: time.Now().UTC(),
	}

	rec, err := s.gateway.Section(ctx, assessmentID, schema.PersonalDetails)
	if err != nil {
		return nil, err
	}
	if len(rec) > 0 {
		plan.ServiceUser = assessment.ServiceUserFromRecord(rec)
	}

	for _, domain := range Domains() {
		entries, err := s.entries.ListByAssessment(ctx, assessmentID, domain)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			plan.Domains[domain] = entries
		}
	}
	return plan, nil
}

// RecentPlan assembles the plan for the most recently touched assessment.
func (s *Service) RecentPlan(ctx context.Context) (*Plan, error) {
	items, _, err := s.gateway.List(ctx, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no assessments on record")
	}
	return s.Plan(ctx, items[0].ID)
}

// Delete removes every stored entry for an assessment.
func (s *Service) Delete(ctx context.Context, assessmentID uuid.UUID) error {
	return s.entries.DeleteByAssessment(ctx, assessmentID)
}
