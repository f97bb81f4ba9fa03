package session

import (
	"context"
	"fmt"

	"github.com/ucna/ucna/internal/domain/assessment"
	"github.com/ucna/ucna/internal/schema"
)

// NavResult reports where a navigation attempt left the form.
type NavResult struct {
	Section   int                 `json:"section"`
	Progress  int                 `json:"progress"`
	Persisted bool                `json:"persisted"`
	Finished  bool                `json:"finished"`
	Errors    []schema.FieldError `json:"errors,omitempty"`
}

// Next validates the current section, flushes it through the gateway, and
// advances. Validation failure keeps the form in place and reports the field
// errors; nothing is persisted in that case. Advancing past the last section
// finishes the assessment instead.
func (m *Manager) Next(ctx context.Context, s *Session) (*NavResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := schema.SectionByNumber(s.current)
	if !ok {
		return nil, fmt.Errorf("no section at position %d", s.current)
	}

	data := s.data[sec.Key]
	if errs := schema.Validate(sec.Key, data); len(errs) > 0 {
		return &NavResult{Section: s.current, Progress: s.progressLocked(), Errors: errs}, nil
	}

	persisted, err := m.gateway.SaveSection(ctx, s.AssessmentID, sec.Key, data)
	if err != nil {
		return nil, err
	}
	s.completed[sec.Key] = true

	if s.current < schema.TotalSections {
		s.current++
		s.dirty = false
		return &NavResult{Section: s.current, Progress: s.progressLocked(), Persisted: persisted}, nil
	}

	return m.finishLocked(ctx, s, persisted)
}

// finishLocked runs the end-of-form flow once the last section has been
// accepted: the attachments record is flushed with it, the assessment is
// marked completed, and care-plan generation is kicked off. A generation
// failure is logged and swallowed; the assessment is already complete.
func (m *Manager) finishLocked(ctx context.Context, s *Session, persisted bool) (*NavResult, error) {
	attached, err := m.gateway.SaveSection(ctx, s.AssessmentID, schema.OptionalAttachments, s.data[schema.OptionalAttachments])
	if err != nil {
		return nil, err
	}
	s.completed[schema.OptionalAttachments] = true

	if _, err := m.gateway.GetOrCreate(ctx, s.AssessmentID); err != nil {
		return nil, err
	}
	if err := m.gateway.UpdateStatus(ctx, s.AssessmentID, assessment.StatusCompleted); err != nil {
		return nil, err
	}
	s.dirty = false

	if m.plans != nil {
		if err := m.plans.Generate(ctx, s.AssessmentID); err != nil {
			m.log.Warn().Err(err).
				Str("assessment_id", s.AssessmentID.String()).
				Msg("care plan generation failed")
		}
	}

	return &NavResult{
		Section:   s.current,
		Progress:  s.progressLocked(),
		Persisted: persisted || attached,
		Finished:  true,
	}, nil
}

// Previous steps back one section. Nothing is validated or persisted on the
// way back; the first section is the floor.
func (m *Manager) Previous(s *Session) *NavResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current > 1 {
		s.current--
	}
	return &NavResult{Section: s.current, Progress: s.progressLocked()}
}
