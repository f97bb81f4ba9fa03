// Package session holds the in-progress form state for open assessments and
// drives navigation between sections. Persistence goes through the
// assessment gateway; nothing here talks to storage directly.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ucna/ucna/internal/schema"
)

// Session is the working state of one open assessment form. Field edits
// accumulate here and are flushed section-by-section as the user advances.
type Session struct {
	AssessmentID uuid.UUID

	mu        sync.Mutex
	current   int
	data      map[schema.SectionKey]map[string]string
	completed map[schema.SectionKey]bool
	dirty     bool
}

func newSession(id uuid.UUID) *Session {
	return &Session{
		AssessmentID: id,
		current:      1,
		data:         make(map[schema.SectionKey]map[string]string),
		completed:    make(map[schema.SectionKey]bool),
	}
}

// SetFields merges values into the named section's working data. Empty
// values overwrite so a user can clear a field before it is flushed.
func (s *Session) SetFields(key schema.SectionKey, values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.data[key]
	if rec == nil {
		rec = make(map[string]string)
		s.data[key] = rec
	}
	for k, v := range values {
		rec[k] = v
	}
	s.dirty = true
}

// SetCompleted marks a section complete or clears the flag, independent of
// navigation. Advancing past a section still marks it complete; this is how
// a user unticks a section to come back to, or restores the tick.
func (s *Session) SetCompleted(key schema.SectionKey, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if completed {
		s.completed[key] = true
		return
	}
	delete(s.completed, key)
}

// SectionData returns a copy of the working data for one section.
func (s *Session) SectionData(key schema.SectionKey) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data[key]))
	for k, v := range s.data[key] {
		out[k] = v
	}
	return out
}

// Current returns the 1-based number of the section the form is on.
func (s *Session) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dirty reports whether the session holds edits not yet flushed to storage.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Progress is the share of numbered sections completed, as a rounded
// percentage.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Session) progressLocked() int {
	done := 0
	for key, ok := range s.completed {
		if !ok {
			continue
		}
		if sec, found := schema.SectionByKey(key); found && sec.Number > 0 {
			done++
		}
	}
	return (done*100 + schema.TotalSections/2) / schema.TotalSections
}

// CompletedSections lists the numbered sections marked complete, useful for
// rendering the progress rail.
func (s *Session) CompletedSections() []schema.SectionKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []schema.SectionKey
	for _, key := range schema.Keys() {
		sec, ok := schema.SectionByKey(key)
		if !ok || sec.Number == 0 {
			continue
		}
		if s.completed[key] {
			keys = append(keys, key)
		}
	}
	return keys
}
