package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucna/ucna/internal/domain/assessment"
)

// PlanGenerator triggers care-plan generation for a finished assessment.
// Generation is best effort: the form flow never fails because of it.
type PlanGenerator interface {
	Generate(ctx context.Context, assessmentID uuid.UUID) error
}

// Manager owns the open sessions, one per assessment. Loading a session
// prefills it with whatever has already been persisted, so a user picking an
// assessment back up sees their earlier answers.
type Manager struct {
	gateway *assessment.Service
	plans   PlanGenerator
	log     zerolog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager(gateway *assessment.Service, plans PlanGenerator, log zerolog.Logger) *Manager {
	return &Manager{
		gateway:  gateway,
		plans:    plans,
		log:      log,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Load returns the session for an assessment, creating and prefilling it on
// first access. The assessment record itself is created lazily by the
// gateway when the first non-empty save lands.
func (m *Manager) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	s = newSession(id)
	snap, err := m.gateway.SnapshotOf(ctx, id)
	if err == nil {
		for key, rec := range snap.Sections {
			data := make(map[string]string, len(rec))
			for k, v := range rec {
				data[k] = v
			}
			s.data[key] = data
		}
	} else if !errors.Is(err, assessment.ErrNotFound) {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id]; ok {
		return existing, nil
	}
	m.sessions[id] = s
	return s, nil
}

// Close drops a session from memory. Unflushed edits are discarded.
func (m *Manager) Close(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
