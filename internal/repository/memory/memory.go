// Package memory implements the session repository as a process-lifetime
// map. It exists for non-durable deployments and for tests: same external
// contract as the sqlite backing, nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sakif/collab-studio/internal/apperror"
	"github.com/sakif/collab-studio/internal/model"
	"github.com/sakif/collab-studio/internal/repository"
)

var _ repository.SessionRepository = (*Store)(nil)

// Store is an in-memory SessionRepository.
//
// OWNERSHIP & COPYING:
// The map values are private to the store. Every method deep-copies sessions
// on the way in and out, so callers can never mutate store state through a
// returned pointer — the same isolation a database gives you for free.
//
// The mutex is held for the whole of each operation, which makes every
// operation atomic with respect to a single session's data (mirroring the
// sqlite backing's transactions).
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
	}
}

// clone deep-copies a session, including its participant slice.
func clone(s *model.Session) *model.Session {
	copied := *s
	copied.Participants = make([]model.Participant, len(s.Participants))
	copy(copied.Participants, s.Participants)
	return &copied
}

// Create stores the session, filling ids and timestamps like the sqlite
// backing does.
func (s *Store) Create(_ context.Context, session *model.Session) error {
	session.ID = model.NewSessionID()
	session.CreatedAt = time.Now().UTC()
	for i := range session.Participants {
		session.Participants[i].ID = model.NewParticipantID()
		session.Participants[i].JoinedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = clone(session)
	return nil
}

// GetByID returns a copy of the session, or not-found.
func (s *Store) GetByID(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NotFound("session", id)
	}
	return clone(session), nil
}

// AddParticipant appends a participant to an existing session. The append
// happens under the write lock, so concurrent joins serialise and the slice
// order is the commit order.
func (s *Store) AddParticipant(_ context.Context, sessionID string, participant *model.Participant) (*model.Session, error) {
	participant.ID = model.NewParticipantID()
	participant.JoinedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperror.NotFound("session", sessionID)
	}
	session.Participants = append(session.Participants, *participant)
	return clone(session), nil
}

// UpdateCode overwrites code and language together. Both fields change
// under one lock acquisition — readers never see a half-applied pair.
func (s *Store) UpdateCode(_ context.Context, sessionID, code, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return apperror.NotFound("session", sessionID)
	}
	session.Code = code
	session.Language = language
	return nil
}
