// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → builds domain objects, orchestrates
//	Repository (Data layer)  → reads/writes to the store
//
// SessionService takes a repository.SessionRepository (interface), NOT a
// concrete *sqlite.DB. That's "programming to an interface": tests inject a
// mock, and main.go decides whether the backing is sqlite or in-memory.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/collab-studio/internal/model"
	"github.com/sakif/collab-studio/internal/repository"
)

// SessionService handles the session/participant lifecycle.
type SessionService struct {
	repo   repository.SessionRepository
	logger *slog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo repository.SessionRepository, logger *slog.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		logger: logger,
	}
}

// Create starts a new session with hostName as its one host participant.
//
// Language defaults to javascript when empty. An unknown language is not an
// error: the session keeps the caller's language string, and only the
// starter code falls back to the javascript template. Given valid strings
// and a reachable store, this never fails — there is nothing to validate.
func (s *SessionService) Create(ctx context.Context, hostName, language string) (*model.Session, error) {
	if language == "" {
		language = model.DefaultLanguage
	}

	session := &model.Session{
		Language: language,
		Code:     model.DefaultCode(language),
		Participants: []model.Participant{
			{Name: hostName, IsHost: true},
		},
	}

	// The repo fills ids and timestamps and persists session + host
	// atomically. A stored session always has at least its host.
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session",
			slog.String("host", hostName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("session created",
		slog.String("id", session.ID),
		slog.String("language", session.Language),
		slog.String("host", hostName),
	)

	return session, nil
}

// Get retrieves a session by id. Pure lookup — propagates the repo's
// not-found error untouched so the handler can map it to 404.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// Join adds a non-host participant to an existing session and returns the
// updated session. The host designation is immutable: joiners are always
// IsHost = false, no matter what, so a session keeps exactly one host for
// its whole lifetime.
func (s *SessionService) Join(ctx context.Context, sessionID, participantName string) (*model.Session, error) {
	participant := &model.Participant{
		Name:   participantName,
		IsHost: false,
	}

	session, err := s.repo.AddParticipant(ctx, sessionID, participant)
	if err != nil {
		return nil, err
	}

	s.logger.Info("participant joined",
		slog.String("session", sessionID),
		slog.String("participant", participant.ID),
		slog.Int("count", len(session.Participants)),
	)

	return session, nil
}

// UpdateCode overwrites the session's code buffer and language tag in one
// atomic store operation. Code content is intentionally NOT validated —
// people save half-written, broken code all the time, and that's fine.
// Racing updates resolve as last-committed-write-wins.
func (s *SessionService) UpdateCode(ctx context.Context, sessionID, code, language string) error {
	if err := s.repo.UpdateCode(ctx, sessionID, code, language); err != nil {
		return err
	}

	s.logger.Info("code updated",
		slog.String("session", sessionID),
		slog.String("language", language),
		slog.Int("bytes", len(code)),
	)

	return nil
}
