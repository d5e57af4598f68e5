package repository

import (
	"context"

	"github.com/sakif/collab-studio/internal/model"
)

// SessionRepository is the storage boundary for sessions and their
// participants. Two implementations exist: sqlite (durable) and memory
// (process-lifetime). The service layer only sees this interface, so the
// backing can be swapped in one line of wiring.
//
// Every method is atomic with respect to a single session's data: callers
// never observe a session with a half-applied write.
type SessionRepository interface {
	// Create persists the session together with its initial participants
	// (the host). It fills in the session id, created-at timestamp, and
	// participant ids/joined-at timestamps. Always succeeds given a
	// reachable store.
	Create(ctx context.Context, session *model.Session) error

	// GetByID returns the session with participants in join order, or an
	// error wrapping apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Session, error)

	// AddParticipant appends a participant to an existing session and
	// returns the updated session. The participant's id and joined-at are
	// filled in here; IsHost is taken as given (the service always passes
	// false — the host only ever comes in through Create).
	AddParticipant(ctx context.Context, sessionID string, participant *model.Participant) (*model.Session, error)

	// UpdateCode overwrites the session's code buffer and language tag
	// together, so the buffer and its tag stay consistent at every
	// observation point. Returns not-found if the session doesn't exist.
	UpdateCode(ctx context.Context, sessionID, code, language string) error
}
