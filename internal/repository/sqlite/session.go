package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/collab-studio/internal/apperror"
	"github.com/sakif/collab-studio/internal/model"
	"github.com/sakif/collab-studio/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// Verifies at compile time that *DB implements repository.SessionRepository.
// If a method is missing or has the wrong signature, the build fails here
// instead of at some distant call site.
var _ repository.SessionRepository = (*DB)(nil)

// Create inserts a session and its initial participants in one transaction.
//
// The session arrives from the service with language, code, and participant
// names/roles filled in; this layer generates ids and timestamps and
// persists everything. The transaction guarantees nobody can ever observe a
// session row without its host participant.
func (db *DB) Create(ctx context.Context, session *model.Session) error {
	session.ID = model.NewSessionID()
	session.CreatedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning create transaction: %w", err)
	}
	// Rollback is a no-op after a successful Commit, so deferring it is the
	// standard way to clean up every early-return error path at once.
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, language, code)
		 VALUES (?, ?, ?, ?)`,
		session.ID,
		session.CreatedAt,
		session.Language,
		session.Code,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating session: %w", err)
	}

	for i := range session.Participants {
		p := &session.Participants[i]
		p.ID = model.NewParticipantID()
		p.JoinedAt = time.Now().UTC()

		_, err = tx.ExecContext(ctx,
			`INSERT INTO participants (id, session_id, name, is_host, joined_at)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID,
			session.ID,
			p.Name,
			p.IsHost,
			p.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing session create: %w", err)
	}

	return nil
}

// GetByID retrieves a session with its participants in join order.
// Returns an error wrapping apperror.ErrNotFound if no session has that id.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, created_at, language, code
		 FROM sessions
		 WHERE id = ?`,
		id,
	).Scan(
		&session.ID,
		&session.CreatedAt,
		&session.Language,
		&session.Code,
	)
	if err != nil {
		// sql.ErrNoRows is not a real failure — it means "no such session".
		// Translate it to the domain error so the handler returns 404.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("session", id)
		}
		return nil, fmt.Errorf("sqlite: getting session %s: %w", id, err)
	}

	participants, err := db.listParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Participants = participants

	return &session, nil
}

// listParticipants loads a session's participants in join order.
//
// ORDER BY rowid: the table keeps its implicit rowid, which increases with
// every insert — so rowid order IS commit order. Ordering by joined_at
// would tie when two joins land in the same clock tick; rowid never ties.
func (db *DB) listParticipants(ctx context.Context, sessionID string) ([]model.Participant, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, is_host, joined_at
		 FROM participants
		 WHERE session_id = ?
		 ORDER BY rowid ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing participants for %s: %w", sessionID, err)
	}
	defer rows.Close()

	participants := make([]model.Participant, 0, 4)
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.IsHost, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning participant row: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating participants: %w", err)
	}

	return participants, nil
}

// AddParticipant appends a participant to an existing session.
//
// The existence check and the insert run in one transaction, so a
// participant can never be attached to a session that a concurrent writer
// is about to make disappear, and the append is atomic with respect to
// other joins (commit order = join order).
func (db *DB) AddParticipant(ctx context.Context, sessionID string, participant *model.Participant) (*model.Session, error) {
	participant.ID = model.NewParticipantID()
	participant.JoinedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning join transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE id = ?`, sessionID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking session %s: %w", sessionID, err)
	}
	if exists == 0 {
		return nil, apperror.NotFound("session", sessionID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO participants (id, session_id, name, is_host, joined_at)
		 VALUES (?, ?, ?, ?, ?)`,
		participant.ID,
		sessionID,
		participant.Name,
		participant.IsHost,
		participant.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: adding participant to %s: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing join: %w", err)
	}

	return db.GetByID(ctx, sessionID)
}

// UpdateCode overwrites a session's code buffer and language tag together.
//
// A single UPDATE statement is already atomic — readers see either the old
// (code, language) pair or the new one, never a mix. RowsAffected == 0
// means the WHERE clause matched nothing → the session doesn't exist.
func (db *DB) UpdateCode(ctx context.Context, sessionID, code, language string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE sessions
		 SET code = ?, language = ?
		 WHERE id = ?`,
		code,
		language,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating code for %s: %w", sessionID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("session", sessionID)
	}

	return nil
}
