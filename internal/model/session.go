// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Session represents one shared coding session: a single code buffer, its
// language tag, and everyone who has joined.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. The field names below are the wire contract the
// frontend depends on — changing a tag is a breaking API change.
type Session struct {
	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"createdAt"`
	Language     string        `json:"language"`
	Code         string        `json:"code"`
	Participants []Participant `json:"participants"`
}

// Participant is a person attached to a Session — the host who created it,
// or someone who joined later.
//
// Exactly one participant per session has IsHost = true: the creator.
// The flag is set at creation time and never reassigned.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsHost   bool      `json:"isHost"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Host returns the session's host participant, or nil if the session has no
// participants (which should never happen for a stored session).
func (s *Session) Host() *Participant {
	for i := range s.Participants {
		if s.Participants[i].IsHost {
			return &s.Participants[i]
		}
	}
	return nil
}

// NewSessionID generates a session identifier.
//
// WHY 8 CHARACTERS?
// Session ids double as share codes — people paste them into chat or read
// them out loud. A full UUID (36 chars) is unwieldy for that, so we keep the
// first 8 hex characters. That's 16^8 ≈ 4.3 billion values, plenty for a
// service where sessions live for the length of an interview.
func NewSessionID() string {
	return uuid.NewString()[:8]
}

// NewParticipantID generates a participant identifier.
//
// xid ids are 20 chars, URL-safe, and sortable by creation time (they start
// with a timestamp). The sortability is a nice property here: ordering
// participants by id is consistent with join order even when two joins land
// in the same clock tick.
//
// Participant ids only need to be unique within one session; xid gives us
// global uniqueness for free, but nothing relies on it.
func NewParticipantID() string {
	return xid.New().String()
}
