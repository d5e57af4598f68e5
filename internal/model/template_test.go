package model

import (
	"strings"
	"testing"
)

func TestDefaultCode_KnownLanguages(t *testing.T) {
	// Every template ends with a self-test printing "Hello, World!" so the
	// first run in a fresh session produces visible output.
	languages := []string{"javascript", "typescript", "python", "java", "cpp"}

	for _, lang := range languages {
		t.Run(lang, func(t *testing.T) {
			code := DefaultCode(lang)
			if code == "" {
				t.Fatalf("DefaultCode(%q) returned empty template", lang)
			}
			if !strings.Contains(code, "Hello, World!") {
				t.Errorf("template for %q is missing the Hello, World! self-test", lang)
			}
			if !strings.Contains(code, "solution") {
				t.Errorf("template for %q is missing the solution function", lang)
			}
		})
	}
}

func TestDefaultCode_UnknownFallsBackToJavascript(t *testing.T) {
	tests := []string{"ruby", "brainfuck", "", "JavaScript"} // lookup is case-sensitive

	for _, lang := range tests {
		if got := DefaultCode(lang); got != defaultCode["javascript"] {
			t.Errorf("DefaultCode(%q) should fall back to the javascript template", lang)
		}
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if len(id) != 8 {
		t.Errorf("NewSessionID() = %q, want 8 characters", id)
	}

	// Not a uniqueness proof, just a sanity check that ids vary.
	if NewSessionID() == NewSessionID() {
		t.Error("two NewSessionID() calls returned the same value")
	}
}

func TestNewParticipantID_Sortable(t *testing.T) {
	// xid ids are time-ordered; consecutive ids from one process must not
	// collide and must sort in creation order (the participant-list order
	// tiebreak relies on this).
	a := NewParticipantID()
	b := NewParticipantID()
	if a == b {
		t.Fatal("two NewParticipantID() calls returned the same value")
	}
	if a > b {
		t.Errorf("participant ids not sorted by creation: %q > %q", a, b)
	}
}

func TestSessionHost(t *testing.T) {
	s := &Session{
		Participants: []Participant{
			{ID: "p1", Name: "Alice", IsHost: true},
			{ID: "p2", Name: "Bob"},
		},
	}

	host := s.Host()
	if host == nil {
		t.Fatal("Host() = nil, want the host participant")
	}
	if host.Name != "Alice" {
		t.Errorf("Host().Name = %q, want %q", host.Name, "Alice")
	}

	if (&Session{}).Host() != nil {
		t.Error("Host() on an empty session should be nil")
	}
}
