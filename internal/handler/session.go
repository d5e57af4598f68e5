package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/collab-studio/internal/apperror"
	"github.com/sakif/collab-studio/internal/service"
)

// SessionHandler exposes the session lifecycle over HTTP.
//
// Handlers only do HTTP things: decode the body, call exactly one service
// method, encode the result. Status-code mapping for domain errors lives in
// writeError, so every endpoint fails the same way.
type SessionHandler struct {
	service *service.SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// Request bodies. Defined as unexported structs per endpoint — the wire
// shapes are part of the API contract, and keeping them next to their
// handlers makes that contract easy to audit.

type createSessionRequest struct {
	HostName string `json:"hostName"`
	Language string `json:"language"` // optional, defaults to javascript
}

type joinSessionRequest struct {
	ParticipantName string `json:"participantName"`
}

type codeUpdateRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
	Language  string `json:"language"`
	// UpdatedBy is accepted for frontend compatibility but not persisted —
	// attribution is not modelled on the server.
	UpdatedBy string `json:"updatedBy"`
}

// HandleCreate starts a new session.
//
// HTTP: POST /api/sessions
// BODY: {"hostName": "Alice", "language": "python"}
// → 201 with the full Session, including the one host participant.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid create session JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	session, err := h.service.Create(r.Context(), req.HostName, req.Language)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// HandleGet returns a session by id.
//
// HTTP: GET /api/sessions/{id}
// → 200 with the Session, or 404 if the id is unknown.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	session, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleJoin adds a participant to a session.
//
// HTTP: POST /api/sessions/{id}/join
// BODY: {"participantName": "Bob"}
// → 200 with the updated Session (participant appended), or 404.
func (h *SessionHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req joinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid join session JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	session, err := h.service.Join(r.Context(), id, req.ParticipantName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleUpdateCode overwrites a session's code buffer and language.
//
// HTTP: PUT /api/sessions/{id}/code
// BODY: {"sessionId": "...", "code": "...", "language": "...", "updatedBy": "..."}
//
// The body carries the session id redundantly; if it disagrees with the
// path, the request is rejected BEFORE any store call — a mismatch means
// the client is confused and we shouldn't guess which id it meant.
func (h *SessionHandler) HandleUpdateCode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req codeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid code update JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	if req.SessionID != id {
		writeError(w, apperror.ValidationFailed("sessionId",
			"session id in body does not match URL path"))
		return
	}

	if err := h.service.UpdateCode(r.Context(), id, req.Code, req.Language); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Code updated successfully"})
}
