package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collab-studio/internal/config"
	"github.com/sakif/collab-studio/internal/executor/mock"
	"github.com/sakif/collab-studio/internal/model"
	"github.com/sakif/collab-studio/internal/server"
)

// newTestRouter builds the real router over the in-memory store with a
// zero-delay mock executor — the full HTTP stack, no sockets, no disk.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := config.Default()
	cfg.Storage.Driver = "memory"

	srv, err := server.New(cfg, logger, mock.New(0, logger))
	require.NoError(t, err, "creating test server")

	return srv.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeSession(t *testing.T, rr *httptest.ResponseRecorder) model.Session {
	t.Helper()
	var s model.Session
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&s), "decoding session response")
	return s
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/sessions",
		`{"hostName":"TestHost","language":"python"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)

	s := decodeSession(t, rr)
	assert.Len(t, s.ID, 8)
	assert.Equal(t, "python", s.Language)
	assert.Contains(t, s.Code, "Hello, World!")
	require.Len(t, s.Participants, 1)
	assert.Equal(t, "TestHost", s.Participants[0].Name)
	assert.True(t, s.Participants[0].IsHost)
	assert.False(t, s.Participants[0].JoinedAt.IsZero())
}

func TestCreateSession_DefaultLanguage(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/sessions", `{"hostName":"NoLang"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	s := decodeSession(t, rr)
	assert.Equal(t, "javascript", s.Language)
}

func TestCreateSession_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/sessions", `{"hostName":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/sessions/nonexist", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not_found")
}

func TestJoinSession_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/sessions/nonexist/join",
		`{"participantName":"Ghost"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateCode_PathBodyMismatch(t *testing.T) {
	router := newTestRouter(t)

	// Create a real session so the only problem is the mismatched ids.
	created := decodeSession(t, doJSON(t, router, http.MethodPost, "/api/sessions",
		`{"hostName":"host"}`))

	body := fmt.Sprintf(`{"sessionId":"%s","code":"x","language":"python","updatedBy":"host"}`,
		created.ID)
	rr := doJSON(t, router, http.MethodPut, "/api/sessions/otherid1/code", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "validation_error")

	// The mismatch must be rejected before the store is touched: the
	// session named in the body keeps its original code.
	after := decodeSession(t, doJSON(t, router, http.MethodGet, "/api/sessions/"+created.ID, ""))
	assert.Equal(t, created.Code, after.Code)
}

func TestUpdateCode_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPut, "/api/sessions/nonexist/code",
		`{"sessionId":"nonexist","code":"x","language":"python","updatedBy":"nobody"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPIRoot(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "running")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate at least one request so the counters exist.
	doJSON(t, router, http.MethodGet, "/api", "")

	rr := doJSON(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")
}

// The full lifecycle: create → join → update code → read back → execute.
func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create with a host.
	rr := doJSON(t, router, http.MethodPost, "/api/sessions",
		`{"hostName":"HostUser","language":"python"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeSession(t, rr)
	require.Len(t, created.Participants, 1)
	assert.Equal(t, "HostUser", created.Participants[0].Name)
	assert.True(t, created.Participants[0].IsHost)

	// A guest joins.
	rr = doJSON(t, router, http.MethodPost, "/api/sessions/"+created.ID+"/join",
		`{"participantName":"GuestUser"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	joined := decodeSession(t, rr)
	require.Len(t, joined.Participants, 2)
	assert.Equal(t, "GuestUser", joined.Participants[1].Name)
	assert.False(t, joined.Participants[1].IsHost)

	// The host updates the buffer.
	body := fmt.Sprintf(`{"sessionId":"%s","code":"print('Hello from Host')","language":"python","updatedBy":"HostUser"}`,
		created.ID)
	rr = doJSON(t, router, http.MethodPut, "/api/sessions/"+created.ID+"/code", body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Code updated successfully")

	// Everyone reads the new buffer back.
	rr = doJSON(t, router, http.MethodGet, "/api/sessions/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	fetched := decodeSession(t, rr)
	assert.Equal(t, "print('Hello from Host')", fetched.Code)
	assert.Equal(t, "python", fetched.Language)
	assert.Len(t, fetched.Participants, 2)

	// And "runs" it.
	rr = doJSON(t, router, http.MethodPost, "/api/execute",
		`{"code":"print('Hello from Host')","language":"python"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var result struct {
		Success       bool    `json:"success"`
		Output        string  `json:"output"`
		ExecutionTime float64 `json:"executionTime"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.True(t, strings.Contains(result.Output, "[Mock Output]"),
		"output should carry the mock execution marker, got %q", result.Output)
	assert.Contains(t, result.Output, "python")
}
