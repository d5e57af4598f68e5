package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/collab-studio/internal/executor"
)

// ExecuteHandler handles code execution requests.
type ExecuteHandler struct {
	exec   executor.Executor
	logger *slog.Logger
}

// NewExecuteHandler creates a new ExecuteHandler.
func NewExecuteHandler(exec executor.Executor, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		exec:   exec,
		logger: logger,
	}
}

// HandleExecute runs a code buffer through the configured executor.
//
// HTTP: POST /api/execute
// BODY: {"code": "...", "language": "python"}
// → 200 with {success, output, error?, executionTime}.
//
// The handler doesn't know or care that the current executor is a mock —
// the same endpoint serves a real engine when one exists.
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req executor.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid execution request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "code cannot be empty",
		})
		return
	}

	h.logger.Info("executing code",
		slog.String("language", req.Language),
		slog.Int("codeLength", len(req.Code)),
	)

	result, err := h.exec.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("code execution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "internal server error during execution",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
