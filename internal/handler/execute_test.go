package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/collab-studio/internal/executor"
	"github.com/sakif/collab-studio/internal/handler"
)

// stubExecutor captures the request and returns whatever it's told to.
type stubExecutor struct {
	CapturedReq executor.ExecutionRequest
	ReturnRes   *executor.ExecutionResult
	ReturnErr   error
}

func (s *stubExecutor) Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	s.CapturedReq = req
	if s.ReturnErr != nil {
		return nil, s.ReturnErr
	}
	return s.ReturnRes, nil
}

func TestExecuteHandler_HandleExecute(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	t.Run("valid execution", func(t *testing.T) {
		stub := &stubExecutor{
			ReturnRes: &executor.ExecutionResult{
				Success:       true,
				Output:        "[Mock Output] Executed python code.\nCode length: 20",
				ExecutionTime: 0.5,
			},
		}

		h := handler.NewExecuteHandler(stub, logger)

		reqBody := `{"code":"print('Hello World')","language":"python"}`
		req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.HandleExecute(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res executor.ExecutionResult
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Contains(t, res.Output, "[Mock Output]")

		assert.Equal(t, "print('Hello World')", stub.CapturedReq.Code)
		assert.Equal(t, "python", stub.CapturedReq.Language)
	})

	t.Run("invalid request body", func(t *testing.T) {
		h := handler.NewExecuteHandler(&stubExecutor{}, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewBufferString(`{"code":`))
		rr := httptest.NewRecorder()

		h.HandleExecute(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty code", func(t *testing.T) {
		h := handler.NewExecuteHandler(&stubExecutor{}, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewBufferString(`{"code":"","language":"python"}`))
		rr := httptest.NewRecorder()

		h.HandleExecute(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("executor failure", func(t *testing.T) {
		stub := &stubExecutor{ReturnErr: errors.New("engine exploded")}
		h := handler.NewExecuteHandler(stub, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewBufferString(`{"code":"x","language":"python"}`))
		rr := httptest.NewRecorder()

		h.HandleExecute(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		// Internal details stay in the logs, not the body.
		assert.NotContains(t, rr.Body.String(), "exploded")
	})
}
