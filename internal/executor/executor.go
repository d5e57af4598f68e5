package executor

import (
	"context"
)

// ExecutionRequest represents a request to execute a code buffer.
type ExecutionRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// ExecutionResult represents the outcome of running code.
// ExecutionTime is in seconds — this mirrors the JSON contract the
// frontend expects.
type ExecutionResult struct {
	Success       bool    `json:"success"`
	Output        string  `json:"output"`
	Error         string  `json:"error,omitempty"`
	ExecutionTime float64 `json:"executionTime"`
}

// Executor is the seam between the HTTP surface and whatever actually runs
// the code. Today the only implementation is the mock; a real sandboxed
// engine (containers, firecracker, ...) would slot in behind this interface
// without touching the handlers.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}
