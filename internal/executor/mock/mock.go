// Package mock provides a stand-in code executor.
//
// It performs NO interpretation whatsoever: it sleeps for a fixed delay to
// feel like a real run, then reports success with a canned output embedding
// the language and the code length. A production deployment replaces this
// with a real sandboxed execution engine behind the same interface.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/collab-studio/internal/executor"
)

var _ executor.Executor = (*Executor)(nil)

// DefaultDelay is the simulated execution time.
const DefaultDelay = 500 * time.Millisecond

// Executor simulates code execution with a fixed delay.
type Executor struct {
	delay  time.Duration
	logger *slog.Logger
}

// New creates a mock executor. A negative delay is treated as zero
// (useful in tests, where nobody wants to wait half a second per case).
func New(delay time.Duration, logger *slog.Logger) *Executor {
	if delay < 0 {
		delay = 0
	}
	return &Executor{
		delay:  delay,
		logger: logger,
	}
}

// Execute waits the configured delay and returns a canned success result.
// The delay honours context cancellation so an aborted HTTP request
// doesn't leave a goroutine sleeping for nothing.
func (e *Executor) Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	start := time.Now()

	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	e.logger.Debug("mock execution completed",
		slog.String("language", req.Language),
		slog.Int("codeLength", len(req.Code)),
	)

	return &executor.ExecutionResult{
		Success:       true,
		Output:        fmt.Sprintf("[Mock Output] Executed %s code.\nCode length: %d", req.Language, len(req.Code)),
		ExecutionTime: time.Since(start).Seconds(),
	}, nil
}
