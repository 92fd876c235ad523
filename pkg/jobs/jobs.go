// Package jobs runs parameterized render jobs on a bounded worker pool.
// A job pairs a model identifier with the parameter values collected from a
// form; the executor turns that pair into output bytes (typically by
// shelling out to a geometry engine).
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status tracks a job through its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one render request and its outcome.
type Job struct {
	ID         uuid.UUID      `json:"id"`
	Model      string         `json:"model"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Status     Status         `json:"status"`
	Error      string         `json:"error,omitempty"`
	Output     []byte         `json:"-"`
	CreatedAt  time.Time      `json:"createdAt"`
	StartedAt  time.Time      `json:"startedAt,omitempty"`
	FinishedAt time.Time      `json:"finishedAt,omitempty"`
}

// Done reports whether the job reached a terminal status.
func (j Job) Done() bool {
	return j.Status == StatusSucceeded || j.Status == StatusFailed
}

// Executor produces output for a job.
type Executor interface {
	Execute(ctx context.Context, job Job) ([]byte, error)
}

// ExecutorFunc adapts a function into an Executor.
type ExecutorFunc func(ctx context.Context, job Job) ([]byte, error)

// Execute delegates to the underlying function.
func (fn ExecutorFunc) Execute(ctx context.Context, job Job) ([]byte, error) {
	return fn(ctx, job)
}
