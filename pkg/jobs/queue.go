package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 64
)

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

// WithBuffer sets how many jobs can wait before Submit starts failing.
func WithBuffer(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.buffer = n
		}
	}
}

// Queue executes jobs on a fixed pool of workers. Job records stay queryable
// after completion for the lifetime of the queue.
type Queue struct {
	executor Executor
	workers  int
	buffer   int

	mu      sync.RWMutex
	jobs    map[uuid.UUID]*Job
	pending chan uuid.UUID
	started bool
	closed  bool

	group *errgroup.Group
}

// NewQueue creates a queue. Call Start before submitting jobs.
func NewQueue(executor Executor, options ...QueueOption) *Queue {
	q := &Queue{
		executor: executor,
		workers:  defaultWorkers,
		buffer:   defaultBuffer,
		jobs:     make(map[uuid.UUID]*Job),
	}
	for _, opt := range options {
		opt(q)
	}
	return q
}

// Start launches the worker pool. The context bounds every job execution.
func (q *Queue) Start(ctx context.Context) error {
	if q.executor == nil {
		return errors.New("jobs: executor is required")
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return errors.New("jobs: queue already started")
	}
	q.started = true
	q.pending = make(chan uuid.UUID, q.buffer)

	group, ctx := errgroup.WithContext(ctx)
	q.group = group
	for i := 0; i < q.workers; i++ {
		group.Go(func() error {
			return q.work(ctx)
		})
	}
	return nil
}

// Submit enqueues a job and returns its id. It fails when the queue is not
// started, already closed, or full.
func (q *Queue) Submit(modelName string, parameters map[string]any) (uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.started || q.closed {
		return uuid.Nil, errors.New("jobs: queue is not accepting jobs")
	}

	job := &Job{
		ID:         uuid.New(),
		Model:      modelName,
		Parameters: parameters,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}

	// The send happens under the lock; Close also closes the channel under
	// the lock, so a closed check here is still valid at send time.
	select {
	case q.pending <- job.ID:
		q.jobs[job.ID] = job
		return job.ID, nil
	default:
		return uuid.Nil, fmt.Errorf("jobs: queue is full (%d pending)", q.buffer)
	}
}

// Job returns a snapshot of a job record.
func (q *Queue) Job(id uuid.UUID) (Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	job, ok := q.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Close stops accepting jobs, drains the pending queue and waits for the
// workers to finish.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.started || q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.pending)
	q.mu.Unlock()

	if err := q.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (q *Queue) work(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case id, ok := <-q.pending:
			if !ok {
				return nil
			}
			q.run(ctx, id)
		}
	}
}

func (q *Queue) run(ctx context.Context, id uuid.UUID) {
	q.mu.Lock()
	job, ok := q.jobs[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	snapshot := *job
	q.mu.Unlock()

	output, err := q.executor.Execute(ctx, snapshot)

	q.mu.Lock()
	defer q.mu.Unlock()
	job.FinishedAt = time.Now()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		return
	}
	job.Status = StatusSucceeded
	job.Output = output
}
