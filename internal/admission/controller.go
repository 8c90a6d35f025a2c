// Package admission bounds the conversion pipeline with two permit pools:
// a queue pool capping total in-flight requests (waiting + executing) and a
// worker pool capping simultaneously-executing conversions. Worker slots are
// the scarce resource; the queue pool lets the service absorb a bounded
// burst without admitting unbounded waiters.
package admission

import (
	"context"
	"log/slog"
	"sync"

	"mdsidecar/internal/domain"
)

// Controller owns the two permit pools shared by all requests.
type Controller struct {
	queue   *Pool
	workers *Pool
	logger  *slog.Logger
}

// NewController sizes the worker pool at maxConcurrent and the queue pool at
// maxConcurrent+maxQueued, mirroring the invariant that every executing
// request also holds a queue permit.
func NewController(maxConcurrent, maxQueued int, logger *slog.Logger) *Controller {
	return &Controller{
		queue:   NewPool(maxConcurrent + maxQueued),
		workers: NewPool(maxConcurrent),
		logger:  logger,
	}
}

// TryEnqueue is the arrival-time admission gate. It takes a queue permit
// without blocking; a depleted pool rejects the request before it performs
// any staging or disk I/O. The returned Ticket must be closed with Done.
func (c *Controller) TryEnqueue() (*Ticket, error) {
	if !c.queue.TryAcquire() {
		c.logger.Debug("queue permits exhausted, rejecting request")
		return nil, &domain.QueueFullError{}
	}
	return &Ticket{controller: c}, nil
}

// Ticket tracks the permits held by a single request. A ticket holds at most
// one queue permit and at most one worker permit; the worker permit is never
// held without the queue permit.
type Ticket struct {
	controller *Controller
	hasWorker  bool
	done       sync.Once
}

// AcquireWorker blocks until an execution slot is free. ctx should be the
// request context so a client disconnect aborts the wait; in that case the
// ticket stays valid (Done still releases the queue permit) and the error is
// the disconnect outcome.
func (t *Ticket) AcquireWorker(ctx context.Context) error {
	if err := t.controller.workers.Acquire(ctx); err != nil {
		return &domain.ClientDisconnectedError{}
	}
	t.hasWorker = true
	return nil
}

// Done releases the worker permit (if held) and then the queue permit.
// Safe to call from any exit path; only the first call releases.
func (t *Ticket) Done() {
	t.done.Do(func() {
		if t.hasWorker {
			t.controller.workers.Release()
			t.hasWorker = false
		}
		t.controller.queue.Release()
	})
}
