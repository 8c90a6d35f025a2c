package admission

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is a counting-semaphore permit pool. TryAcquire, Acquire and Release
// are the only mutation surface; capacity is fixed at construction.
type Pool struct {
	sem *semaphore.Weighted
}

func NewPool(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(capacity))}
}

// TryAcquire takes a permit without blocking. Returns false if the pool
// is depleted.
func (p *Pool) TryAcquire() bool {
	return p.sem.TryAcquire(1)
}

// Acquire blocks until a permit is free or ctx is done. The ctx is the
// cancellation signal: a request context cancelled by a client disconnect
// aborts the wait.
func (p *Pool) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release returns a permit to the pool.
func (p *Pool) Release() {
	p.sem.Release(1)
}
