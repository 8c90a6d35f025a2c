package admission

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"mdsidecar/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTryEnqueueBoundsTotalInFlight(t *testing.T) {
	// 2 workers + 1 extra queue slot = 3 queue permits total.
	c := NewController(2, 1, testLogger())

	var tickets []*Ticket
	for i := 0; i < 3; i++ {
		ticket, err := c.TryEnqueue()
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
		tickets = append(tickets, ticket)
	}

	_, err := c.TryEnqueue()
	var full *domain.QueueFullError
	if !errors.As(err, &full) {
		t.Fatalf("err = %v, want QueueFullError", err)
	}

	// Releasing one admits the next request.
	tickets[0].Done()
	ticket, err := c.TryEnqueue()
	if err != nil {
		t.Fatalf("enqueue after release: %v", err)
	}
	ticket.Done()
	for _, tk := range tickets[1:] {
		tk.Done()
	}
}

func TestAcquireWorkerBoundsExecution(t *testing.T) {
	c := NewController(1, 2, testLogger())

	t1, err := c.TryEnqueue()
	if err != nil {
		t.Fatal(err)
	}
	if err := t1.AcquireWorker(context.Background()); err != nil {
		t.Fatalf("first worker acquire: %v", err)
	}

	t2, err := c.TryEnqueue()
	if err != nil {
		t.Fatal(err)
	}

	// The single worker slot is taken; a cancelled wait reports disconnect.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = t2.AcquireWorker(ctx)
	var disconnected *domain.ClientDisconnectedError
	if !errors.As(err, &disconnected) {
		t.Fatalf("err = %v, want ClientDisconnectedError", err)
	}

	// Releasing the first ticket frees the slot immediately.
	t1.Done()
	if err := t2.AcquireWorker(context.Background()); err != nil {
		t.Fatalf("worker acquire after release: %v", err)
	}
	t2.Done()
}

func TestTicketDoneIsIdempotent(t *testing.T) {
	c := NewController(1, 0, testLogger())

	ticket, err := c.TryEnqueue()
	if err != nil {
		t.Fatal(err)
	}
	if err := ticket.AcquireWorker(context.Background()); err != nil {
		t.Fatal(err)
	}

	ticket.Done()
	ticket.Done() // second call must not release permits twice

	// Exactly one queue permit exists again, not two.
	t1, err := c.TryEnqueue()
	if err != nil {
		t.Fatalf("enqueue after done: %v", err)
	}
	if _, err := c.TryEnqueue(); err == nil {
		t.Fatal("double Done leaked an extra queue permit")
	}
	t1.Done()
}

func TestQueuePermitSurvivesFailedWorkerAcquire(t *testing.T) {
	c := NewController(1, 0, testLogger())

	t1, err := c.TryEnqueue()
	if err != nil {
		t.Fatal(err)
	}
	if err := t1.AcquireWorker(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Queue is full (capacity 1), but verify a ticket whose worker wait is
	// abandoned still releases its queue permit exactly once via Done.
	if err := t1.AcquireWorker(ctx); err == nil {
		// t1 already holds the worker slot; re-acquiring on a dead ctx must
		// not succeed. (Guards against accidental double-acquire.)
		t.Fatal("expected error acquiring on cancelled context")
	}
	t1.Done()

	t2, err := c.TryEnqueue()
	if err != nil {
		t.Fatalf("enqueue after done: %v", err)
	}
	if err := t2.AcquireWorker(context.Background()); err != nil {
		t.Fatalf("worker slot was not released: %v", err)
	}
	t2.Done()
}
