// Package taskpool runs fire-and-forget side effects on a bounded pool of
// workers. Failures are logged, never retried and never surfaced to the code
// that submitted the task, so a slow or broken downstream dependency cannot
// abort a committed business transaction.
package taskpool

import (
	"context"
	"log/slog"
	"sync"
)

type task struct {
	operation string
	attrs     []any
	run       func(context.Context) error
}

// Pool is a bounded worker pool for post-commit side effects.
// Submit blocks when the queue is full (backpressure instead of unbounded
// goroutine growth), and Shutdown drains the queue deterministically so tests
// can assert on completed side effects.
type Pool struct {
	queue  chan task
	logger *slog.Logger
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New creates a pool with the given number of workers and queue capacity.
func New(workers, queueSize int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		queue:  make(chan task, queueSize),
		logger: logger.With("component", "task_pool"),
	}

	for range workers {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		p.runOne(t)
	}
}

func (p *Pool) runOne(t task) {
	defer func() {
		if r := recover(); r != nil {
			args := append([]any{"operation", t.operation, "panic", r}, t.attrs...)
			p.logger.Error("Side effect panicked", args...)
		}
	}()

	if err := t.run(context.Background()); err != nil {
		args := append([]any{"operation", t.operation, "error", err}, t.attrs...)
		p.logger.Error("Side effect failed", args...)
	}
}

// Submit enqueues a side effect. The attrs are slog key-value pairs included
// when the task fails, typically assignment and booking identifiers.
// Tasks submitted after Shutdown are dropped with a warning.
func (p *Pool) Submit(operation string, run func(context.Context) error, attrs ...any) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		args := append([]any{"operation", operation}, attrs...)
		p.logger.Warn("Side effect dropped, pool is shut down", args...)
		return
	}

	p.queue <- task{operation: operation, attrs: attrs, run: run}
}

// Shutdown stops accepting tasks, drains the queue and waits for all workers
// to finish. Safe to call once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}
