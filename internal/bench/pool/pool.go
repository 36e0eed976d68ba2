// Package pool implements a bounded, order-preserving goroutine pool.
//
// Map runs one function over a slice of inputs on at most Workers goroutines
// and returns the outputs in input order. The first failing task cancels the
// remaining work and no partial results are returned.
package pool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool bounds the number of goroutines Map may use.
//
// A Pool holds no goroutines between calls; each Map call starts its workers
// and waits for all of them before returning.
type Pool struct {
	workers int
	onDone  func()
}

// Option configures a Pool.
type Option func(*Pool)

// WithTaskDone registers a callback run after every successful task.
// It is called concurrently from worker goroutines.
func WithTaskDone(fn func()) Option {
	return func(p *Pool) {
		p.onDone = fn
	}
}

// New creates a pool with the given number of workers.
// If workers is <= 0, runtime.NumCPU() is used.
func New(workers int, opts ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{workers: workers}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sequential creates a pool that runs every task on the calling goroutine.
func Sequential(opts ...Option) *Pool {
	return New(1, opts...)
}

// Workers returns the concurrency bound.
func (p *Pool) Workers() int {
	return p.workers
}

// TaskError reports which task of a batch failed.
type TaskError struct {
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %d: %v", e.Index, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Map applies fn to every item and returns the results in input order.
//
// The returned slice is never nil on success, even for empty input. On the
// first error, the context passed to running tasks is cancelled, no further
// tasks are started and Map returns a *TaskError. If ctx is cancelled before
// all tasks finish, Map returns ctx.Err().
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	if p.workers == 1 {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return nil, &TaskError{Index: i, Err: err}
			}
			results[i] = r
			p.taskDone()
		}
		return results, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		next     atomic.Int64
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	workers := min(p.workers, len(items))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(items) || runCtx.Err() != nil {
					return
				}

				r, err := fn(runCtx, items[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = &TaskError{Index: i, Err: err}
						cancel()
					})
					return
				}
				// Each index is claimed by exactly one worker.
				results[i] = r
				p.taskDone()
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pool) taskDone() {
	if p.onDone != nil {
		p.onDone()
	}
}
