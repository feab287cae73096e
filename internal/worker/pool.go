// Package worker provides a generic bounded worker pool for fan-out/fan-in
// over file paths. Used by the activity scanner to read many session logs
// concurrently.
package worker

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result pairs a processed value with its original index to preserve ordering.
type Result[T any] struct {
	Index int
	Item  string
	Value T
	Err   error
}

// Pool fans out work items to at most a fixed number of goroutines
// and collects results preserving the original input order.
type Pool[T any] struct {
	concurrency int
}

// NewPool creates a worker pool with the given concurrency.
// If concurrency <= 0, defaults to runtime.NumCPU().
func NewPool[T any](concurrency int) *Pool[T] {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Pool[T]{concurrency: concurrency}
}

// Concurrency reports the pool's worker limit.
func (p *Pool[T]) Concurrency() int {
	return p.concurrency
}

// Process applies fn to every item and returns results in input order.
// Errors from individual items are captured per-result rather than aborting
// the batch. The only error Process itself returns is ctx.Err() when ctx is
// cancelled before all items were dispatched.
func (p *Pool[T]) Process(ctx context.Context, items []string, fn func(context.Context, string) (T, error)) ([]Result[T], error) {
	if len(items) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.concurrency, len(items)))

	results := make([]Result[T], len(items))
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		i, item := i, item
		g.Go(func() error {
			val, err := fn(gctx, item)
			results[i] = Result[T]{Index: i, Item: item, Value: val, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
