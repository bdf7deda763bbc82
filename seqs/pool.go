package seqs

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Handle tracks the completion of one item submitted to ForEachAsync.
type Handle struct {
	done chan struct{}
	err  error
}

// Wait blocks until the item's action has finished and returns its error, if
// any. Errors are never raised eagerly - they surface only here.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// ForEachAsync runs the given action over every item, at most limit items at
// a time. A non-positive limit defaults to the number of usable CPUs. It
// returns one handle per item, in item order; completion order across handles
// is undefined.
func ForEachAsync[T any](ctx context.Context, limit int, items []T, action func(context.Context, T) error) []*Handle {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.NewWeighted(int64(limit))

	handles := make([]*Handle, len(items))
	for i, item := range items {
		h := &Handle{done: make(chan struct{})}
		handles[i] = h
		go func(item T, h *Handle) {
			defer close(h.done)
			if err := sem.Acquire(ctx, 1); err != nil {
				h.err = err
				return
			}
			defer sem.Release(1)
			h.err = action(ctx, item)
		}(item, h)
	}
	return handles
}
