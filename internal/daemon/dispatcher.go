package daemon

import (
	"context"

	"github.com/1broseidon/skindock/internal/docking"
)

// Dispatcher runs submitted closures one at a time on the goroutine that
// called Run. Everything touching the docking engine goes through it.
type Dispatcher struct {
	jobs chan func()
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{jobs: make(chan func())}
}

// Run executes jobs until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job := <-d.jobs:
			job()
		}
	}
}

// Do runs fn on the dispatcher goroutine and waits for its result. Engine
// precondition violations raised by fn are returned as errors.
func (d *Dispatcher) Do(ctx context.Context, fn func() error) error {
	_, err := run(ctx, d, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

type result[T any] struct {
	value T
	err   error
}

// run is Do for closures with a result. The value only reaches the caller
// through the job's channel, so a caller whose ctx expired never reads
// memory the job is still writing.
func run[T any](ctx context.Context, d *Dispatcher, fn func() (T, error)) (T, error) {
	done := make(chan result[T], 1)
	job := func() {
		var r result[T]
		r.err = call(func() (err error) {
			r.value, err = fn()
			return err
		})
		done <- r
	}

	var zero T
	select {
	case d.jobs <- job:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*docking.PreconditionError)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()
	return fn()
}
