package serialqueue

import (
	"context"
)

// Future carries the outcome of one submitted operation.
type Future struct {
	done   chan struct{}
	result interface{}
	err    error
}

func newFuture() *Future {
	return &Future{
		done: make(chan struct{}),
	}
}

func settledFuture(result interface{}, err error) *Future {
	f := newFuture()
	f.settle(result, err)
	return f
}

func (f *Future) settle(result interface{}, err error) {
	f.result = result
	f.err = err
	close(f.done)
}

// Done is closed once the operation has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the operation settled or c is done. Giving up on c does not
// cancel the operation: it still runs when its turn comes.
func (f *Future) Await(c context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.result, f.err
	default:
	}

	select {
	case <-f.done:
		return f.result, f.err
	case <-c.Done():
		return nil, c.Err()
	}
}

// Do submits op and waits for its typed result.
func Do[T any](c context.Context, s Submitter, op func(c context.Context) (T, error)) (T, error) {
	var zero T

	result, err := s.Submit(c, func(c context.Context) (interface{}, error) {
		return op(c)
	}).Await(c)
	if err != nil {
		return zero, err
	}

	value, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return value, nil
}
