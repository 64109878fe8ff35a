// Package serialqueue serializes access to one shared backend: every submitted
// operation runs on a single worker goroutine, strictly in submission order.
//
// A failing or panicking operation only affects its own Future; the worker moves on
// to the next submission.
package serialqueue

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

type pendingOperation struct {
	c      context.Context
	op     Operation
	future *Future
}

// Queue is a FIFO of operations drained by one worker.
type Queue struct {
	logger *zap.Logger

	mu      sync.Mutex
	pending []*pendingOperation
	closed  bool

	wake    chan struct{}
	stopped chan struct{}
}

// New starts the worker. The owner must call Close to stop it.
func New(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		logger:  logger,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit enqueues op and returns without waiting for it.
func (q *Queue) Submit(c context.Context, op Operation) *Future {
	if op == nil {
		return settledFuture(nil, ErrNilOperation)
	}

	future := newFuture()

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		future.settle(nil, ErrQueueClosed)
		return future
	}
	q.pending = append(q.pending, &pendingOperation{c: c, op: op, future: future})
	q.mu.Unlock()

	q.signal()

	return future
}

// Len returns the number of operations waiting for their turn.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting submissions, lets the already queued ones run and waits
// for the worker to exit. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
	<-q.stopped
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) next() (*pendingOperation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil, q.closed
	}
	p := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return p, false
}

func (q *Queue) run() {
	defer close(q.stopped)

	for {
		p, closed := q.next()
		if p == nil {
			if closed {
				return
			}
			<-q.wake
			continue
		}
		q.execute(p)
	}
}

func (q *Queue) execute(p *pendingOperation) {
	var (
		result interface{}
		err    error
	)

	func() {
		defer func() {
			if r := recover(); r != nil {
				q.logger.Error("Operation panicked",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				result = nil
				err = fmt.Errorf("%w: %v", ErrOperationPanicked, r)
			}
		}()
		result, err = p.op(p.c)
	}()

	if err != nil {
		q.logger.Debug("Operation failed", zap.Error(err))
	}

	p.future.settle(result, err)
}
