package serialqueue

import (
	"context"
)

// Operation is one unit of work. It runs on the queue's worker, never concurrently
// with another operation of the same queue.
type Operation func(c context.Context) (interface{}, error)

// Submitter accepts operations and runs them one at a time, in submission order.
type Submitter interface {
	Submit(c context.Context, op Operation) *Future
}
