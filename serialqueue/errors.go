package serialqueue

import "errors"

var (
	// ErrQueueClosed settles submissions made after Close.
	ErrQueueClosed = errors.New("serial queue is closed")

	// ErrOperationPanicked settles the future of an operation that panicked.
	ErrOperationPanicked = errors.New("operation panicked")

	// ErrNilOperation settles a submission without an operation.
	ErrNilOperation = errors.New("nil operation submitted")
)
