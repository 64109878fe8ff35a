package queue

import (
	"context"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
}

//go:generate mockgen -source=api.go -destination=gen_TaskQueuerMock.go -package=queue github.com/CODEX19/FarmLink-Africa/queue TaskQueuer

type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
	// IsLastAttempt returns the dispatch count of the task and the maximum number of
	// attempts of the queue; -1 when the queue sets no limit or it could not be determined.
	IsLastAttempt(c context.Context, taskUID string) (int32, int32)
}
