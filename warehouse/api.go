package warehouse

import (
	"context"
	"time"

	"github.com/CODEX19/FarmLink-Africa/advice"
)

type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
	Failed    Status = "failed"
)

// Stats describes the attempts spent on one advice request.
type Stats struct {
	// RetryCount and MaxRetryCount are the task queue dispatch count and attempt limit
	// of an asynchronous request. A MaxRetryCount below 1 means there is no limit.
	RetryCount    int32
	MaxRetryCount int32
	// RateLimitRetries counts the backoff retries of the provider call itself.
	RateLimitRetries int
}

func (s Stats) IsLastAttempt() bool {
	return s.MaxRetryCount > 0 && s.RetryCount >= s.MaxRetryCount
}

type AdviceSummary struct {
	UID       string
	Timestamp time.Time
	Status    Status
	Request   advice.Request
	Response  *advice.Response
	ErrorMsg  string `datastore:",noindex"`
	Stats     Stats
}

//go:generate mockgen -source=api.go -destination=gen_WarehouserMock.go -package=warehouse github.com/CODEX19/FarmLink-Africa/warehouse Warehouser

type Warehouser interface {
	Put(c context.Context, summary AdviceSummary) error
	// Get returns an error wrapping datastore.ErrNotFound for unknown uids.
	Get(c context.Context, uid string) (AdviceSummary, error)
}
