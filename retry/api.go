package retry

import (
	"context"
	"time"
)

// Class tags a failed attempt.
type Class int

const (
	// Other errors are terminal and propagated at once.
	Other Class = iota
	// RateLimited errors are retried while budget remains.
	RateLimited
)

func (c Class) String() string {
	if c == RateLimited {
		return "rate-limited"
	}
	return "other"
}

// Classifier decides the Class of an error returned by an attempt.
type Classifier func(err error) Class

//go:generate mockgen -source=api.go -destination=gen_SleeperMock.go -package=retry github.com/CODEX19/FarmLink-Africa/retry Sleeper

// Sleeper waits between attempts. It returns early with an error when c is done.
type Sleeper interface {
	Sleep(c context.Context, d time.Duration) error
}

// Policy configures one retrying call.
type Policy struct {
	// Retries is the number of retries after the first attempt.
	Retries int
	// BaseDelay is the wait before the first retry; it doubles for every next one.
	BaseDelay time.Duration
	// MaxJitter bounds the random delay added to every wait: [0, MaxJitter).
	MaxJitter time.Duration

	Classify Classifier
	Sleeper  Sleeper
	Jitter   func(max time.Duration) time.Duration

	// OnRetry is called before every wait.
	OnRetry func(attempt int, delay time.Duration, err error)
}
