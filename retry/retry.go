// Package retry wraps one outbound call with bounded exponential backoff for
// rate-limited responses. It does not serialize anything; callers combine it with
// serialqueue so that the retries of a call hold its queue slot.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

const (
	DefaultRetries   = 3
	DefaultBaseDelay = 2000 * time.Millisecond
	DefaultMaxJitter = 1000 * time.Millisecond

	// MaxRetries bounds the budget of a policy; larger budgets are clamped.
	MaxRetries = 10
)

// DefaultPolicy retries rate-limited calls 3 times, waiting 2s, 4s and 8s plus up to 1s jitter.
func DefaultPolicy() Policy {
	return Policy{
		Retries:   DefaultRetries,
		BaseDelay: DefaultBaseDelay,
		MaxJitter: DefaultMaxJitter,
		Classify:  Classify,
		Sleeper:   TimerSleeper{},
		Jitter:    UniformJitter,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Classify == nil {
		p.Classify = Classify
	}
	if p.Sleeper == nil {
		p.Sleeper = TimerSleeper{}
	}
	if p.Jitter == nil {
		p.Jitter = UniformJitter
	}
	if p.Retries < 0 {
		p.Retries = 0
	}
	if p.Retries > MaxRetries {
		p.Retries = MaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// Do runs requestFn until it succeeds, fails with an error that is not rate-limited,
// or the retry budget is spent. The error of the last attempt is returned as is.
// When c is done during a wait, Do stops and returns that last error.
func Do[T any](c context.Context, p Policy, requestFn func(c context.Context) (T, error)) (T, error) {
	var zero T

	p = p.withDefaults()
	retries := p.Retries
	delay := p.BaseDelay

	for attempt := 1; ; attempt++ {
		result, err := requestFn(c)
		if err == nil {
			return result, nil
		}

		if retries <= 0 || p.Classify(err) != RateLimited {
			return zero, err
		}

		wait := delay + p.Jitter(p.MaxJitter)
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}
		if sleepErr := p.Sleeper.Sleep(c, wait); sleepErr != nil {
			return zero, err
		}

		retries--
		if delay <= math.MaxInt64/2 {
			delay *= 2
		}
	}
}

// UniformJitter returns a random duration in [0, max).
func UniformJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max)))
}

// TimerSleeper sleeps on a timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(c context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-c.Done():
		return c.Err()
	}
}
