package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider responded with status %d", e.status)
}

func (e *statusError) StatusCode() int {
	return e.status
}

type codeError struct {
	code int
}

func (e codeError) Error() string {
	return "quota problem"
}

func (e codeError) Code() int {
	return e.code
}

type durationRange struct {
	min time.Duration
	max time.Duration
}

func (r durationRange) Matches(x interface{}) bool {
	d, ok := x.(time.Duration)
	return ok && d >= r.min && d < r.max
}

func (r durationRange) String() string {
	return fmt.Sprintf("duration in [%s, %s)", r.min, r.max)
}

func between(min, max time.Duration) gomock.Matcher {
	return durationRange{min: min, max: max}
}

func TestRetryExhaustsBudgetOnRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sleeper := NewMockSleeper(ctrl)
	gomock.InOrder(
		sleeper.EXPECT().Sleep(gomock.Any(), between(2*time.Second, 3*time.Second)).Return(nil),
		sleeper.EXPECT().Sleep(gomock.Any(), between(4*time.Second, 5*time.Second)).Return(nil),
		sleeper.EXPECT().Sleep(gomock.Any(), between(8*time.Second, 9*time.Second)).Return(nil),
	)

	rateLimited := &statusError{status: 429}
	attempts := 0
	var delays []time.Duration

	policy := DefaultPolicy()
	policy.Sleeper = sleeper
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		assert.Equal(t, len(delays)+1, attempt)
		assert.Equal(t, rateLimited, err)
		delays = append(delays, delay)
	}

	_, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		attempts++
		return "", rateLimited
	})

	assert.Equal(t, 4, attempts)
	assert.True(t, err == error(rateLimited), "original error must be returned unchanged")
	require.Len(t, delays, 3)
	assert.True(t, delays[0] < delays[1])
	assert.True(t, delays[1] < delays[2])
}

func TestRetryPropagatesTerminalErrorsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sleeper := NewMockSleeper(ctrl) // no calls expected

	serverError := &statusError{status: 500}
	attempts := 0

	policy := DefaultPolicy()
	policy.Sleeper = sleeper

	_, err := Do(context.Background(), policy, func(c context.Context) (int, error) {
		attempts++
		return 0, serverError
	})

	assert.Equal(t, 1, attempts)
	assert.True(t, errors.Is(err, serverError))
}

func TestRetrySucceedsFirstTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	policy := DefaultPolicy()
	policy.Sleeper = NewMockSleeper(ctrl)
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		t.Fatalf("Unexpected retry %d", attempt)
	}

	result, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		return "3 insights", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "3 insights", result)
}

func TestRetryRecoversAfterTwoRateLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sleeper := NewMockSleeper(ctrl)
	sleeper.EXPECT().Sleep(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	attempts := 0
	policy := DefaultPolicy()
	policy.Sleeper = sleeper

	result, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		attempts++
		if attempts <= 2 {
			return "", &statusError{status: 429}
		}
		return "market is up", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "market is up", result)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsWhenContextIsDoneDuringBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sleeper := NewMockSleeper(ctrl)
	sleeper.EXPECT().Sleep(gomock.Any(), gomock.Any()).Return(context.Canceled)

	rateLimited := errors.New("RESOURCE_EXHAUSTED: quota exceeded")
	attempts := 0

	policy := DefaultPolicy()
	policy.Sleeper = sleeper

	_, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		attempts++
		return "", rateLimited
	})

	assert.Equal(t, 1, attempts)
	assert.Equal(t, rateLimited, err)
}

func TestRetryDelaysDoubleWithoutJitter(t *testing.T) {
	var delays []time.Duration

	policy := Policy{
		Retries:   3,
		BaseDelay: time.Millisecond,
		Jitter:    func(max time.Duration) time.Duration { return 0 },
		OnRetry: func(attempt int, delay time.Duration, err error) {
			delays = append(delays, delay)
		},
	}

	_, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		return "", codeError{code: 429}
	})

	assert.Error(t, err)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}, delays)
}

func TestRetryClampsBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sleeper := NewMockSleeper(ctrl)
	sleeper.EXPECT().Sleep(gomock.Any(), gomock.Any()).Return(nil).Times(MaxRetries)

	var delays []time.Duration
	attempts := 0

	policy := Policy{
		Retries:   1000,
		BaseDelay: 24 * time.Hour,
		Sleeper:   sleeper,
		Jitter:    func(max time.Duration) time.Duration { return 0 },
		OnRetry: func(attempt int, delay time.Duration, err error) {
			delays = append(delays, delay)
		},
	}

	_, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		attempts++
		return "", codeError{code: 429}
	})

	assert.Error(t, err)
	assert.Equal(t, MaxRetries+1, attempts)
	for i := 1; i < len(delays); i++ {
		assert.Greater(t, delays[i], delays[i-1])
	}
}

func TestRetryWithoutBaseDelayUsesDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sleeper := NewMockSleeper(ctrl)
	sleeper.EXPECT().Sleep(gomock.Any(), DefaultBaseDelay).Return(nil)

	policy := Policy{
		Retries: 1,
		Sleeper: sleeper,
		Jitter:  func(max time.Duration) time.Duration { return 0 },
	}

	_, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		return "", codeError{code: 429}
	})
	assert.Error(t, err)
}

func TestRetryWithZeroBudget(t *testing.T) {
	attempts := 0
	policy := DefaultPolicy()
	policy.Retries = 0

	_, err := Do(context.Background(), policy, func(c context.Context) (string, error) {
		attempts++
		return "", &statusError{status: 429}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestTimerSleeper(t *testing.T) {
	assert.NoError(t, TimerSleeper{}.Sleep(context.Background(), time.Millisecond))

	c, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, TimerSleeper{}.Sleep(c, time.Hour))
}

func TestUniformJitter(t *testing.T) {
	assert.Equal(t, time.Duration(0), UniformJitter(0))
	for i := 0; i < 100; i++ {
		j := UniformJitter(time.Second)
		assert.True(t, j >= 0 && j < time.Second)
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Class
	}{
		{name: "nil", err: nil, expected: Other},
		{name: "Status 429", err: &statusError{status: 429}, expected: RateLimited},
		{name: "Wrapped status 429", err: fmt.Errorf("Error calling provider: %w", &statusError{status: 429}), expected: RateLimited},
		{name: "Code 429", err: codeError{code: 429}, expected: RateLimited},
		{name: "Text mentions 429", err: errors.New("googleapi: Error 429: Too Many Requests"), expected: RateLimited},
		{name: "Resource exhausted marker", err: errors.New("rpc error: code = RESOURCE_EXHAUSTED"), expected: RateLimited},
		{name: "Status 500", err: &statusError{status: 500}, expected: Other},
		{name: "Code 401", err: codeError{code: 401}, expected: Other},
		{name: "Unrelated", err: errors.New("connection reset by peer"), expected: Other},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.err))
		})
	}
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "rate-limited", RateLimited.String())
	assert.Equal(t, "other", Other.String())
}
