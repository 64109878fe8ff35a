package retry

import (
	"errors"
	"net/http"
	"strings"
)

const resourceExhausted = "RESOURCE_EXHAUSTED"

type statusCoder interface {
	StatusCode() int
}

type coder interface {
	Code() int
}

// Classify is the provider-neutral classifier: an error in the chain reporting
// status or code 429, or an error text mentioning 429 or RESOURCE_EXHAUSTED,
// is rate-limited.
func Classify(err error) Class {
	if err == nil {
		return Other
	}

	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusTooManyRequests {
		return RateLimited
	}

	var cc coder
	if errors.As(err, &cc) && cc.Code() == http.StatusTooManyRequests {
		return RateLimited
	}

	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, resourceExhausted) {
		return RateLimited
	}

	return Other
}
