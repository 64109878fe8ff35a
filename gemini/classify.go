package gemini

import (
	"errors"
	"net/http"

	"github.com/CODEX19/FarmLink-Africa/retry"
	"google.golang.org/genai"
)

const statusResourceExhausted = "RESOURCE_EXHAUSTED"

// Classify tags Gemini API errors by their code and status. Errors that did not come
// from the API fall back to retry.Classify.
func Classify(err error) retry.Class {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == statusResourceExhausted {
			return retry.RateLimited
		}
		return retry.Other
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return Classify(*apiErrPtr)
	}

	return retry.Classify(err)
}
