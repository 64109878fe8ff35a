package advisor

import (
	"context"
	"errors"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/CODEX19/FarmLink-Africa/bucketstore"
	"github.com/CODEX19/FarmLink-Africa/warehouse"
)

var (
	ErrNoAudio            = errors.New("no neural audio stream received")
	ErrAsyncNotConfigured = errors.New("asynchronous advice is not configured")
	ErrEmptyResponse      = errors.New("empty response from model")
)

//go:generate mockgen -source=api.go -destination=gen_AdvisorMock.go -package=advisor github.com/CODEX19/FarmLink-Africa/advisor Advisor

type Advisor interface {
	Advise(c context.Context, req advice.Request) (advice.Response, error)
	// AdviseAsync enqueues req and returns the uid under which its outcome is recorded.
	AdviseAsync(c context.Context, req advice.Request) (string, error)
	Lookup(c context.Context, uid string) (warehouse.AdviceSummary, error)
	Audio(c context.Context, uid string) ([]byte, error)
	ListAudio(c context.Context) ([]bucketstore.Object, error)
	DeleteAudio(c context.Context, uid string) error
}
