// Package advisor answers FarmLink advice requests with Gemini. All model calls of a
// service share one serial queue, and every call retries rate-limited responses while
// holding its place in that queue.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/CODEX19/FarmLink-Africa/bucketstore"
	"github.com/CODEX19/FarmLink-Africa/gemini"
	"github.com/CODEX19/FarmLink-Africa/queue"
	"github.com/CODEX19/FarmLink-Africa/retry"
	"github.com/CODEX19/FarmLink-Africa/serialqueue"
	"github.com/CODEX19/FarmLink-Africa/uniqueid"
	"github.com/CODEX19/FarmLink-Africa/warehouse"
	"go.uber.org/zap"
)

const (
	audioObjectPrefix = "speech/"
	audioContentType  = "audio/wav"
)

type Options struct {
	Models      gemini.Models
	Policy      retry.Policy
	AudioBucket string
}

type Service struct {
	logger       *zap.Logger
	queue        *serialqueue.Queue
	policy       retry.Policy
	models       gemini.Models
	generator    gemini.ContentGenerator
	uidGenerator uniqueid.Generator
	warehouse    warehouse.Warehouser
	bucketStore  bucketstore.BucketStorer
	audioBucket  string
	taskQueue    queue.TaskQueuer
}

// NewService starts the serial queue of the service; Close stops it. bucketStore and
// taskQueue are optional: without a task queue AdviseAsync returns ErrAsyncNotConfigured.
func NewService(logger *zap.Logger, generator gemini.ContentGenerator, uidGenerator uniqueid.Generator,
	warehouse warehouse.Warehouser, bucketStore bucketstore.BucketStorer, taskQueue queue.TaskQueuer, opts Options) *Service {
	policy := opts.Policy
	if policy.Classify == nil {
		policy.Classify = gemini.Classify
	}
	return &Service{
		logger:       logger,
		queue:        serialqueue.New(logger.Named("serialqueue")),
		policy:       policy,
		models:       opts.Models,
		generator:    generator,
		uidGenerator: uidGenerator,
		warehouse:    warehouse,
		bucketStore:  bucketStore,
		audioBucket:  opts.AudioBucket,
		taskQueue:    taskQueue,
	}
}

// Close lets the queued model calls finish and stops the queue.
func (s *Service) Close() {
	s.queue.Close()
}

// Advise runs req under a freshly generated uid; a uid supplied by the caller is ignored.
func (s *Service) Advise(c context.Context, req advice.Request) (advice.Response, error) {
	err := req.Validate()
	if err != nil {
		return advice.Response{}, err
	}
	req.UID = s.uidGenerator.Generate()

	return s.advise(c, req, warehouse.Stats{}, false)
}

// advise runs a request whose uid is already owned by this service.
func (s *Service) advise(c context.Context, req advice.Request, stats warehouse.Stats, redeliverable bool) (advice.Response, error) {
	err := req.Validate()
	if err != nil {
		s.record(c, req, advice.Response{}, err, stats, false)
		return advice.Response{}, err
	}

	logger := s.logger.With(zap.String("uid", req.UID), zap.String("operation", string(req.Operation)))

	calls := &callStats{}
	resp, err := s.dispatch(c, calls, req)
	if err == nil && len(resp.Audio) > 0 {
		resp.AudioObject, err = s.storeAudio(c, req.UID, resp.Audio)
	}

	stats.RateLimitRetries = int(calls.rateLimitRetries.Load())
	s.record(c, req, resp, err, stats, redeliverable)

	if err != nil {
		logger.Warn("Advice failed", zap.Int("rateLimitRetries", stats.RateLimitRetries), zap.Error(err))
		return advice.Response{}, err
	}

	logger.Info("Advice completed", zap.Int("rateLimitRetries", stats.RateLimitRetries))
	return resp, nil
}

func (s *Service) dispatch(c context.Context, stats *callStats, req advice.Request) (advice.Response, error) {
	resp := advice.Response{UID: req.UID, Operation: req.Operation}

	var err error
	switch req.Operation {
	case advice.DeepChat:
		resp.Text, err = s.deepChat(c, stats, req.Message, req.History)
	case advice.FastInsights:
		resp.Text, err = s.fastInsights(c, stats, req.Location, req.Crops)
	case advice.AgriInsights:
		resp.Text = s.agriInsights(c, stats, req.Location, req.Crops)
	case advice.NearbyAgriNodes:
		resp.Text, resp.Sources, err = s.nearbyAgriNodes(c, stats, req.Latitude, req.Longitude)
	case advice.CalendarSuggestions:
		resp.Text, resp.Suggestions, err = s.calendarSuggestions(c, stats, req.Location, req.Crops)
	case advice.BuyingTips:
		resp.Text, err = s.buyingTips(c, stats, req.Location)
	case advice.NeuralSpeech:
		resp.Audio, err = s.neuralSpeech(c, stats, req.Text)
	default:
		err = fmt.Errorf("%w: unknown operation '%s'", advice.ErrInvalidRequest, req.Operation)
	}
	return resp, err
}

// willRedeliver tells whether a failed task attempt is worth another delivery by the task queue.
func (s *Service) willRedeliver(err error, redeliverable bool) bool {
	return err != nil && redeliverable && s.policy.Classify(err) == retry.RateLimited
}

func (s *Service) record(c context.Context, req advice.Request, resp advice.Response, err error, stats warehouse.Stats, redeliverable bool) {
	summary := warehouse.AdviceSummary{
		UID:     req.UID,
		Status:  warehouse.Completed,
		Request: req,
		Stats:   stats,
	}
	switch {
	case err == nil:
		summary.Response = &resp
	case s.willRedeliver(err, redeliverable):
		summary.Status = warehouse.Pending
		summary.ErrorMsg = err.Error()
	default:
		summary.Status = warehouse.Failed
		summary.ErrorMsg = err.Error()
	}

	// the warehouse logs its own failures; they never fail the advice
	_ = s.warehouse.Put(c, summary)
}

func (s *Service) AdviseAsync(c context.Context, req advice.Request) (string, error) {
	if s.taskQueue == nil {
		return "", ErrAsyncNotConfigured
	}

	err := req.Validate()
	if err != nil {
		return "", err
	}
	req.UID = s.uidGenerator.Generate()

	taskPayload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("Error marshalling advice request: %w", err)
	}

	// pending before enqueue, so a fast task can never be overwritten by it
	err = s.warehouse.Put(c, warehouse.AdviceSummary{UID: req.UID, Status: warehouse.Pending, Request: req})
	if err != nil {
		return "", err
	}

	err = s.taskQueue.Enqueue(c, queue.Task{
		UID:            req.UID,
		WebhookURLPath: taskEndpointURL,
		Payload:        taskPayload,
	})
	if err != nil {
		_ = s.warehouse.Put(c, warehouse.AdviceSummary{UID: req.UID, Status: warehouse.Failed, Request: req, ErrorMsg: err.Error()})
		return "", fmt.Errorf("Error submitting %s to queue: %w", req.String(), err)
	}

	s.logger.Info("Successfully enqueued", zap.String("uid", req.UID), zap.String("operation", string(req.Operation)))

	return req.UID, nil
}

func (s *Service) Lookup(c context.Context, uid string) (warehouse.AdviceSummary, error) {
	return s.warehouse.Get(c, uid)
}

func audioObjectName(uid string) string {
	return audioObjectPrefix + uid + ".wav"
}

func (s *Service) storeAudio(c context.Context, uid string, wav []byte) (string, error) {
	if s.bucketStore == nil {
		return "", nil
	}
	name := audioObjectName(uid)
	err := s.bucketStore.Put(c, s.audioBucket, bucketstore.Object{
		Name:        name,
		ContentType: audioContentType,
		Data:        wav,
	})
	if err != nil {
		return "", fmt.Errorf("Error storing audio of %s: %w", uid, err)
	}
	return name, nil
}

func (s *Service) Audio(c context.Context, uid string) ([]byte, error) {
	if s.bucketStore == nil {
		return nil, fmt.Errorf("Error fetching audio of %s: %w", uid, bucketstore.ErrObjectNotFound)
	}
	object, err := s.bucketStore.Get(c, s.audioBucket, audioObjectName(uid))
	if err != nil {
		return nil, err
	}
	return object.Data, nil
}

func (s *Service) ListAudio(c context.Context) ([]bucketstore.Object, error) {
	if s.bucketStore == nil {
		return []bucketstore.Object{}, nil
	}
	return s.bucketStore.ListMetaInfo(c, s.audioBucket, audioObjectPrefix)
}

func (s *Service) DeleteAudio(c context.Context, uid string) error {
	if s.bucketStore == nil {
		return fmt.Errorf("Error deleting audio of %s: %w", uid, bucketstore.ErrObjectNotFound)
	}
	return s.bucketStore.Delete(c, s.audioBucket, audioObjectName(uid))
}
