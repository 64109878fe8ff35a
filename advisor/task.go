package advisor

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/CODEX19/FarmLink-Africa/warehouse"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	taskEndpointBaseURL    = "/_ah/tasks"
	taskEndpointAdvisePath = "/advise"

	taskEndpointURL = taskEndpointBaseURL + taskEndpointAdvisePath
)

// RegisterEndPoint registers the handler that Cloud Tasks pushes asynchronous requests to.
func (s *Service) RegisterEndPoint(router *mux.Router) *mux.Router {
	subRouter := router.PathPrefix(taskEndpointBaseURL).Subrouter()
	subRouter.HandleFunc(taskEndpointAdvisePath, s.dequeue()).Methods("POST")
	return router
}

func (s *Service) dequeue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		var req advice.Request
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			s.logger.Error("Error parsing json task payload", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.UID == "" {
			s.logger.Error("Task payload without uid", zap.String("operation", string(req.Operation)))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// collect statistics
		stats := warehouse.Stats{}
		if s.taskQueue != nil {
			stats.RetryCount, stats.MaxRetryCount = s.taskQueue.IsLastAttempt(c, req.UID)
		}

		w.WriteHeader(s.doAdvise(c, req, stats))
	}
}

// doAdvise answers 503 only for rate-limited failures that the task queue will deliver
// again. Everything else is final and acknowledged with 200.
func (s *Service) doAdvise(c context.Context, req advice.Request, stats warehouse.Stats) int {
	redeliverable := !stats.IsLastAttempt()

	_, err := s.advise(c, req, stats, redeliverable)
	if s.willRedeliver(err, redeliverable) {
		return http.StatusServiceUnavailable
	}
	if err != nil {
		s.logger.Error("Giving up on advice request",
			zap.String("uid", req.UID),
			zap.Int32("attempt", stats.RetryCount),
			zap.Int32("maxAttempts", stats.MaxRetryCount),
			zap.Error(err))
	}
	return http.StatusOK
}
