// Package warehouse records the outcome of every advice request.
package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/CODEX19/FarmLink-Africa/bigquery"
	"github.com/CODEX19/FarmLink-Africa/datastore"
	"go.uber.org/zap"
)

const kind = "AdviceSummary"

type warehouse struct {
	logger  *zap.Logger
	nowFunc func() time.Time
	store   datastore.DataStorer
	sink    bigquery.BigQueryStorer
}

// New creates a warehouse on top of store. sink is optional: when set, every summary
// is also streamed to BigQuery.
func New(logger *zap.Logger, nowFunc func() time.Time, store datastore.DataStorer, sink bigquery.BigQueryStorer) Warehouser {
	return &warehouse{
		logger:  logger,
		nowFunc: nowFunc,
		store:   store,
		sink:    sink,
	}
}

type summaryRow struct {
	UID              string
	Operation        string
	Timestamp        time.Time
	Status           string
	ErrorMsg         string
	RetryCount       int64
	MaxRetryCount    int64
	RateLimitRetries int64
}

func (w *warehouse) Put(c context.Context, summary AdviceSummary) error {
	if summary.Timestamp.IsZero() {
		summary.Timestamp = w.nowFunc()
	}

	err := w.store.Put(c, kind, summary.UID, &summary)
	if err != nil {
		w.logger.Error("Error storing advice summary", zap.String("uid", summary.UID), zap.Error(err))
		return fmt.Errorf("Error storing advice summary %s: %w", summary.UID, err)
	}

	if w.sink != nil {
		err = w.sink.Put(c, summary.UID, summaryRow{
			UID:              summary.UID,
			Operation:        string(summary.Request.Operation),
			Timestamp:        summary.Timestamp,
			Status:           string(summary.Status),
			ErrorMsg:         summary.ErrorMsg,
			RetryCount:       int64(summary.Stats.RetryCount),
			MaxRetryCount:    int64(summary.Stats.MaxRetryCount),
			RateLimitRetries: int64(summary.Stats.RateLimitRetries),
		})
		if err != nil {
			w.logger.Warn("Error exporting advice summary", zap.String("uid", summary.UID), zap.Error(err))
		}
	}
	return nil
}

func (w *warehouse) Get(c context.Context, uid string) (AdviceSummary, error) {
	var summary AdviceSummary
	err := w.store.Get(c, kind, uid, &summary)
	if err != nil {
		return AdviceSummary{}, fmt.Errorf("Error fetching advice summary %s: %w", uid, err)
	}
	return summary, nil
}
