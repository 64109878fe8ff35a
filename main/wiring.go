package main

import (
	"context"
	"fmt"
	"time"

	"github.com/CODEX19/FarmLink-Africa/advisor"
	"github.com/CODEX19/FarmLink-Africa/bigquery"
	"github.com/CODEX19/FarmLink-Africa/bucketstore"
	"github.com/CODEX19/FarmLink-Africa/config"
	"github.com/CODEX19/FarmLink-Africa/datastore"
	"github.com/CODEX19/FarmLink-Africa/gemini"
	"github.com/CODEX19/FarmLink-Africa/queue"
	"github.com/CODEX19/FarmLink-Africa/uniqueid"
	"github.com/CODEX19/FarmLink-Africa/warehouse"
	"go.uber.org/zap"
)

// newAdvisor wires the advisor to Gemini and to either the cloud or the in-memory stores.
// The returned cleanup closes the advisor first, then its dependencies.
func newAdvisor(c context.Context, logger *zap.Logger, cfg config.Config) (*advisor.Service, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	generator, gcleanup, err := gemini.NewClient(c, logger.Named("gemini"), cfg.APIKey, cfg.GeminiBaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating gemini-client: %w", err)
	}
	cleanups = append(cleanups, gcleanup)

	var (
		store     datastore.DataStorer
		bucket    bucketstore.BucketStorer
		sink      bigquery.BigQueryStorer
		taskQueue queue.TaskQueuer
	)

	if cfg.HasCloudProject() {
		var scleanup, bcleanup, qcleanup func()

		store, scleanup, err = datastore.NewStore(c, cfg.ProjectID)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, scleanup)

		bucket, bcleanup, err = bucketstore.NewBucketStore(c)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, bcleanup)

		if cfg.BigQueryDataset != "" {
			var bqcleanup func()
			sink, bqcleanup, err = bigquery.NewStore(c, cfg.ProjectID, cfg.BigQueryDataset, cfg.BigQueryTable)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			cleanups = append(cleanups, bqcleanup)
		}

		taskQueue, qcleanup, err = queue.NewQueue(c, logger.Named("queue"), cfg.QueueConfig())
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, qcleanup)
	} else {
		logger.Info("No cloud project configured: using in-memory stores, asynchronous advice disabled")
		store = datastore.NewMemoryStore()
		bucket = bucketstore.NewMemoryBucketStore(time.Now)
	}

	svc := advisor.NewService(logger.Named("advisor"),
		generator,
		uniqueid.NewGenerator(),
		warehouse.New(logger.Named("warehouse"), time.Now, store, sink),
		bucket,
		taskQueue,
		advisor.Options{
			Models:      cfg.Models(),
			Policy:      cfg.RetryPolicy(),
			AudioBucket: cfg.AudioBucket,
		})
	cleanups = append(cleanups, svc.Close)

	return svc, cleanup, nil
}
