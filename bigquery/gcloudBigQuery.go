package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

type bigqueryStore struct {
	client  *bigquery.Client
	dataset string
	table   string
}

func NewStore(c context.Context, projectID, dataset, table string) (BigQueryStorer, func(), error) {
	client, err := bigquery.NewClient(c, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating bigquery-client: %w", err)
	}
	return &bigqueryStore{
			client:  client,
			dataset: dataset,
			table:   table,
		}, func() {
			client.Close()
		}, nil
}

func (s *bigqueryStore) Put(c context.Context, uid string, objectToStore interface{}) error {
	err := s.client.Dataset(s.dataset).Table(s.table).Inserter().Put(c, objectToStore)
	if err != nil {
		return fmt.Errorf("Error creating record %s in %s.%s: %w", uid, s.dataset, s.table, err)
	}
	return nil
}
