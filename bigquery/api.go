package bigquery

import "context"

//go:generate mockgen -source=api.go -destination=gen_BigQueryStorerMock.go -package=bigquery github.com/CODEX19/FarmLink-Africa/bigquery BigQueryStorer

// BigQueryStorer streams rows into one table.
type BigQueryStorer interface {
	Put(c context.Context, uid string, value interface{}) error
}
