package datastore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("entity not found")

//go:generate mockgen -source=api.go -destination=gen_DataStorerMock.go -package=datastore github.com/CODEX19/FarmLink-Africa/datastore DataStorer

type DataStorer interface {
	Put(c context.Context, kind, uid string, value interface{}) error
	// Get loads the entity into value, a pointer to a struct. It returns ErrNotFound when absent.
	Get(c context.Context, kind, uid string, value interface{}) error
}
