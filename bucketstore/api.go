package bucketstore

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("bucket object not found")

type Object struct {
	Name              string
	ContentType       string
	CreationTimestamp time.Time
	Data              []byte
}

//go:generate mockgen -source=api.go -destination=gen_BucketStorerMock.go -package=bucketstore github.com/CODEX19/FarmLink-Africa/bucketstore BucketStorer

type BucketStorer interface {
	Put(c context.Context, bucketName string, object Object) error
	// Get returns ErrObjectNotFound when the object does not exist.
	Get(c context.Context, bucketName, objectName string) (Object, error)
	// ListMetaInfo returns the objects whose name starts with prefix, without data.
	ListMetaInfo(c context.Context, bucketName, prefix string) ([]Object, error)
	Delete(c context.Context, bucketName, objectName string) error
}
