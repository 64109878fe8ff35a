package bucketstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryBucketStore struct {
	sync.RWMutex
	nowFunc func() time.Time
	buckets map[string]map[string]Object
}

// NewMemoryBucketStore keeps objects in memory. It is used for local runs without a cloud project.
func NewMemoryBucketStore(nowFunc func() time.Time) BucketStorer {
	return &memoryBucketStore{
		nowFunc: nowFunc,
		buckets: map[string]map[string]Object{},
	}
}

func (b *memoryBucketStore) Put(c context.Context, bucketName string, object Object) error {
	b.Lock()
	defer b.Unlock()

	bucket, found := b.buckets[bucketName]
	if !found {
		bucket = map[string]Object{}
		b.buckets[bucketName] = bucket
	}
	object.CreationTimestamp = b.nowFunc()
	object.Data = append([]byte{}, object.Data...)
	bucket[object.Name] = object
	return nil
}

func (b *memoryBucketStore) Get(c context.Context, bucketName, objectName string) (Object, error) {
	b.RLock()
	defer b.RUnlock()

	object, found := b.buckets[bucketName][objectName]
	if !found {
		return Object{}, fmt.Errorf("Error reading bucket object %s/%s: %w", bucketName, objectName, ErrObjectNotFound)
	}
	object.Data = append([]byte{}, object.Data...)
	return object, nil
}

func (b *memoryBucketStore) ListMetaInfo(c context.Context, bucketName, prefix string) ([]Object, error) {
	b.RLock()
	defer b.RUnlock()

	objects := []Object{}
	for name, object := range b.buckets[bucketName] {
		if strings.HasPrefix(name, prefix) {
			object.Data = nil
			objects = append(objects, object)
		}
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Name < objects[j].Name
	})
	return objects, nil
}

func (b *memoryBucketStore) Delete(c context.Context, bucketName, objectName string) error {
	b.Lock()
	defer b.Unlock()

	if _, found := b.buckets[bucketName][objectName]; !found {
		return fmt.Errorf("Error deleting bucket object %s/%s: %w", bucketName, objectName, ErrObjectNotFound)
	}
	delete(b.buckets[bucketName], objectName)
	return nil
}
