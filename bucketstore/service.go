package bucketstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type bucketStore struct {
	client *storage.Client
}

func NewBucketStore(c context.Context, opts ...option.ClientOption) (BucketStorer, func(), error) {
	storageClient, err := storage.NewClient(c, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating storage-client: %w", err)
	}
	return &bucketStore{
			client: storageClient,
		}, func() {
			storageClient.Close()
		}, nil
}

func (b *bucketStore) Put(c context.Context, bucketName string, object Object) error {
	writer := b.client.Bucket(bucketName).Object(object.Name).NewWriter(c)
	writer.ContentType = object.ContentType
	_, err := io.Copy(writer, bytes.NewReader(object.Data))
	if err != nil {
		writer.Close()
		return fmt.Errorf("Error uploading bucket object %s/%s: %w", bucketName, object.Name, err)
	}
	err = writer.Close()
	if err != nil {
		return fmt.Errorf("Error closing bucket object %s/%s: %w", bucketName, object.Name, err)
	}
	return nil
}

func (b *bucketStore) Get(c context.Context, bucketName, objectName string) (Object, error) {
	reader, err := b.client.Bucket(bucketName).Object(objectName).NewReader(c)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return Object{}, fmt.Errorf("Error reading bucket object %s/%s: %w", bucketName, objectName, ErrObjectNotFound)
	}
	if err != nil {
		return Object{}, fmt.Errorf("Error reading bucket object %s/%s: %w", bucketName, objectName, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return Object{}, fmt.Errorf("Error reading bucket object %s/%s: %w", bucketName, objectName, err)
	}
	return Object{
		Name:              objectName,
		ContentType:       reader.Attrs.ContentType,
		CreationTimestamp: reader.Attrs.LastModified,
		Data:              data,
	}, nil
}

func (b *bucketStore) ListMetaInfo(c context.Context, bucketName, prefix string) ([]Object, error) {
	objects := []Object{}
	it := b.client.Bucket(bucketName).Objects(c, &storage.Query{Prefix: prefix})
	for {
		objectAttrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Error fetching bucket objects of %s: %w", bucketName, err)
		}
		objects = append(objects, Object{
			Name:              objectAttrs.Name,
			ContentType:       objectAttrs.ContentType,
			CreationTimestamp: objectAttrs.Created,
		})
	}
	return objects, nil
}

func (b *bucketStore) Delete(c context.Context, bucketName, objectName string) error {
	err := b.client.Bucket(bucketName).Object(objectName).Delete(c)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("Error deleting bucket object %s/%s: %w", bucketName, objectName, ErrObjectNotFound)
	}
	if err != nil {
		return fmt.Errorf("Error deleting bucket object %s/%s: %w", bucketName, objectName, err)
	}
	return nil
}
