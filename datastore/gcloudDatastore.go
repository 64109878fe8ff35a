package datastore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
)

type gcloudDataStore struct {
	client *datastore.Client
}

func NewStore(c context.Context, projectID string) (DataStorer, func(), error) {
	client, err := datastore.NewClient(c, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating datastore-client: %w", err)
	}
	return &gcloudDataStore{
			client: client,
		}, func() {
			client.Close()
		}, nil
}

func (s *gcloudDataStore) Put(c context.Context, kind, uid string, objectToStore interface{}) error {
	_, err := s.client.Put(c, datastore.NameKey(kind, uid, nil), objectToStore)
	if err != nil {
		return fmt.Errorf("Error creating entity %s-%s: %w", kind, uid, err)
	}
	return nil
}

func (s *gcloudDataStore) Get(c context.Context, kind, uid string, objectToLoad interface{}) error {
	err := s.client.Get(c, datastore.NameKey(kind, uid, nil), objectToLoad)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return fmt.Errorf("Error fetching entity %s-%s: %w", kind, uid, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("Error fetching entity %s-%s: %w", kind, uid, err)
	}
	return nil
}
