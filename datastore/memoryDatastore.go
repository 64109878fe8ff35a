package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// memoryDataStore keeps entities as json in memory. It is used for local runs
// without a cloud project.
type memoryDataStore struct {
	sync.RWMutex
	entities map[string][]byte
}

func NewMemoryStore() DataStorer {
	return &memoryDataStore{
		entities: map[string][]byte{},
	}
}

func (s *memoryDataStore) Put(c context.Context, kind, uid string, objectToStore interface{}) error {
	data, err := json.Marshal(objectToStore)
	if err != nil {
		return fmt.Errorf("Error creating entity %s-%s: %w", kind, uid, err)
	}

	s.Lock()
	defer s.Unlock()
	s.entities[entityKey(kind, uid)] = data
	return nil
}

func (s *memoryDataStore) Get(c context.Context, kind, uid string, objectToLoad interface{}) error {
	s.RLock()
	data, found := s.entities[entityKey(kind, uid)]
	s.RUnlock()

	if !found {
		return fmt.Errorf("Error fetching entity %s-%s: %w", kind, uid, ErrNotFound)
	}
	err := json.Unmarshal(data, objectToLoad)
	if err != nil {
		return fmt.Errorf("Error fetching entity %s-%s: %w", kind, uid, err)
	}
	return nil
}

func entityKey(kind, uid string) string {
	return kind + "/" + uid
}
