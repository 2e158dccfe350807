package storage

import (
	"context"
	"encoding/json"
	"time"

	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// JSONCollectionStore bridges a byte store to whole-collection JSON documents
type JSONCollectionStore struct {
	store   ports.KeyValueStore
	metrics ports.MetricsCollector
}

// NewJSONCollectionStore wraps a KeyValueStore. metrics may be nil.
func NewJSONCollectionStore(store ports.KeyValueStore, metrics ports.MetricsCollector) *JSONCollectionStore {
	return &JSONCollectionStore{
		store:   store,
		metrics: metrics,
	}
}

// Load decodes the named collection into target. It reports false when nothing is stored yet.
func (c *JSONCollectionStore) Load(ctx context.Context, name string, target interface{}) (bool, error) {
	start := time.Now()
	data, err := c.store.Get(ctx, name)
	if err != nil {
		if errors.IsNotFoundError(err) {
			c.record("load", true, start)
			return false, nil
		}
		c.record("load", false, start)
		return false, err
	}

	if err := json.Unmarshal(data, target); err != nil {
		c.record("load", false, start)
		return false, errors.NewStorageError("failed to decode collection "+name, err)
	}

	c.record("load", true, start)
	return true, nil
}

// Save replaces the named collection with value
func (c *JSONCollectionStore) Save(ctx context.Context, name string, value interface{}) error {
	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		c.record("save", false, start)
		return errors.NewStorageError("failed to encode collection "+name, err)
	}

	if err := c.store.Set(ctx, name, data); err != nil {
		c.record("save", false, start)
		return err
	}

	c.record("save", true, start)
	return nil
}

func (c *JSONCollectionStore) Remove(ctx context.Context, name string) error {
	start := time.Now()
	err := c.store.Delete(ctx, name)
	c.record("remove", err == nil, start)
	return err
}

func (c *JSONCollectionStore) record(operation string, success bool, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordStoreOperation(operation, success, time.Since(start))
	}
}

// NewMemoryCollectionStore returns a JSON collection store over fresh process memory
func NewMemoryCollectionStore() *JSONCollectionStore {
	return NewJSONCollectionStore(NewMemoryStore(), nil)
}
