/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore
// interface for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/typeconv/datastore"
)

// DataStore is an in-memory implementation of datastore.DataStore[T] for
// testing. Entities are stored as values keyed by string; errors can be
// injected per operation.
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	putError    error
	deleteError error
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// GetOne retrieves an entity by key; nil without error when absent,
// matching the ddb implementation.
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}
	return nil, nil
}

// Put stores an entity under the given key
func (m *DataStore[T]) Put(ctx context.Context, key string, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entity
	return nil
}

// Query lists stored entities in key order
func (m *DataStore[T]) Query(ctx context.Context, params *datastore.QueryParams) ([]*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if params != nil && params.Ascending != nil && !*params.Ascending {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}

	var results []*T
	for _, k := range keys {
		if params != nil && params.Limit != nil && len(results) >= int(*params.Limit) {
			break
		}
		entity := m.data[k]
		results = append(results, &entity)
	}
	return results, nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return fmt.Errorf("entity with key %q not found", key)
	}
	delete(m.data, key)
	return nil
}

var _ datastore.DataStore[struct{}] = (*DataStore[struct{}])(nil)
