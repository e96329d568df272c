/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/typeconv/typedesc"
)

var (
	shapes = make(map[string]*typedesc.Shape)
	byType = make(map[reflect.Type]string)
	mu     sync.RWMutex
)

// RegisterShape registers a pre-built aggregate shape under its name.
// If a shape is already registered for the name, it panics to prevent
// accidental overrides.
func RegisterShape(shape *typedesc.Shape) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := shapes[shape.Name]; exists {
		panic(fmt.Sprintf("type registry: aggregate %q already registered", shape.Name))
	}
	shapes[shape.Name] = shape
	if shape.Type != nil {
		byType[shape.Type] = shape.Name
	}
}

// RegisterAggregate derives an aggregate shape from the struct type T and
// registers it under the given name. Field names come from json tags (or
// the Go field name), pointer and omitempty fields are optional, and field
// descriptors are derived from the Go field types. Fields whose declared
// type cannot be derived (generic fields, unions) must be overridden with
// WithFieldType. Registration mistakes panic: they are programmer errors
// made during initialization, not runtime conditions.
func RegisterAggregate[T any](name string, opts ...AggregateOption) *typedesc.Shape {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("type registry: aggregate %q must be a struct, got %s", name, t))
	}

	cfg := aggregateConfig{
		fieldTypes: make(map[string]typedesc.Descriptor),
		defaults:   make(map[string]func() any),
		required:   make(map[string]*bool),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := shapes[name]; exists {
		panic(fmt.Sprintf("type registry: aggregate %q already registered", name))
	}

	// Visible to field derivation so self-referential fields resolve.
	byType[t] = name

	fields, err := deriveFields(t, &cfg)
	if err != nil {
		delete(byType, t)
		panic(fmt.Sprintf("type registry: aggregate %q: %v", name, err))
	}
	if err := cfg.checkConsumed(); err != nil {
		delete(byType, t)
		panic(fmt.Sprintf("type registry: aggregate %q: %v", name, err))
	}

	shape := &typedesc.Shape{
		Name:       name,
		Params:     cfg.params,
		Fields:     fields,
		AllowExtra: cfg.allowExtra,
		New:        func() any { return new(T) },
		Type:       t,
	}
	shapes[name] = shape
	return shape
}

// Lookup returns the registered shape for the given aggregate name.
// If no shape is registered, it returns an error.
func Lookup(name string) (*typedesc.Shape, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("type registry: no aggregate registered for name %q", name)
	}
	return s, nil
}

// LookupByType returns the registered aggregate name for a Go struct type.
func LookupByType(t reflect.Type) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	name, ok := byType[t]
	return name, ok
}

// TypeNameOf returns the registered aggregate name for the struct type T.
func TypeNameOf[T any]() (string, bool) {
	return LookupByType(reflect.TypeOf((*T)(nil)).Elem())
}

// DescriptorOf returns the aggregate descriptor for the registered struct
// type T, applied to the given type arguments.
func DescriptorOf[T any](args ...typedesc.Descriptor) (typedesc.Descriptor, error) {
	name, ok := TypeNameOf[T]()
	if !ok {
		var zero T
		return typedesc.Descriptor{}, fmt.Errorf("type registry: type %T is not registered", zero)
	}
	return typedesc.Aggregate(name, args...), nil
}

// Reset clears all registered shapes. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	shapes = make(map[string]*typedesc.Shape)
	byType = make(map[reflect.Type]string)
}
