/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"context"
	"fmt"

	"github.com/suparena/typeconv/registry"
	"github.com/suparena/typeconv/typedesc"
)

// DefaultEngine is the process-wide engine used by the package-level entry
// points. Multiple independent engines are supported; the default is a
// deployment convenience.
var DefaultEngine = NewEngine()

// FromJSON converts a JSON-shaped value into an instance of the target
// type using the default engine. Reaching an async-only converter is an
// error; use FromJSONContext for those.
func FromJSON(target typedesc.Descriptor, v Value, opts ...CallOption) (any, error) {
	return DefaultEngine.FromJSON(target, v, opts...)
}

// FromJSONContext converts a JSON-shaped value into an instance of the
// target type using the default engine, allowing async converters.
func FromJSONContext(ctx context.Context, target typedesc.Descriptor, v Value, opts ...CallOption) (any, error) {
	return DefaultEngine.FromJSONContext(ctx, target, v, opts...)
}

// ToJSON converts a typed value into JSON-shaped data using the default
// engine. Unsupported member types pass through unchanged.
func ToJSON(v any) (Value, error) {
	return DefaultEngine.ToJSON(v)
}

// Register adds a converter to the default engine. Must be called before
// any conversion that depends on it.
func Register(pattern typedesc.Descriptor, conv any) {
	DefaultEngine.Register(pattern, conv)
}

// RegisterEncoder adds an encoder to the default engine.
func RegisterEncoder(enc Encoder) {
	DefaultEngine.RegisterEncoder(enc)
}

// Provide registers a process-wide dependency on the default engine.
func Provide(dep any) {
	DefaultEngine.Provide(dep)
}

// FromJSONAs converts a JSON-shaped value into the registered aggregate
// type T using the default engine, applying the given type arguments.
func FromJSONAs[T any](v Value, args []typedesc.Descriptor, opts ...CallOption) (T, error) {
	var zero T
	target, err := registry.DescriptorOf[T](args...)
	if err != nil {
		return zero, err
	}
	out, err := DefaultEngine.FromJSON(target, v, opts...)
	if err != nil {
		return zero, err
	}
	p, ok := out.(*T)
	if !ok {
		return zero, fmt.Errorf("decoded %T, want *%T", out, zero)
	}
	return *p, nil
}
