/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"context"
	"fmt"
	"reflect"

	"github.com/suparena/typeconv/errors"
	"github.com/suparena/typeconv/registry"
	"github.com/suparena/typeconv/typedesc"
)

// Decoder converts a JSON-shaped value into an instance of the target type.
// The target descriptor is fully resolved: no type variables, no dangling
// forward references. Decoders recurse into nested values through st.Decode.
type Decoder interface {
	Decode(st *State, v Value, target typedesc.Descriptor) (any, error)
}

// AsyncDecoder is implemented by decoders that must wait on external work
// before producing a value. An AsyncDecoder is only reachable through the
// context entry points; reaching one from FromJSON is a usage error
// surfaced as errors.ErrAsyncRequired.
type AsyncDecoder interface {
	DecodeAsync(ctx context.Context, st *State, v Value, target typedesc.Descriptor) (any, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(st *State, v Value, target typedesc.Descriptor) (any, error)

func (f DecoderFunc) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	return f(st, v, target)
}

// AsyncDecoderFunc adapts a function to the AsyncDecoder interface.
type AsyncDecoderFunc func(ctx context.Context, st *State, v Value, target typedesc.Descriptor) (any, error)

func (f AsyncDecoderFunc) DecodeAsync(ctx context.Context, st *State, v Value, target typedesc.Descriptor) (any, error) {
	return f(ctx, st, v, target)
}

// Encoder converts typed values back into JSON-shaped data. Encoders
// registered on an engine are consulted newest-first before the built-in
// encode walk.
type Encoder interface {
	CanEncode(v any) bool
	Encode(st *EncodeState, v any) (Value, error)
}

// State is the per-top-level-call conversion context. It carries the
// injected dependencies, the shape resolution cache that breaks recursion
// on cyclic named references, and the call mode (sync or context-bound).
// A State is owned by the call that created it and must not be retained or
// shared across calls.
type State struct {
	engine *Engine
	ctx    context.Context // nil when entered through FromJSON
	deps   map[reflect.Type]any
	shapes map[string]*typedesc.Shape
}

// Decode converts a nested value, dispatching through the engine's
// converter registry.
func (st *State) Decode(v Value, target typedesc.Descriptor) (any, error) {
	return st.engine.decode(st, v, target)
}

// Context returns the context of the enclosing call, or context.Background
// for a sync call.
func (st *State) Context() context.Context {
	if st.ctx == nil {
		return context.Background()
	}
	return st.ctx
}

func (st *State) dependency(marker reflect.Type) (any, error) {
	if dep, ok := st.deps[marker]; ok {
		return dep, nil
	}
	for t, dep := range st.deps {
		if t.AssignableTo(marker) {
			return dep, nil
		}
	}
	if dep, ok := st.engine.dependency(marker); ok {
		return dep, nil
	}
	return nil, errors.NewMissingDependency(marker.String())
}

// DependencyFor returns the dependency registered for the marker type T in
// the enclosing call, falling back to the engine's process-wide providers.
// Call-level registrations take precedence over engine-level ones.
func DependencyFor[T any](st *State) (T, error) {
	marker := reflect.TypeOf((*T)(nil)).Elem()
	dep, err := st.dependency(marker)
	if err != nil {
		var zero T
		return zero, err
	}
	return dep.(T), nil
}

// resolveShape binds an aggregate descriptor to its declared shape,
// substituting bound type arguments positionally into field types. Results
// are memoized for the duration of the call, keyed by the descriptor's
// structural key, which also bounds work when named references form cycles.
func (st *State) resolveShape(target typedesc.Descriptor) (*typedesc.Shape, error) {
	key := target.Key()
	if s, ok := st.shapes[key]; ok {
		return s, nil
	}

	base, err := registry.Lookup(target.Name())
	if err != nil {
		return nil, errors.NewUnsupportedType(key)
	}

	args := target.Args()
	if len(args) == 0 {
		// Unparametrized use is fine as long as no field depends on a
		// type parameter.
		for _, f := range base.Fields {
			if name, ok := f.Type.FirstVar(); ok {
				return nil, errors.NewUnboundTypeVariable(base.Name, name)
			}
		}
		st.shapes[key] = base
		return base, nil
	}

	if len(args) != len(base.Params) {
		return nil, errors.NewShapeMismatch(
			fmt.Sprintf("%s with %d type arguments", base.Name, len(base.Params)),
			fmt.Sprintf("%d", len(args)))
	}

	bound := *base
	bound.Fields = make([]typedesc.Field, len(base.Fields))
	for i, f := range base.Fields {
		f.Type = f.Type.Substitute(base.Params, args)
		if name, ok := f.Type.FirstVar(); ok {
			return nil, errors.NewUnboundTypeVariable(base.Name, name)
		}
		bound.Fields[i] = f
	}
	st.shapes[key] = &bound
	return &bound, nil
}

// CallOption configures a single top-level conversion call.
type CallOption func(*State)

// WithDependency registers a dependency instance for this call, keyed by
// its concrete type.
func WithDependency(dep any) CallOption {
	return func(st *State) {
		st.deps[reflect.TypeOf(dep)] = dep
	}
}

// WithDependencyAs registers a dependency instance for this call under the
// marker type T, which may be an interface the instance satisfies.
func WithDependencyAs[T any](dep T) CallOption {
	return func(st *State) {
		st.deps[reflect.TypeOf((*T)(nil)).Elem()] = dep
	}
}
