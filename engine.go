/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/typeconv/errors"
	"github.com/suparena/typeconv/typedesc"
)

// entry is one converter registration: a pattern descriptor, the converter,
// and the pattern's pre-computed specificity. Registration order breaks
// specificity ties, most recent first, so user registrations shadow
// built-ins.
type entry struct {
	pattern     typedesc.Descriptor
	conv        any // Decoder, AsyncDecoder, or both
	specificity int
}

// Engine is a converter registry plus the dispatch logic that selects and
// invokes the best-matching converter for a type descriptor. Built-ins are
// registered at construction; user converters afterwards, before first use.
// An Engine is safe for concurrent use by independent conversion calls once
// registration has finished.
type Engine struct {
	mu           sync.RWMutex
	entries      []entry
	encoders     []Encoder
	deps         map[reflect.Type]any
	resolveCache map[string]int
}

// NewEngine returns an engine with all built-in converters registered.
func NewEngine() *Engine {
	e := &Engine{
		deps:         make(map[reflect.Type]any),
		resolveCache: make(map[string]int),
	}
	registerBuiltins(e)
	return e
}

// Register adds a converter for every descriptor the pattern matches. The
// converter must implement Decoder, AsyncDecoder, or both. Duplicate
// patterns are not rejected: on equal specificity the most recent
// registration wins, which is how users override built-ins.
func (e *Engine) Register(pattern typedesc.Descriptor, conv any) {
	_, dec := conv.(Decoder)
	_, adec := conv.(AsyncDecoder)
	if !dec && !adec {
		panic(fmt.Sprintf("typeconv: converter %T implements neither Decoder nor AsyncDecoder", conv))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry{
		pattern:     pattern,
		conv:        conv,
		specificity: pattern.Specificity(),
	})
	e.resolveCache = make(map[string]int)
}

// RegisterEncoder adds an encoder consulted before the built-in encode
// walk. Encoders registered later are consulted first.
func (e *Engine) RegisterEncoder(enc Encoder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.encoders = append(e.encoders, enc)
}

// Provide registers a process-wide dependency instance, keyed by its
// concrete type. Call-level dependencies override it.
func (e *Engine) Provide(dep any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deps[reflect.TypeOf(dep)] = dep
}

// ProvideAs registers a process-wide dependency under the marker type T.
func ProvideAs[T any](e *Engine, dep T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deps[reflect.TypeOf((*T)(nil)).Elem()] = dep
}

func (e *Engine) dependency(marker reflect.Type) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if dep, ok := e.deps[marker]; ok {
		return dep, true
	}
	for t, dep := range e.deps {
		if t.AssignableTo(marker) {
			return dep, true
		}
	}
	return nil, false
}

// resolve selects the best-matching converter for the descriptor: highest
// specificity wins, ties go to the most recent registration.
func (e *Engine) resolve(target typedesc.Descriptor) (any, error) {
	key := target.Key()

	e.mu.RLock()
	if i, ok := e.resolveCache[key]; ok {
		conv := e.entries[i].conv
		e.mu.RUnlock()
		return conv, nil
	}
	best := -1
	for i, ent := range e.entries {
		if !ent.pattern.Matches(target) {
			continue
		}
		if best < 0 || ent.specificity >= e.entries[best].specificity {
			best = i
		}
	}
	e.mu.RUnlock()

	if best < 0 {
		return nil, errors.NewUnsupportedType(key)
	}

	e.mu.Lock()
	e.resolveCache[key] = best
	conv := e.entries[best].conv
	e.mu.Unlock()
	return conv, nil
}

// decode is the single dispatch point every conversion goes through.
func (e *Engine) decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	if st.ctx != nil {
		if err := st.ctx.Err(); err != nil {
			return nil, err
		}
	}

	conv, err := e.resolve(target)
	if err != nil {
		return nil, err
	}

	if st.ctx != nil {
		if ad, ok := conv.(AsyncDecoder); ok {
			return ad.DecodeAsync(st.ctx, st, v, target)
		}
		return conv.(Decoder).Decode(st, v, target)
	}

	dec, ok := conv.(Decoder)
	if !ok {
		return nil, errors.NewAsyncRequired(target.Key())
	}
	return dec.Decode(st, v, target)
}

func (e *Engine) newState(ctx context.Context, opts []CallOption) *State {
	st := &State{
		engine: e,
		ctx:    ctx,
		deps:   make(map[reflect.Type]any),
		shapes: make(map[string]*typedesc.Shape),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// FromJSON converts a JSON-shaped value into an instance of the target
// type. Every converter reached must resolve immediately; reaching an
// async-only converter fails with errors.ErrAsyncRequired.
func (e *Engine) FromJSON(target typedesc.Descriptor, v Value, opts ...CallOption) (any, error) {
	return e.decode(e.newState(nil, opts), v, target)
}

// FromJSONContext converts a JSON-shaped value into an instance of the
// target type, allowing async converters. Nested conversions run strictly
// sequentially, in field and element declaration order; ctx cancellation
// aborts the in-flight converter and unwinds without trying further fields
// or union alternatives.
func (e *Engine) FromJSONContext(ctx context.Context, target typedesc.Descriptor, v Value, opts ...CallOption) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return e.decode(e.newState(ctx, opts), v, target)
}
