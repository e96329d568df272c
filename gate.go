/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"context"
	"sync"

	"github.com/suparena/typeconv/typedesc"
)

// Gate wraps a decoder and holds every conversion until Release is called
// once, for converters that depend on a long initialization elsewhere. A
// Gate is async-only by construction: it implements AsyncDecoder and not
// Decoder, so reaching it from FromJSON fails with errors.ErrAsyncRequired
// instead of silently blocking the caller.
type Gate struct {
	inner Decoder
	ready chan struct{}
	once  sync.Once
}

// NewGate returns a Gate around the given decoder.
func NewGate(inner Decoder) *Gate {
	return &Gate{inner: inner, ready: make(chan struct{})}
}

// Release opens the gate. Safe to call more than once.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.ready) })
}

// DecodeAsync waits for the gate to open, then delegates to the wrapped
// decoder.
func (g *Gate) DecodeAsync(ctx context.Context, st *State, v Value, target typedesc.Descriptor) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-g.ready:
	}
	return g.inner.Decode(st, v, target)
}
