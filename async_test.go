/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv_test

import (
	"context"
	goerrors "errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/suparena/typeconv"
	"github.com/suparena/typeconv/errors"
	"github.com/suparena/typeconv/typedesc"
)

// upperDecoder is async-only: it implements AsyncDecoder and not Decoder.
var upperDecoder = typeconv.AsyncDecoderFunc(
	func(ctx context.Context, st *typeconv.State, v typeconv.Value, target typedesc.Descriptor) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, errors.NewShapeMismatch("string", "other")
		}
		return strings.ToUpper(s), nil
	})

func TestAsyncConverterRequiresContextEntryPoint(t *testing.T) {
	e := typeconv.NewEngine()
	e.Register(typedesc.String(), upperDecoder)

	_, err := e.FromJSON(typedesc.String(), "x")
	if !errors.IsAsyncRequired(err) {
		t.Fatalf("Expected async required error, got %v", err)
	}

	got, err := e.FromJSONContext(context.Background(), typedesc.String(), "x")
	if err != nil {
		t.Fatalf("FromJSONContext failed: %v", err)
	}
	if got != "X" {
		t.Errorf("Expected X, got %#v", got)
	}
}

func TestAsyncConverterReachedThroughAggregate(t *testing.T) {
	e := typeconv.NewEngine()
	e.Register(typedesc.String(), upperDecoder)

	in := map[string]any{"id": "u1", "name": "ada", "age": int64(1)}

	// The misuse surfaces no matter how deep the async converter sits.
	_, err := e.FromJSON(typedesc.Aggregate("User"), in)
	if !errors.IsAsyncRequired(err) {
		t.Fatalf("Expected async required error, got %v", err)
	}

	got, err := e.FromJSONContext(context.Background(), typedesc.Aggregate("User"), in)
	if err != nil {
		t.Fatalf("FromJSONContext failed: %v", err)
	}
	if got.(*testUser).Name != "ADA" {
		t.Errorf("Unexpected user %+v", got)
	}
}

func TestAsyncNotTriedAsUnionFallback(t *testing.T) {
	e := typeconv.NewEngine()
	e.Register(typedesc.String(), upperDecoder)

	// The async misuse aborts the whole call instead of falling through to
	// the second alternative.
	_, err := e.FromJSON(typedesc.Union(typedesc.String(), typedesc.Any()), "x")
	if !errors.IsAsyncRequired(err) {
		t.Fatalf("Expected async required error, got %v", err)
	}
}

func TestGate(t *testing.T) {
	passthrough := typeconv.DecoderFunc(
		func(st *typeconv.State, v typeconv.Value, target typedesc.Descriptor) (any, error) {
			return v, nil
		})

	t.Run("sync entry point rejected", func(t *testing.T) {
		e := typeconv.NewEngine()
		e.Register(typedesc.Int(), typeconv.NewGate(passthrough))

		_, err := e.FromJSON(typedesc.Int(), int64(1))
		if !errors.IsAsyncRequired(err) {
			t.Fatalf("Expected async required error, got %v", err)
		}
	})

	t.Run("released gate converts", func(t *testing.T) {
		e := typeconv.NewEngine()
		g := typeconv.NewGate(passthrough)
		e.Register(typedesc.Int(), g)

		g.Release()
		g.Release() // idempotent

		got, err := e.FromJSONContext(context.Background(), typedesc.Int(), int64(7))
		if err != nil {
			t.Fatalf("FromJSONContext failed: %v", err)
		}
		if got != int64(7) {
			t.Errorf("Expected 7, got %#v", got)
		}
	})

	t.Run("conversion waits for release", func(t *testing.T) {
		e := typeconv.NewEngine()
		g := typeconv.NewGate(passthrough)
		e.Register(typedesc.Int(), g)

		go func() {
			time.Sleep(10 * time.Millisecond)
			g.Release()
		}()

		got, err := e.FromJSONContext(context.Background(), typedesc.Int(), int64(7))
		if err != nil {
			t.Fatalf("FromJSONContext failed: %v", err)
		}
		if got != int64(7) {
			t.Errorf("Expected 7, got %#v", got)
		}
	})

	t.Run("cancellation beats an unreleased gate", func(t *testing.T) {
		e := typeconv.NewEngine()
		e.Register(typedesc.Int(), typeconv.NewGate(passthrough))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := e.FromJSONContext(ctx, typedesc.Int(), int64(7))
		if !goerrors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Expected deadline exceeded, got %v", err)
		}
	})
}

func TestCancellationUnwindsBetweenFields(t *testing.T) {
	e := typeconv.NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	e.Register(typedesc.Int(), typeconv.DecoderFunc(
		func(st *typeconv.State, v typeconv.Value, target typedesc.Descriptor) (any, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return int64(0), nil
		}))

	_, err := e.FromJSONContext(ctx, typedesc.Aggregate("Pair"), map[string]any{
		"first":  int64(1),
		"second": int64(2),
	})
	if !goerrors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected conversion to stop after the first field, got %d calls", n)
	}
}

func TestCancellationSkipsRemainingUnionAlternatives(t *testing.T) {
	e := typeconv.NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e.Register(typedesc.Int(), typeconv.DecoderFunc(
		func(st *typeconv.State, v typeconv.Value, target typedesc.Descriptor) (any, error) {
			cancel()
			return nil, errors.NewShapeMismatch("int", "other")
		}))

	// Bool would accept the value, but cancellation preempts the fallback.
	_, err := e.FromJSONContext(ctx, typedesc.Union(typedesc.Int(), typedesc.Bool()), true)
	if !goerrors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
