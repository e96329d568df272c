/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv_test

import (
	goerrors "errors"
	"reflect"
	"testing"

	"github.com/suparena/typeconv"
	"github.com/suparena/typeconv/errors"
	"github.com/suparena/typeconv/typedesc"
)

func TestGenericAggregateBound(t *testing.T) {
	got, err := typeconv.FromJSON(
		typedesc.Aggregate("Box", typedesc.Int()),
		map[string]any{"value": int64(3)},
	)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if got.(*testBox).Value != int64(3) {
		t.Errorf("Unexpected value %#v", got.(*testBox).Value)
	}

	// The same declaration serves any argument
	got, err = typeconv.FromJSON(
		typedesc.Aggregate("Box", typedesc.String()),
		map[string]any{"value": "s"},
	)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if got.(*testBox).Value != "s" {
		t.Errorf("Unexpected value %#v", got.(*testBox).Value)
	}
}

func TestGenericAggregateUnbound(t *testing.T) {
	_, err := typeconv.FromJSON(typedesc.Aggregate("Box"), map[string]any{"value": int64(3)})
	if !errors.IsUnboundTypeVariable(err) {
		t.Fatalf("Expected unbound type variable error, got %v", err)
	}

	var varErr *errors.UnboundTypeVariableError
	if !goerrors.As(err, &varErr) {
		t.Fatal("Expected UnboundTypeVariableError")
	}
	if varErr.Var != "T" || varErr.Aggregate != "Box" {
		t.Errorf("Expected T in Box, got %q in %q", varErr.Var, varErr.Aggregate)
	}
}

func TestGenericArgumentInsideContainer(t *testing.T) {
	got, err := typeconv.FromJSON(
		typedesc.Aggregate("BoxList", typedesc.String()),
		map[string]any{"values": []any{"a", "b"}},
	)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if !reflect.DeepEqual(got.(*testBoxList).Values, []any{"a", "b"}) {
		t.Errorf("Unexpected values %#v", got.(*testBoxList).Values)
	}

	// The substituted element type is enforced
	_, err = typeconv.FromJSON(
		typedesc.Aggregate("BoxList", typedesc.String()),
		map[string]any{"values": []any{"a", int64(1)}},
	)
	if !errors.IsShapeMismatch(err) {
		t.Errorf("Expected shape mismatch, got %v", err)
	}
}

func TestGenericArityMismatch(t *testing.T) {
	_, err := typeconv.FromJSON(
		typedesc.Aggregate("Box", typedesc.Int(), typedesc.String()),
		map[string]any{"value": int64(3)},
	)
	if !errors.IsShapeMismatch(err) {
		t.Errorf("Expected shape mismatch for wrong argument count, got %v", err)
	}
}

func TestGenericBoundBoxAs(t *testing.T) {
	b, err := typeconv.FromJSONAs[testBox](
		map[string]any{"value": true},
		[]typedesc.Descriptor{typedesc.Bool()},
	)
	if err != nil {
		t.Fatalf("FromJSONAs failed: %v", err)
	}
	if b.Value != true {
		t.Errorf("Unexpected value %#v", b.Value)
	}
}
