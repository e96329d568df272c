/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/typeconv/errors"
	"github.com/suparena/typeconv/registry"
	"github.com/suparena/typeconv/typedesc"
)

// registerBuiltins installs the default converter set. Built-ins register
// first, so user converters registered afterwards win specificity ties.
func registerBuiltins(e *Engine) {
	e.Register(typedesc.Null(), scalarDecoder{typedesc.KindNull})
	e.Register(typedesc.Bool(), scalarDecoder{typedesc.KindBool})
	e.Register(typedesc.Int(), scalarDecoder{typedesc.KindInt})
	e.Register(typedesc.Float(), scalarDecoder{typedesc.KindFloat})
	e.Register(typedesc.String(), scalarDecoder{typedesc.KindString})
	e.Register(typedesc.Any(), anyDecoder{})
	e.Register(typedesc.Time(), timeDecoder{})
	e.Register(typedesc.List(typedesc.Wildcard()), listDecoder{})
	e.Register(typedesc.Set(typedesc.Wildcard()), setDecoder{})
	e.Register(typedesc.Map(typedesc.String(), typedesc.Wildcard()), mapDecoder{})
	e.Register(typedesc.Tuple(), tupleDecoder{})
	e.Register(typedesc.Aggregate(""), aggregateDecoder{})
	e.Register(typedesc.Union(), unionDecoder{})
	e.Register(typedesc.Ref(""), refDecoder{})
	e.Register(typedesc.Var(""), varDecoder{})
}

type scalarDecoder struct {
	kind typedesc.Kind
}

func (d scalarDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	switch d.kind {
	case typedesc.KindNull:
		if v == nil {
			return nil, nil
		}
	case typedesc.KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case typedesc.KindInt:
		if n, ok := asInt(v); ok {
			return n, nil
		}
	case typedesc.KindFloat:
		if f, ok := asFloat(v); ok {
			return f, nil
		}
	case typedesc.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, errors.NewShapeMismatch(d.kind.String(), shapeOf(v))
}

// anyDecoder passes the unconstrained JSON value through unchanged.
type anyDecoder struct{}

func (anyDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	return v, nil
}

// timeDecoder accepts an RFC 3339 string or an epoch-seconds number and
// produces a strfmt.DateTime.
type timeDecoder struct{}

func (timeDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	switch t := v.(type) {
	case string:
		dt, err := strfmt.ParseDateTime(t)
		if err != nil {
			return nil, errors.NewShapeMismatch("RFC 3339 timestamp", fmt.Sprintf("%q", t))
		}
		return dt, nil
	default:
		f, ok := asFloat(v)
		if !ok {
			return nil, errors.NewShapeMismatch("timestamp string or number", shapeOf(v))
		}
		sec, frac := math.Modf(f)
		return strfmt.DateTime(time.Unix(int64(sec), int64(frac*1e9)).UTC()), nil
	}
}

type listDecoder struct{}

func (listDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errors.NewShapeMismatch("array", shapeOf(v))
	}
	elem := target.Arg(0)
	out := make([]any, len(arr))
	for i, item := range arr {
		r, err := st.Decode(item, elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}

type setDecoder struct{}

func (setDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errors.NewShapeMismatch("array", shapeOf(v))
	}
	elem := target.Arg(0)
	out := make(Set, len(arr))
	for i, item := range arr {
		r, err := st.Decode(item, elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if !hashable(r) {
			return nil, fmt.Errorf("[%d]: %w", i, errors.NewShapeMismatch("hashable set element", shapeOf(r)))
		}
		out[r] = struct{}{}
	}
	return out, nil
}

func hashable(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	}
	return true
}

// mapDecoder handles string-keyed mapping containers. It is only ever
// registered against maps whose key argument is the string type, so
// non-string keys are rejected structurally by resolution.
type mapDecoder struct{}

func (mapDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.NewShapeMismatch("object", shapeOf(v))
	}
	elem := target.Arg(1)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable iteration keeps side effects of nested converters deterministic.
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		r, err := st.Decode(m[k], elem)
		if err != nil {
			return nil, fmt.Errorf("[%q]: %w", k, err)
		}
		out[k] = r
	}
	return out, nil
}

type tupleDecoder struct{}

func (tupleDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errors.NewShapeMismatch("array", shapeOf(v))
	}
	n := target.NumArgs()
	if len(arr) != n {
		return nil, errors.NewShapeMismatch(
			fmt.Sprintf("array of length %d", n),
			fmt.Sprintf("array of length %d", len(arr)))
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		r, err := st.Decode(arr[i], target.Arg(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}

// unionDecoder tries each alternative in declaration order and commits to
// the first that converts. Ambiguous values therefore resolve to the first
// declared alternative; callers who need a specific choice order their
// union accordingly.
type unionDecoder struct{}

func (unionDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	alts := target.Args()
	names := make([]string, len(alts))
	for i, alt := range alts {
		names[i] = alt.Key()
	}

	attempts := make([]error, 0, len(alts))
	for _, alt := range alts {
		r, err := st.Decode(v, alt)
		if err == nil {
			return r, nil
		}
		// Cancellation and async misuse are call-level failures, not a
		// reason to fall through to the next alternative.
		if st.ctx != nil && st.ctx.Err() != nil {
			return nil, st.ctx.Err()
		}
		if errors.IsAsyncRequired(err) {
			return nil, err
		}
		attempts = append(attempts, err)
	}
	return nil, errors.NewNoMatchingUnionCase(names, attempts)
}

// aggregateDecoder decodes named record types from objects, field by field
// in declaration order.
type aggregateDecoder struct{}

func (aggregateDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	shape, err := st.resolveShape(target)
	if err != nil {
		return nil, err
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.NewShapeMismatch("object", shapeOf(v))
	}

	if !shape.AllowExtra {
		for k := range m {
			if _, ok := shape.FieldByName(k); !ok {
				return nil, errors.NewShapeMismatch(shape.Name, fmt.Sprintf("unexpected field %q", k))
			}
		}
	}

	var obj any
	var rv reflect.Value
	var plain map[string]any
	if shape.New != nil {
		obj = shape.New()
		rv = reflect.ValueOf(obj).Elem()
	} else {
		plain = make(map[string]any, len(shape.Fields))
		obj = plain
	}

	for _, f := range shape.Fields {
		raw, present := m[f.Name]
		var val any
		switch {
		case present:
			val, err = st.Decode(raw, f.Type)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", shape.Name, f.Name, err)
			}
		case f.Required:
			return nil, errors.NewMissingField(shape.Name, f.Name)
		case f.Default != nil:
			val = f.Default()
		default:
			continue
		}

		if shape.New != nil {
			if err := assignValue(rv.FieldByIndex(f.Index), val); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", shape.Name, f.Name, err)
			}
		} else {
			plain[f.Name] = val
		}
	}
	return obj, nil
}

// refDecoder resolves a forward reference against the declaration table and
// re-dispatches on the named aggregate descriptor, so references share the
// structural identity of their declaration.
type refDecoder struct{}

func (refDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	if _, err := registry.Lookup(target.Name()); err != nil {
		return nil, errors.NewUnsupportedType(target.Key())
	}
	return st.Decode(v, typedesc.Aggregate(target.Name(), target.Args()...))
}

// varDecoder is reached only when generic resolution left a type variable
// unbound, which is always an error.
type varDecoder struct{}

func (varDecoder) Decode(st *State, v Value, target typedesc.Descriptor) (any, error) {
	return nil, errors.NewUnboundTypeVariable("", target.Name())
}
