/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/typeconv/registry"
)

// EncodeState is the per-call context for the encode direction. Encoding is
// best-effort by design: member types nothing knows how to encode pass
// through unchanged rather than erroring, since the boundary on the output
// side is advisory.
type EncodeState struct {
	engine *Engine
}

// ToJSON converts a typed value into JSON-shaped data: aggregates become
// string-keyed maps of their recursively encoded fields, containers become
// arrays, scalars pass through.
func (e *Engine) ToJSON(v any) (Value, error) {
	st := &EncodeState{engine: e}
	return st.Encode(v)
}

// Encode converts one value, consulting user-registered encoders
// newest-first before the built-in walk.
func (st *EncodeState) Encode(v any) (Value, error) {
	st.engine.mu.RLock()
	encoders := st.engine.encoders
	st.engine.mu.RUnlock()
	for i := len(encoders) - 1; i >= 0; i-- {
		if encoders[i].CanEncode(v) {
			return encoders[i].Encode(st, v)
		}
	}

	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int64, float64:
		return v, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case float32:
		return float64(t), nil
	case strfmt.DateTime:
		return t.String(), nil
	case time.Time:
		return strfmt.DateTime(t).String(), nil
	case Set:
		out := make([]Value, 0, len(t))
		for _, e := range t.Elems() {
			enc, err := st.Encode(e)
			if err != nil {
				return nil, err
			}
			out = append(out, enc)
		}
		return out, nil
	}

	return st.encodeReflect(reflect.ValueOf(v))
}

func (st *EncodeState) encodeReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return st.Encode(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		out := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			enc, err := st.Encode(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = enc
		}
		return out, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return rv.Interface(), nil
		}
		out := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			enc, err := st.Encode(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = enc
		}
		return out, nil

	case reflect.Struct:
		if name, ok := registry.LookupByType(rv.Type()); ok {
			return st.encodeAggregate(name, rv)
		}
		return rv.Interface(), nil

	// Named scalar types (string or integer enums and the like).
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	default:
		return rv.Interface(), nil
	}
}

func (st *EncodeState) encodeAggregate(name string, rv reflect.Value) (Value, error) {
	shape, err := registry.Lookup(name)
	if err != nil {
		return rv.Interface(), nil
	}
	out := make(map[string]Value, len(shape.Fields))
	for _, f := range shape.Fields {
		enc, err := st.Encode(rv.FieldByIndex(f.Index).Interface())
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, f.Name, err)
		}
		out[f.Name] = enc
	}
	return out, nil
}
