/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"fmt"
	"reflect"

	"github.com/suparena/typeconv/errors"
)

// assignValue stores a decoded value into a struct field, converting
// between the engine's canonical forms (int64, float64, []any,
// map[string]any, *T aggregates) and the field's declared Go type.
func assignValue(dst reflect.Value, val any) error {
	if val == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	rv := reflect.ValueOf(val)
	t := dst.Type()

	if rv.Type().AssignableTo(t) {
		dst.Set(rv)
		return nil
	}

	// Decoded aggregates are pointers; deref for value fields.
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Type().AssignableTo(t) {
		dst.Set(rv.Elem())
		return nil
	}

	switch t.Kind() {
	case reflect.Ptr:
		p := reflect.New(t.Elem())
		if err := assignValue(p.Elem(), val); err != nil {
			return err
		}
		dst.Set(p)
		return nil

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if rv.Type().ConvertibleTo(t) && convertibleScalarKind(rv.Kind()) {
			dst.Set(rv.Convert(t))
			return nil
		}

	case reflect.Slice:
		arr, ok := val.([]any)
		if !ok {
			break
		}
		out := reflect.MakeSlice(t, len(arr), len(arr))
		for i, item := range arr {
			if err := assignValue(out.Index(i), item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		dst.Set(out)
		return nil

	case reflect.Map:
		m, ok := val.(map[string]any)
		if !ok {
			break
		}
		out := reflect.MakeMapWithSize(t, len(m))
		for k, item := range m {
			mv := reflect.New(t.Elem()).Elem()
			if err := assignValue(mv, item); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), mv)
		}
		dst.Set(out)
		return nil

	case reflect.Struct:
		// Covers strfmt.DateTime <-> time.Time style defined conversions.
		if rv.Type().ConvertibleTo(t) {
			dst.Set(rv.Convert(t))
			return nil
		}

	case reflect.Interface:
		if t.NumMethod() == 0 {
			dst.Set(rv)
			return nil
		}
	}

	return errors.NewShapeMismatch(t.String(), fmt.Sprintf("%T", val))
}

func convertibleScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
