/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typeconv

import (
	"fmt"
	"sort"
)

// Value is the plain-data contract every converter bottoms out to: one of
// nil, bool, int64, float64, string, []Value, or map[string]Value. The JSON
// text layer producing and consuming Values is an external collaborator;
// integer inputs may arrive as int64 or as integral float64 depending on
// the parser.
type Value = any

// Set is the decoded form of a set container. Elements must be scalars,
// since Go map keys must be comparable.
type Set map[any]struct{}

// NewSet builds a Set from the given elements.
func NewSet(elems ...any) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v any) bool {
	_, ok := s[v]
	return ok
}

// Add inserts v into the set.
func (s Set) Add(v any) { s[v] = struct{}{} }

// Elems returns the elements sorted by their literal rendering, so encoded
// output is deterministic.
func (s Set) Elems() []any {
	out := make([]any, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

// shapeOf names a value's JSON shape for error messages.
func shapeOf(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64, float32:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func asInt(v Value) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
