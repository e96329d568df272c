/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typedesc

import "strings"

// Kind identifies the shape of a type for conversion purposes.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindAny
	KindList
	KindSet
	KindMap
	KindTuple
	KindAggregate
	KindUnion
	KindVar
	KindRef
	KindWildcard
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindNull:      "null",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindTime:      "time",
	KindAny:       "any",
	KindList:      "list",
	KindSet:       "set",
	KindMap:       "map",
	KindTuple:     "tuple",
	KindAggregate: "aggregate",
	KindUnion:     "union",
	KindVar:       "var",
	KindRef:       "ref",
	KindWildcard:  "*",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Descriptor is an immutable, structurally comparable identification of a
// type. Two descriptors are equal iff their kind, name, and arguments are
// equal, which lets conversion registries use them as lookup keys.
//
// A descriptor used as a registration pattern may contain wildcard positions
// (see Wildcard); a descriptor handed to a converter never does.
type Descriptor struct {
	kind Kind
	name string
	args []Descriptor
}

// Kind returns the descriptor's kind.
func (d Descriptor) Kind() Kind { return d.kind }

// Name returns the aggregate, type-variable, or reference name, if any.
func (d Descriptor) Name() string { return d.name }

// NumArgs returns the number of generic type arguments.
func (d Descriptor) NumArgs() int { return len(d.args) }

// Arg returns the i-th generic type argument.
func (d Descriptor) Arg(i int) Descriptor { return d.args[i] }

// Args returns a copy of the generic type arguments.
func (d Descriptor) Args() []Descriptor {
	if len(d.args) == 0 {
		return nil
	}
	out := make([]Descriptor, len(d.args))
	copy(out, d.args)
	return out
}

// Null describes the JSON null type.
func Null() Descriptor { return Descriptor{kind: KindNull} }

// Bool describes the boolean type.
func Bool() Descriptor { return Descriptor{kind: KindBool} }

// Int describes the integer type.
func Int() Descriptor { return Descriptor{kind: KindInt} }

// Float describes the floating-point type.
func Float() Descriptor { return Descriptor{kind: KindFloat} }

// String describes the string type.
func String() Descriptor { return Descriptor{kind: KindString} }

// Time describes a timestamp carried as an RFC 3339 string or an epoch number.
func Time() Descriptor { return Descriptor{kind: KindTime} }

// Any describes the unconstrained JSON value type; values pass through
// conversion unchanged.
func Any() Descriptor { return Descriptor{kind: KindAny} }

// Wildcard is a pattern-only descriptor that matches any candidate.
func Wildcard() Descriptor { return Descriptor{kind: KindWildcard} }

// List describes a sequence container with the given element type.
func List(elem Descriptor) Descriptor {
	return Descriptor{kind: KindList, args: []Descriptor{elem}}
}

// Set describes a set container with the given element type.
func Set(elem Descriptor) Descriptor {
	return Descriptor{kind: KindSet, args: []Descriptor{elem}}
}

// Map describes a mapping container. Built-in converters are only registered
// against maps whose key is the string type; other key types resolve to no
// converter.
func Map(key, value Descriptor) Descriptor {
	return Descriptor{kind: KindMap, args: []Descriptor{key, value}}
}

// Tuple describes a fixed-arity sequence with one type per position.
func Tuple(elems ...Descriptor) Descriptor {
	return Descriptor{kind: KindTuple, args: append([]Descriptor(nil), elems...)}
}

// Aggregate describes a named record type, optionally applied to generic
// type arguments.
func Aggregate(name string, args ...Descriptor) Descriptor {
	return Descriptor{kind: KindAggregate, name: name, args: append([]Descriptor(nil), args...)}
}

// Union describes a union of alternatives. Order is declaration order and is
// significant: decoding commits to the first alternative that succeeds.
func Union(alts ...Descriptor) Descriptor {
	return Descriptor{kind: KindUnion, args: append([]Descriptor(nil), alts...)}
}

// Optional normalizes "t or null" into a two-alternative union ending in
// null, so optional values take the same path as every other union.
func Optional(t Descriptor) Descriptor {
	return Union(t, Null())
}

// Var describes an unbound type variable, named after the aggregate's
// declared type parameter. Var descriptors exist only transiently during
// generic resolution; reaching a converter with one is an error.
func Var(name string) Descriptor {
	return Descriptor{kind: KindVar, name: name}
}

// Ref describes a forward reference to a named aggregate. It resolves
// against the declaration table to the same structural identity as the
// named declaration, so cache and registry lookups behave identically.
func Ref(name string, args ...Descriptor) Descriptor {
	return Descriptor{kind: KindRef, name: name, args: append([]Descriptor(nil), args...)}
}

// Equal reports structural equality.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.kind != o.kind || d.name != o.name || len(d.args) != len(o.args) {
		return false
	}
	for i := range d.args {
		if !d.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical string form usable as a map key. Two descriptors
// share a key iff they are structurally equal.
func (d Descriptor) Key() string {
	var b strings.Builder
	d.writeKey(&b)
	return b.String()
}

func (d Descriptor) writeKey(b *strings.Builder) {
	switch d.kind {
	case KindAggregate:
		b.WriteString(d.name)
	case KindVar:
		b.WriteString("var:")
		b.WriteString(d.name)
	case KindRef:
		b.WriteString("ref:")
		b.WriteString(d.name)
	default:
		b.WriteString(d.kind.String())
	}
	if len(d.args) > 0 {
		sep := ","
		if d.kind == KindUnion {
			sep = "|"
		}
		b.WriteByte('[')
		for i, a := range d.args {
			if i > 0 {
				b.WriteString(sep)
			}
			a.writeKey(b)
		}
		b.WriteByte(']')
	}
}

func (d Descriptor) String() string { return d.Key() }

// Matches reports whether d, interpreted as a registration pattern, matches
// the candidate descriptor. Wildcard positions match anything, and a pattern
// without arguments matches any argument list of the same kind and name, so
// a bare list pattern covers list[int].
func (d Descriptor) Matches(c Descriptor) bool {
	if d.kind == KindWildcard {
		return true
	}
	if d.kind != c.kind {
		return false
	}
	if d.name != "" && d.name != c.name {
		return false
	}
	if len(d.args) == 0 {
		return true
	}
	if len(d.args) != len(c.args) {
		return false
	}
	for i := range d.args {
		if !d.args[i].Matches(c.args[i]) {
			return false
		}
	}
	return true
}

// Specificity counts the concrete (non-wildcard) positions in a pattern.
// Registries prefer the matching entry with the highest specificity, so
// list[int] beats a bare list pattern for a list[int] target.
func (d Descriptor) Specificity() int {
	if d.kind == KindWildcard {
		return 0
	}
	n := 1
	for _, a := range d.args {
		n += a.Specificity()
	}
	return n
}

// FirstVar returns the name of the first type variable in the descriptor
// tree, in depth-first order.
func (d Descriptor) FirstVar() (string, bool) {
	if d.kind == KindVar {
		return d.name, true
	}
	for _, a := range d.args {
		if name, ok := a.FirstVar(); ok {
			return name, true
		}
	}
	return "", false
}

// HasVar reports whether the descriptor tree contains a type variable.
func (d Descriptor) HasVar() bool {
	_, ok := d.FirstVar()
	return ok
}

// Substitute replaces type variables by name with the positionally
// corresponding argument. Variables that name no parameter are left in
// place; callers detect them with FirstVar afterwards.
func (d Descriptor) Substitute(params []string, args []Descriptor) Descriptor {
	if d.kind == KindVar {
		for i, p := range params {
			if p == d.name && i < len(args) {
				return args[i]
			}
		}
		return d
	}
	if len(d.args) == 0 {
		return d
	}
	out := d
	out.args = make([]Descriptor, len(d.args))
	for i, a := range d.args {
		out.args[i] = a.Substitute(params, args)
	}
	return out
}
