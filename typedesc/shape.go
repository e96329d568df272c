/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typedesc

import "reflect"

// Field is one named member of an aggregate, in declaration order.
type Field struct {
	// Name is the key the field is looked up by in the input map.
	Name string
	// Index is the reflect field index path into the backing Go struct,
	// empty when the shape has no Go backing.
	Index []int
	// Type is the declared descriptor; it may contain type variables that
	// refer to the owning shape's Params.
	Type Descriptor
	// Required marks fields whose absence from the input is an error.
	Required bool
	// Default, when set, provides the value used for an absent optional
	// field.
	Default func() any
}

// Shape describes an aggregate: its declared type parameters and its fields
// in declaration order. Shapes are supplied by the declaration table; the
// conversion engine only consumes them.
type Shape struct {
	Name   string
	Params []string
	Fields []Field

	// AllowExtra permits input keys that match no declared field.
	AllowExtra bool

	// New returns a pointer to a fresh zero instance of the backing Go
	// struct, or nil when the shape decodes to a plain map.
	New func() any

	// Type is the backing Go struct type, nil when none.
	Type reflect.Type
}

// FieldByName returns the declared field with the given name.
func (s *Shape) FieldByName(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Descriptor returns the aggregate descriptor naming this shape, applied to
// the given type arguments.
func (s *Shape) Descriptor(args ...Descriptor) Descriptor {
	return Aggregate(s.Name, args...)
}
