/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/typeconv/typedesc"
)

// AggregateOption customizes shape derivation in RegisterAggregate.
type AggregateOption func(*aggregateConfig)

type aggregateConfig struct {
	params     []string
	allowExtra bool
	fieldTypes map[string]typedesc.Descriptor
	defaults   map[string]func() any
	required   map[string]*bool

	consumed []string
}

// WithTypeParams declares the aggregate's generic type parameters, in
// declaration order. Fields typed by a parameter need a WithFieldType
// override using typedesc.Var.
func WithTypeParams(names ...string) AggregateOption {
	return func(c *aggregateConfig) { c.params = names }
}

// WithFieldType overrides the derived descriptor for a field, addressed by
// its json name or Go name.
func WithFieldType(field string, d typedesc.Descriptor) AggregateOption {
	return func(c *aggregateConfig) { c.fieldTypes[field] = d }
}

// WithDefault supplies a default value for an absent field and marks it
// optional.
func WithDefault(field string, fn func() any) AggregateOption {
	return func(c *aggregateConfig) { c.defaults[field] = fn }
}

// WithRequired marks fields as required regardless of their derived flag.
func WithRequired(fields ...string) AggregateOption {
	return func(c *aggregateConfig) {
		for _, f := range fields {
			v := true
			c.required[f] = &v
		}
	}
}

// WithOptional marks fields as optional regardless of their derived flag.
func WithOptional(fields ...string) AggregateOption {
	return func(c *aggregateConfig) {
		for _, f := range fields {
			v := false
			c.required[f] = &v
		}
	}
}

// WithAllowExtra permits input keys that match no declared field.
func WithAllowExtra() AggregateOption {
	return func(c *aggregateConfig) { c.allowExtra = true }
}

func (c *aggregateConfig) take(names ...string) {
	c.consumed = append(c.consumed, names...)
}

// checkConsumed catches option typos: every field addressed by an option
// must exist on the struct.
func (c *aggregateConfig) checkConsumed() error {
	used := make(map[string]bool, len(c.consumed))
	for _, n := range c.consumed {
		used[n] = true
	}
	for f := range c.fieldTypes {
		if !used[f] {
			return fmt.Errorf("WithFieldType names unknown field %q", f)
		}
	}
	for f := range c.defaults {
		if !used[f] {
			return fmt.Errorf("WithDefault names unknown field %q", f)
		}
	}
	for f, v := range c.required {
		if !used[f] {
			word := "WithOptional"
			if *v {
				word = "WithRequired"
			}
			return fmt.Errorf("%s names unknown field %q", word, f)
		}
	}
	return nil
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	datetimeType = reflect.TypeOf(strfmt.DateTime{})
)

func deriveFields(t reflect.Type, cfg *aggregateConfig) ([]typedesc.Field, error) {
	var fields []typedesc.Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, omitempty, skip := parseJSONTag(sf)
		if skip {
			continue
		}
		cfg.take(name, sf.Name)

		desc, override := cfg.fieldTypes[name]
		if !override {
			desc, override = cfg.fieldTypes[sf.Name]
		}
		if !override {
			var err error
			desc, err = descriptorFromGoType(sf.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
		}

		required := !omitempty && sf.Type.Kind() != reflect.Ptr
		if r, ok := cfg.required[name]; ok {
			required = *r
		} else if r, ok := cfg.required[sf.Name]; ok {
			required = *r
		}

		def := cfg.defaults[name]
		if def == nil {
			def = cfg.defaults[sf.Name]
		}
		if def != nil {
			required = false
		}

		fields = append(fields, typedesc.Field{
			Name:     name,
			Index:    sf.Index,
			Type:     desc,
			Required: required,
			Default:  def,
		})
	}
	return fields, nil
}

func parseJSONTag(sf reflect.StructField) (name string, omitempty, skip bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = sf.Name
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			name = parts[0]
		}
		for _, p := range parts[1:] {
			if p == "omitempty" {
				omitempty = true
			}
		}
	}
	return name, omitempty, false
}

// descriptorFromGoType maps a Go field type to its declared descriptor.
// Struct fields must already be registered so they derive to a forward
// reference by name; this keeps self-referential and mutually recursive
// declarations resolvable lazily at conversion time.
func descriptorFromGoType(t reflect.Type) (typedesc.Descriptor, error) {
	switch t {
	case timeType, datetimeType:
		return typedesc.Time(), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return typedesc.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typedesc.Int(), nil
	case reflect.Float32, reflect.Float64:
		return typedesc.Float(), nil
	case reflect.String:
		return typedesc.String(), nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return typedesc.Any(), nil
		}
		return typedesc.Descriptor{}, fmt.Errorf("cannot derive descriptor for interface %s; override with WithFieldType", t)
	case reflect.Ptr:
		elem, err := descriptorFromGoType(t.Elem())
		if err != nil {
			return typedesc.Descriptor{}, err
		}
		return typedesc.Optional(elem), nil
	case reflect.Slice, reflect.Array:
		elem, err := descriptorFromGoType(t.Elem())
		if err != nil {
			return typedesc.Descriptor{}, err
		}
		return typedesc.List(elem), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return typedesc.Descriptor{}, fmt.Errorf("map key of %s must be a string", t)
		}
		elem, err := descriptorFromGoType(t.Elem())
		if err != nil {
			return typedesc.Descriptor{}, err
		}
		return typedesc.Map(typedesc.String(), elem), nil
	case reflect.Struct:
		if name, ok := byType[t]; ok {
			return typedesc.Ref(name), nil
		}
		return typedesc.Descriptor{}, fmt.Errorf("struct %s is not registered; register it first or override with WithFieldType", t)
	default:
		return typedesc.Descriptor{}, fmt.Errorf("cannot derive descriptor for %s", t)
	}
}
