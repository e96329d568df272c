/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"testing"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/typeconv/typedesc"
)

type user struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Age     int               `json:"age"`
	Email   *string           `json:"email,omitempty"`
	Tags    []string          `json:"tags,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Created strfmt.DateTime   `json:"created"`
	secret  string
	Skipped string            `json:"-"`
}

type node struct {
	Value string `json:"value"`
	Next  *node  `json:"next,omitempty"`
}

type box struct {
	Value any `json:"value"`
}

func TestRegisterAggregateDerivesFields(t *testing.T) {
	defer Reset()
	Reset()

	shape := RegisterAggregate[user]("User")

	want := []struct {
		name     string
		desc     typedesc.Descriptor
		required bool
	}{
		{"id", typedesc.String(), true},
		{"name", typedesc.String(), true},
		{"age", typedesc.Int(), true},
		{"email", typedesc.Optional(typedesc.String()), false},
		{"tags", typedesc.List(typedesc.String()), false},
		{"attrs", typedesc.Map(typedesc.String(), typedesc.String()), false},
		{"created", typedesc.Time(), true},
	}
	if len(shape.Fields) != len(want) {
		t.Fatalf("Expected %d fields, got %d", len(want), len(shape.Fields))
	}
	for i, w := range want {
		f := shape.Fields[i]
		if f.Name != w.name {
			t.Errorf("Field %d: expected name %q, got %q", i, w.name, f.Name)
		}
		if !f.Type.Equal(w.desc) {
			t.Errorf("Field %q: expected type %s, got %s", w.name, w.desc, f.Type)
		}
		if f.Required != w.required {
			t.Errorf("Field %q: expected required=%v, got %v", w.name, w.required, f.Required)
		}
	}

	if shape.New == nil {
		t.Fatal("Expected derived shape to carry a factory")
	}
	if _, ok := shape.New().(*user); !ok {
		t.Error("Expected factory to produce *user")
	}
}

func TestRegisterAggregateSelfReference(t *testing.T) {
	defer Reset()
	Reset()

	shape := RegisterAggregate[node]("Node")

	next, ok := shape.FieldByName("next")
	if !ok {
		t.Fatal("Expected next field")
	}
	if !next.Type.Equal(typedesc.Optional(typedesc.Ref("Node"))) {
		t.Errorf("Expected optional forward reference, got %s", next.Type)
	}
	if next.Required {
		t.Error("Expected pointer field to be optional")
	}
}

func TestRegisterAggregateOptions(t *testing.T) {
	defer Reset()
	Reset()

	shape := RegisterAggregate[box]("Box",
		WithTypeParams("T"),
		WithFieldType("value", typedesc.Var("T")),
	)

	if len(shape.Params) != 1 || shape.Params[0] != "T" {
		t.Fatalf("Expected type parameter T, got %v", shape.Params)
	}
	f, _ := shape.FieldByName("value")
	if !f.Type.Equal(typedesc.Var("T")) {
		t.Errorf("Expected field override to apply, got %s", f.Type)
	}
}

func TestRegisterAggregateDefaultsAndRequiredness(t *testing.T) {
	defer Reset()
	Reset()

	shape := RegisterAggregate[user]("User",
		WithDefault("age", func() any { return int64(18) }),
		WithRequired("tags"),
		WithOptional("name"),
	)

	age, _ := shape.FieldByName("age")
	if age.Required {
		t.Error("A field with a default must be optional")
	}
	if age.Default == nil || age.Default() != int64(18) {
		t.Error("Expected age default of 18")
	}
	tags, _ := shape.FieldByName("tags")
	if !tags.Required {
		t.Error("Expected WithRequired to override the derived flag")
	}
	name, _ := shape.FieldByName("name")
	if name.Required {
		t.Error("Expected WithOptional to override the derived flag")
	}
}

func TestRegisterAggregateDuplicatePanics(t *testing.T) {
	defer Reset()
	Reset()

	RegisterAggregate[user]("User")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected duplicate registration to panic")
		}
	}()
	RegisterAggregate[user]("User")
}

func TestRegisterAggregateUnknownOptionFieldPanics(t *testing.T) {
	defer Reset()
	Reset()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected option naming an unknown field to panic")
		}
	}()
	RegisterAggregate[user]("User", WithRequired("nme"))
}

func TestLookup(t *testing.T) {
	defer Reset()
	Reset()

	RegisterAggregate[user]("User")

	shape, err := Lookup("User")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if shape.Name != "User" {
		t.Errorf("Expected shape User, got %q", shape.Name)
	}

	if _, err := Lookup("Nonexistent"); err == nil {
		t.Error("Expected error for unregistered name")
	}
}

func TestLookupByType(t *testing.T) {
	defer Reset()
	Reset()

	RegisterAggregate[user]("User")

	name, ok := LookupByType(reflect.TypeOf(user{}))
	if !ok || name != "User" {
		t.Errorf("Expected User, got %q (found=%v)", name, ok)
	}
	if name, ok := TypeNameOf[user](); !ok || name != "User" {
		t.Errorf("TypeNameOf: expected User, got %q (found=%v)", name, ok)
	}

	d, err := DescriptorOf[user]()
	if err != nil {
		t.Fatalf("DescriptorOf failed: %v", err)
	}
	if !d.Equal(typedesc.Aggregate("User")) {
		t.Errorf("Expected aggregate descriptor User, got %s", d)
	}

	if _, err := DescriptorOf[node](); err == nil {
		t.Error("Expected error for unregistered type")
	}
}
