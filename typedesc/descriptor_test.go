/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typedesc

import "testing"

func TestDescriptorKey(t *testing.T) {
	tests := []struct {
		desc Descriptor
		key  string
	}{
		{Int(), "int"},
		{List(Int()), "list[int]"},
		{Map(String(), Float()), "map[string,float]"},
		{Set(String()), "set[string]"},
		{Tuple(Int(), String()), "tuple[int,string]"},
		{Union(List(Int()), Set(Int())), "union[list[int]|set[int]]"},
		{Aggregate("User"), "User"},
		{Aggregate("Box", Int()), "Box[int]"},
		{Var("T"), "var:T"},
		{Ref("Node"), "ref:Node"},
		{Wildcard(), "*"},
	}
	for _, tt := range tests {
		if got := tt.desc.Key(); got != tt.key {
			t.Errorf("Key() = %q, want %q", got, tt.key)
		}
	}
}

func TestDescriptorEqual(t *testing.T) {
	if !List(Int()).Equal(List(Int())) {
		t.Error("identical descriptors should be equal")
	}
	if List(Int()).Equal(List(String())) {
		t.Error("descriptors with different arguments should not be equal")
	}
	if List(Int()).Equal(Set(Int())) {
		t.Error("descriptors with different kinds should not be equal")
	}
	if Aggregate("A").Equal(Aggregate("B")) {
		t.Error("aggregates with different names should not be equal")
	}

	// Key equality must track structural equality
	a, b := Aggregate("Box", List(Int())), Aggregate("Box", List(Int()))
	if a.Key() != b.Key() {
		t.Error("equal descriptors should share a key")
	}
}

func TestOptionalNormalizesToUnion(t *testing.T) {
	d := Optional(Int())
	if d.Kind() != KindUnion {
		t.Fatalf("Optional should normalize to a union, got %s", d.Kind())
	}
	if d.NumArgs() != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", d.NumArgs())
	}
	if !d.Arg(0).Equal(Int()) || !d.Arg(1).Equal(Null()) {
		t.Errorf("Expected union[int|null], got %s", d)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		pattern   Descriptor
		candidate Descriptor
		want      bool
	}{
		{"wildcard matches anything", Wildcard(), Aggregate("User"), true},
		{"exact primitive", Int(), Int(), true},
		{"primitive mismatch", Int(), String(), false},
		{"bare list covers list of int", List(Wildcard()), List(Int()), true},
		{"concrete list argument", List(Int()), List(Int()), true},
		{"concrete list argument mismatch", List(Int()), List(String()), false},
		{"string-keyed map only", Map(String(), Wildcard()), Map(Int(), Int()), false},
		{"any aggregate", Aggregate(""), Aggregate("User"), true},
		{"named aggregate", Aggregate("User"), Aggregate("Order"), false},
		{"no-arg pattern matches applied aggregate", Aggregate(""), Aggregate("Box", Int()), true},
		{"any union", Union(), Union(Int(), Null()), true},
		{"kind mismatch", List(Wildcard()), Set(Int()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pattern.Matches(tt.candidate); got != tt.want {
				t.Errorf("(%s).Matches(%s) = %v, want %v", tt.pattern, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		desc Descriptor
		want int
	}{
		{Wildcard(), 0},
		{Int(), 1},
		{List(Wildcard()), 1},
		{List(Int()), 2},
		{Map(String(), Wildcard()), 2},
		{Map(String(), Int()), 3},
	}
	for _, tt := range tests {
		if got := tt.desc.Specificity(); got != tt.want {
			t.Errorf("(%s).Specificity() = %d, want %d", tt.desc, got, tt.want)
		}
	}
}

func TestSubstitute(t *testing.T) {
	params := []string{"T", "U"}
	args := []Descriptor{Int(), String()}

	d := List(Var("T")).Substitute(params, args)
	if !d.Equal(List(Int())) {
		t.Errorf("Expected list[int], got %s", d)
	}

	d = Map(String(), Var("U")).Substitute(params, args)
	if !d.Equal(Map(String(), String())) {
		t.Errorf("Expected map[string,string], got %s", d)
	}

	// Unknown variables stay in place and are reported by FirstVar
	d = List(Var("V")).Substitute(params, args)
	name, ok := d.FirstVar()
	if !ok || name != "V" {
		t.Errorf("Expected unresolved variable V, got %q (found=%v)", name, ok)
	}

	// Substitution does not mutate the original
	orig := List(Var("T"))
	orig.Substitute(params, args)
	if !orig.Equal(List(Var("T"))) {
		t.Error("Substitute must not mutate its receiver")
	}
}

func TestShapeFieldByName(t *testing.T) {
	s := &Shape{
		Name: "User",
		Fields: []Field{
			{Name: "id", Type: String(), Required: true},
			{Name: "age", Type: Int()},
		},
	}
	f, ok := s.FieldByName("age")
	if !ok || !f.Type.Equal(Int()) {
		t.Fatalf("Expected age field of type int")
	}
	if _, ok := s.FieldByName("missing"); ok {
		t.Error("Unknown field should not resolve")
	}
	if !s.Descriptor(Int()).Equal(Aggregate("User", Int())) {
		t.Error("Shape descriptor should apply type arguments")
	}
}
