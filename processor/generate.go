/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
)

// Generate renders the Go registration code for a schema: one init()
// calling registry.RegisterAggregate for each declared type, with field
// type overrides, requiredness, and defaults carried over from the
// declaration file.
func Generate(s *Schema) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "// Code generated by schemagen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", s.Package)
	fmt.Fprintf(&b, "import (\n")
	fmt.Fprintf(&b, "\t%q\n", "github.com/suparena/typeconv/registry")
	fmt.Fprintf(&b, "\t%q\n", "github.com/suparena/typeconv/typedesc")
	fmt.Fprintf(&b, ")\n\n")
	fmt.Fprintf(&b, "func init() {\n")

	for _, t := range s.Types {
		params := make(map[string]bool, len(t.TypeParams))
		for _, p := range t.TypeParams {
			params[p] = true
		}

		fmt.Fprintf(&b, "\tregistry.RegisterAggregate[%s](%q,\n", t.GoType, t.Name)
		if len(t.TypeParams) > 0 {
			fmt.Fprintf(&b, "\t\tregistry.WithTypeParams(")
			for i, p := range t.TypeParams {
				if i > 0 {
					fmt.Fprintf(&b, ", ")
				}
				fmt.Fprintf(&b, "%q", p)
			}
			fmt.Fprintf(&b, "),\n")
		}
		if t.AllowExtra {
			fmt.Fprintf(&b, "\t\tregistry.WithAllowExtra(),\n")
		}
		for _, f := range t.Fields {
			expr, err := parseTypeExpr(f.Type, params)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
			}
			fmt.Fprintf(&b, "\t\tregistry.WithFieldType(%q, %s),\n", f.Name, expr)
			if f.Required != nil {
				if *f.Required {
					fmt.Fprintf(&b, "\t\tregistry.WithRequired(%q),\n", f.Name)
				} else {
					fmt.Fprintf(&b, "\t\tregistry.WithOptional(%q),\n", f.Name)
				}
			}
			if f.HasDefault {
				lit, err := defaultLiteral(f.Default)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
				}
				fmt.Fprintf(&b, "\t\tregistry.WithDefault(%q, func() any { return %s }),\n", f.Name, lit)
			}
		}
		fmt.Fprintf(&b, "\t)\n")
	}
	fmt.Fprintf(&b, "}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}

// defaultLiteral renders a YAML default value as a Go literal in the
// engine's canonical forms.
func defaultLiteral(v any) (string, error) {
	switch d := v.(type) {
	case nil:
		return "nil", nil
	case bool:
		return fmt.Sprintf("%t", d), nil
	case int:
		return fmt.Sprintf("int64(%d)", d), nil
	case int64:
		return fmt.Sprintf("int64(%d)", d), nil
	case float64:
		return fmt.Sprintf("float64(%g)", d), nil
	case string:
		return fmt.Sprintf("%q", d), nil
	default:
		return "", fmt.Errorf("unsupported default value %T", v)
	}
}

// Main is the processor entry point used by cmd/schemagen: it reads the
// schema file named by the first remaining argument and writes generated
// code to the optional second argument, or stdout.
func Main() {
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: schemagen [flags] <schema.yaml> [output.go]")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}

	schema, err := ParseSchema(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}

	src, err := Generate(schema)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}

	if flag.NArg() >= 2 {
		if err := os.WriteFile(flag.Arg(1), src, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
			os.Exit(1)
		}
		return
	}
	os.Stdout.Write(src)
}
