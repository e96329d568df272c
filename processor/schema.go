/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is a YAML declaration file describing aggregate types to register.
//
//	package: models
//	types:
//	  User:
//	    goType: User
//	    fields:
//	      id: string
//	      name: {type: string}
//	      tags: {type: list[string], required: false}
//	  Box:
//	    goType: Box
//	    typeParams: [T]
//	    fields:
//	      value: T
//
// Field order in the file is declaration order, which is the order fields
// convert in, so parsing preserves it.
type Schema struct {
	Package string
	Types   []TypeDecl
}

// TypeDecl declares one aggregate.
type TypeDecl struct {
	Name       string
	GoType     string
	TypeParams []string
	AllowExtra bool
	Fields     []FieldDecl
}

// FieldDecl declares one aggregate field.
type FieldDecl struct {
	Name       string
	Type       string
	Required   *bool
	Default    any
	HasDefault bool
}

// ParseSchema parses a schema document.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if s.Package == "" {
		return nil, fmt.Errorf("schema is missing a package name")
	}
	if len(s.Types) == 0 {
		return nil, fmt.Errorf("schema declares no types")
	}
	return &s, nil
}

func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema must be a mapping, got %s at line %d", nodeKind(node), node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "package":
			if err := val.Decode(&s.Package); err != nil {
				return err
			}
		case "types":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("types must be a mapping at line %d", val.Line)
			}
			for j := 0; j < len(val.Content); j += 2 {
				var decl TypeDecl
				if err := val.Content[j+1].Decode(&decl); err != nil {
					return err
				}
				decl.Name = val.Content[j].Value
				if decl.GoType == "" {
					decl.GoType = decl.Name
				}
				s.Types = append(s.Types, decl)
			}
		default:
			return fmt.Errorf("unknown schema key %q at line %d", key.Value, key.Line)
		}
	}
	return nil
}

func (t *TypeDecl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("type declaration must be a mapping at line %d", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "goType":
			if err := val.Decode(&t.GoType); err != nil {
				return err
			}
		case "typeParams":
			if err := val.Decode(&t.TypeParams); err != nil {
				return err
			}
		case "allowExtra":
			if err := val.Decode(&t.AllowExtra); err != nil {
				return err
			}
		case "fields":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("fields must be a mapping at line %d", val.Line)
			}
			for j := 0; j < len(val.Content); j += 2 {
				var f FieldDecl
				if err := f.unmarshal(val.Content[j+1]); err != nil {
					return err
				}
				f.Name = val.Content[j].Value
				t.Fields = append(t.Fields, f)
			}
		default:
			return fmt.Errorf("unknown type declaration key %q at line %d", key.Value, key.Line)
		}
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("type declaration at line %d has no fields", node.Line)
	}
	return nil
}

func (f *FieldDecl) unmarshal(node *yaml.Node) error {
	// Shorthand: a bare scalar is the type expression.
	if node.Kind == yaml.ScalarNode {
		f.Type = node.Value
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("field declaration must be a scalar or mapping at line %d", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "type":
			if err := val.Decode(&f.Type); err != nil {
				return err
			}
		case "required":
			f.Required = new(bool)
			if err := val.Decode(f.Required); err != nil {
				return err
			}
		case "default":
			if err := val.Decode(&f.Default); err != nil {
				return err
			}
			f.HasDefault = true
		default:
			return fmt.Errorf("unknown field declaration key %q at line %d", key.Value, key.Line)
		}
	}
	if f.Type == "" {
		return fmt.Errorf("field declaration at line %d is missing a type", node.Line)
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
