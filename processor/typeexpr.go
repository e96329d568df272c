/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"fmt"
	"strings"
)

// parseTypeExpr translates a schema type expression into the Go descriptor
// constructor expression it generates. Known names: null, bool, int, float,
// string, time, any, list[T], set[T], map[string,V], tuple[A,B,...],
// optional[T], union[A|B|...]. A declared type parameter becomes a type
// variable; any other name becomes a forward reference.
func parseTypeExpr(expr string, params map[string]bool) (string, error) {
	p := &typeParser{src: expr, params: params}
	out, err := p.parse()
	if err != nil {
		return "", fmt.Errorf("type expression %q: %w", expr, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return "", fmt.Errorf("type expression %q: trailing input at offset %d", expr, p.pos)
	}
	return out, nil
}

type typeParser struct {
	src    string
	pos    int
	params map[string]bool
}

func (p *typeParser) parse() (string, error) {
	name := p.ident()
	if name == "" {
		return "", fmt.Errorf("expected a type name at offset %d", p.pos)
	}

	args, seps, err := p.argList()
	if err != nil {
		return "", err
	}

	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}

	primitives := map[string]string{
		"null": "Null", "bool": "Bool", "int": "Int", "float": "Float",
		"string": "String", "time": "Time", "any": "Any",
	}

	switch name {
	case "null", "bool", "int", "float", "string", "time", "any":
		if err := arity(0); err != nil {
			return "", err
		}
		return fmt.Sprintf("typedesc.%s()", primitives[name]), nil
	case "list":
		if err := arity(1); err != nil {
			return "", err
		}
		return fmt.Sprintf("typedesc.List(%s)", args[0]), nil
	case "set":
		if err := arity(1); err != nil {
			return "", err
		}
		return fmt.Sprintf("typedesc.Set(%s)", args[0]), nil
	case "map":
		if err := arity(2); err != nil {
			return "", err
		}
		if args[0] != "typedesc.String()" {
			return "", fmt.Errorf("map keys must be string")
		}
		return fmt.Sprintf("typedesc.Map(%s, %s)", args[0], args[1]), nil
	case "tuple":
		if len(args) == 0 {
			return "", fmt.Errorf("tuple needs at least one argument")
		}
		return fmt.Sprintf("typedesc.Tuple(%s)", strings.Join(args, ", ")), nil
	case "optional":
		if err := arity(1); err != nil {
			return "", err
		}
		return fmt.Sprintf("typedesc.Optional(%s)", args[0]), nil
	case "union":
		if len(args) < 2 {
			return "", fmt.Errorf("union needs at least two alternatives")
		}
		for _, s := range seps {
			if s != '|' {
				return "", fmt.Errorf("union alternatives are separated by |")
			}
		}
		return fmt.Sprintf("typedesc.Union(%s)", strings.Join(args, ", ")), nil
	default:
		if p.params[name] {
			if err := arity(0); err != nil {
				return "", err
			}
			return fmt.Sprintf("typedesc.Var(%q)", name), nil
		}
		if len(args) == 0 {
			return fmt.Sprintf("typedesc.Ref(%q)", name), nil
		}
		return fmt.Sprintf("typedesc.Ref(%q, %s)", name, strings.Join(args, ", ")), nil
	}
}

func (p *typeParser) argList() (args []string, seps []byte, err error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return nil, nil, nil
	}
	p.pos++ // '['
	for {
		arg, err := p.parse()
		if err != nil {
			return nil, nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, nil, fmt.Errorf("unterminated argument list")
		}
		switch p.src[p.pos] {
		case ']':
			p.pos++
			return args, seps, nil
		case ',', '|':
			seps = append(seps, p.src[p.pos])
			p.pos++
		default:
			return nil, nil, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '[' || c == ']' || c == ',' || c == '|' || c == ' ' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
