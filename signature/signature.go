// Package signature parses the description of an interface that dupegen
// writes an owned handle for.
//
// The accepted form is
//
//	[ "[" type-params "]" ] interface-path [ "where" bounds ]
//
// for example
//
//	Shape
//	[T any] Shape[T]
//	[K comparable, V dupe.Cloner[V]] shapes.Cache[K, V]
//	[R] Decoder[R] where R: io.Reader + io.Closer
//
// Type parameters follow Go grouping rules, so "T, U any" gives both any,
// and a parameter written without a constraint is any. Bounds in the where
// clause are merged into the constraint of the parameter they name.
package signature

import (
	"fmt"
	"strings"
)

type TypeParam struct {
	Name       string
	Constraint string
}

// Bound is one entry of a where clause.
type Bound struct {
	Param       string
	Constraints []string
}

// Signature is an interface reference together with the type parameters it
// is generic over.
type Signature struct {
	TypeParams []TypeParam
	// Qualifier is the package name in a qualified path such as shapes.Shape.
	Qualifier string
	Name      string
	TypeArgs  []string
	Where     []Bound
}

func (s *Signature) Generic() bool {
	return len(s.TypeParams) > 0
}

// Path returns the interface reference, e.g. shapes.Shape[T, U].
func (s *Signature) Path() string {
	sb := &strings.Builder{}
	if s.Qualifier != "" {
		sb.WriteString(s.Qualifier)
		sb.WriteString(".")
	}
	sb.WriteString(s.Name)
	if len(s.TypeArgs) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(s.TypeArgs, ", "))
		sb.WriteString("]")
	}
	return sb.String()
}

// Constraint returns the constraint of the type parameter called name with
// the bounds of the where clause merged in.
func (s *Signature) Constraint(name string) string {
	var base string
	for _, p := range s.TypeParams {
		if p.Name == name {
			base = p.Constraint
		}
	}
	var extra []string
	for _, b := range s.Where {
		if b.Param == name {
			extra = append(extra, b.Constraints...)
		}
	}
	if len(extra) == 0 {
		return base
	}
	if base == "any" && len(extra) == 1 {
		return extra[0]
	}
	var elems []string
	if base != "any" {
		elems = append(elems, base)
	}
	elems = append(elems, extra...)
	return "interface{ " + strings.Join(elems, "; ") + " }"
}

// TypeParamDecl returns the type parameter list for a declaration, e.g.
// [T any, U interface{ comparable; fmt.Stringer }], or "" if s is not generic.
func (s *Signature) TypeParamDecl() string {
	if !s.Generic() {
		return ""
	}
	decls := make([]string, len(s.TypeParams))
	for i, p := range s.TypeParams {
		c := s.Constraint(p.Name)
		// [P *C] would read as an array length
		if strings.HasPrefix(c, "*") || strings.HasPrefix(c, "(") {
			c = "interface{ " + c + " }"
		}
		decls[i] = p.Name + " " + c
	}
	return "[" + strings.Join(decls, ", ") + "]"
}

// TypeParamNames returns the type parameters as type arguments, e.g. [T, U].
func (s *Signature) TypeParamNames() string {
	if !s.Generic() {
		return ""
	}
	names := make([]string, len(s.TypeParams))
	for i, p := range s.TypeParams {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func (s *Signature) String() string {
	sb := &strings.Builder{}
	if s.Generic() {
		params := make([]string, len(s.TypeParams))
		for i, p := range s.TypeParams {
			params[i] = p.Name + " " + p.Constraint
		}
		fmt.Fprintf(sb, "[%s] ", strings.Join(params, ", "))
	}
	sb.WriteString(s.Path())
	if len(s.Where) > 0 {
		bounds := make([]string, len(s.Where))
		for i, b := range s.Where {
			bounds[i] = b.Param + ": " + strings.Join(b.Constraints, " + ")
		}
		sb.WriteString(" where ")
		sb.WriteString(strings.Join(bounds, ", "))
	}
	return sb.String()
}

// SyntaxError reports malformed signature input.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("signature %q: offset %d: %s", e.Input, e.Offset, e.Msg)
}
