package signature

import (
	"fmt"
	"go/token"
	"go/types"

	"github.com/cottand/dupe/util"
)

type state int

const (
	stateStart state = iota
	stateGenerics
	statePath
	stateConstraints
)

const whereKeyword = "where"

type parser struct {
	src      string
	brackets util.Stack[item]

	sawGenerics bool
	sawWhere    bool
	whereAt     int

	generics    []item
	path        []item
	constraints []item
}

// Parse parses src into a Signature. It returns a *SyntaxError for
// malformed input.
func Parse(src string) (*Signature, error) {
	items, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src}
	if err := p.classify(items); err != nil {
		return nil, err
	}
	return p.signature()
}

func (p *parser) errorf(off int, format string, args ...any) error {
	return &SyntaxError{Input: p.src, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// classify sorts items into type parameters, path and constraints in a
// single pass.
func (p *parser) classify(items []item) error {
	st := stateStart
	for _, it := range items {
		if st == stateStart {
			if it.tok == token.LBRACK {
				p.brackets.Push(it)
				p.sawGenerics = true
				st = stateGenerics
				continue
			}
			st = statePath
		}

		switch st {
		case stateGenerics:
			closed, err := p.track(it)
			if err != nil {
				return err
			}
			if closed && p.brackets.Len() == 0 {
				st = statePath
				continue
			}
			p.generics = append(p.generics, it)

		case statePath:
			if it.tok == token.IDENT && it.lit == whereKeyword && p.brackets.Len() == 0 {
				p.sawWhere = true
				p.whereAt = it.off
				st = stateConstraints
				continue
			}
			if _, err := p.track(it); err != nil {
				return err
			}
			p.path = append(p.path, it)

		case stateConstraints:
			if _, err := p.track(it); err != nil {
				return err
			}
			p.constraints = append(p.constraints, it)
		}
	}

	if open, ok := p.brackets.Peek(); ok {
		if st == stateGenerics && p.brackets.Len() == 1 {
			return p.errorf(open.off, "unclosed type parameter list")
		}
		return p.errorf(open.off, "unclosed %s", open.tok)
	}
	return nil
}

// track keeps brackets balanced and reports whether it closed one.
func (p *parser) track(it item) (closed bool, err error) {
	switch {
	case isOpen(it.tok):
		p.brackets.Push(it)
		return false, nil
	case isClose(it.tok):
		open, ok := p.brackets.Pop()
		if !ok {
			return false, p.errorf(it.off, "unexpected %s", it.tok)
		}
		if closerOf[open.tok] != it.tok {
			return false, p.errorf(it.off, "%s does not match %s at offset %d", it.tok, open.tok, open.off)
		}
		return true, nil
	}
	return false, nil
}

func (p *parser) signature() (*Signature, error) {
	sig := &Signature{}
	var err error
	if p.sawGenerics {
		if sig.TypeParams, err = p.typeParams(); err != nil {
			return nil, err
		}
	}
	if err = p.interfacePath(sig); err != nil {
		return nil, err
	}
	if p.sawWhere {
		if sig.Where, err = p.bounds(sig); err != nil {
			return nil, err
		}
	}
	return sig, nil
}

// segments splits items at top level commas, allowing one trailing comma.
func (p *parser) segments(items []item, what string) ([][]item, error) {
	parts := splitTop(items, token.COMMA)
	if last := len(parts) - 1; last > 0 && len(parts[last]) == 0 {
		parts = parts[:last]
	}
	for i, part := range parts {
		if len(part) == 0 {
			off := len(p.src)
			if i > 0 && len(parts[i-1]) > 0 {
				off = parts[i-1][len(parts[i-1])-1].end
			}
			return nil, p.errorf(off, "empty %s", what)
		}
	}
	return parts, nil
}

func (p *parser) typeParams() ([]TypeParam, error) {
	if len(p.generics) == 0 {
		return nil, p.errorf(0, "empty type parameter list")
	}
	parts, err := p.segments(p.generics, "type parameter")
	if err != nil {
		return nil, err
	}

	params := make([]TypeParam, len(parts))
	seen := map[string]bool{}
	for i, part := range parts {
		if part[0].tok != token.IDENT {
			return nil, p.errorf(part[0].off, "expected type parameter name, found %s", part[0])
		}
		name := part[0].lit
		if seen[name] {
			return nil, p.errorf(part[0].off, "type parameter %s declared twice", name)
		}
		seen[name] = true
		params[i] = TypeParam{Name: name, Constraint: span(p.src, part[1:])}
	}

	// T, U any: a parameter without a constraint shares the next one's
	next := "any"
	for i := len(params) - 1; i >= 0; i-- {
		if params[i].Constraint == "" {
			params[i].Constraint = next
		} else {
			next = params[i].Constraint
		}
	}
	return params, nil
}

func (p *parser) interfacePath(sig *Signature) error {
	items := p.path
	if len(items) == 0 {
		off := len(p.src)
		if p.sawWhere {
			off = p.whereAt
		}
		return p.errorf(off, "missing interface name")
	}

	i := 0
	if items[i].tok != token.IDENT {
		return p.errorf(items[i].off, "expected interface name, found %s", items[i])
	}
	sig.Name = items[i].lit
	i++
	if i < len(items) && items[i].tok == token.PERIOD {
		i++
		if i >= len(items) || items[i].tok != token.IDENT {
			return p.errorf(items[i-1].end, "expected interface name after %s.", sig.Name)
		}
		sig.Qualifier, sig.Name = sig.Name, items[i].lit
		i++
	}
	if i == len(items) {
		return nil
	}
	if items[i].tok != token.LBRACK {
		return p.errorf(items[i].off, "unexpected %s in interface path", items[i])
	}

	// the type argument list must close at the end of the path
	depth, closeAt := 0, -1
	for j := i; j < len(items) && closeAt < 0; j++ {
		switch {
		case isOpen(items[j].tok):
			depth++
		case isClose(items[j].tok):
			depth--
			if depth == 0 {
				closeAt = j
			}
		}
	}
	if closeAt != len(items)-1 {
		return p.errorf(items[closeAt+1].off, "unexpected %s after type arguments", items[closeAt+1])
	}
	args := items[i+1 : closeAt]
	if len(args) == 0 {
		return p.errorf(items[i].off, "empty type argument list")
	}
	parts, err := p.segments(args, "type argument")
	if err != nil {
		return err
	}
	declared := map[string]bool{}
	for _, tp := range sig.TypeParams {
		declared[tp.Name] = true
	}
	for _, part := range parts {
		if len(part) == 1 && part[0].tok == token.IDENT && !declared[part[0].lit] && !predeclaredType(part[0].lit) {
			return p.errorf(part[0].off, "type argument %s is not a declared type parameter", part[0].lit)
		}
		sig.TypeArgs = append(sig.TypeArgs, span(p.src, part))
	}
	return nil
}

func predeclaredType(name string) bool {
	_, ok := types.Universe.Lookup(name).(*types.TypeName)
	return ok
}

func (p *parser) bounds(sig *Signature) ([]Bound, error) {
	if len(p.constraints) == 0 {
		return nil, p.errorf(p.whereAt, "empty where clause")
	}
	params := map[string]bool{}
	for _, tp := range sig.TypeParams {
		params[tp.Name] = true
	}

	parts, err := p.segments(p.constraints, "where bound")
	if err != nil {
		return nil, err
	}
	var bounds []Bound
	index := map[string]int{}
	for _, part := range parts {
		if part[0].tok != token.IDENT {
			return nil, p.errorf(part[0].off, "expected type parameter name, found %s", part[0])
		}
		name := part[0].lit
		if !params[name] {
			return nil, p.errorf(part[0].off, "where clause bounds unknown type parameter %s", name)
		}
		if len(part) < 2 || part[1].tok != token.COLON {
			return nil, p.errorf(part[0].end, "expected : after %s", name)
		}

		var constraints []string
		for _, c := range splitTop(part[2:], token.ADD) {
			if len(c) == 0 {
				return nil, p.errorf(part[1].end, "missing constraint for %s", name)
			}
			constraints = append(constraints, span(p.src, c))
		}

		if at, ok := index[name]; ok {
			bounds[at].Constraints = append(bounds[at].Constraints, constraints...)
			continue
		}
		index[name] = len(bounds)
		bounds = append(bounds, Bound{Param: name, Constraints: constraints})
	}
	return bounds, nil
}
