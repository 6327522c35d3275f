package signature

import (
	"go/scanner"
	"go/token"
	"strings"
)

type item struct {
	tok token.Token
	lit string
	// off and end delimit the token in the input
	off, end int
}

func (i item) String() string {
	if i.lit != "" {
		return i.lit
	}
	return i.tok.String()
}

func tokenize(src string) ([]item, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var firstErr error
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if firstErr == nil {
			firstErr = &SyntaxError{Input: src, Offset: pos.Offset, Msg: msg}
		}
	}, 0)

	var items []item
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// automatically inserted at newlines and at the end of input
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		it := item{tok: tok, lit: lit, off: file.Offset(pos)}
		it.end = it.off + len(it.String())
		items = append(items, it)
	}
	return items, firstErr
}

// span returns the input text covered by items, verbatim.
func span(src string, items []item) string {
	if len(items) == 0 {
		return ""
	}
	return strings.TrimSpace(src[items[0].off:items[len(items)-1].end])
}

func isOpen(tok token.Token) bool {
	return tok == token.LBRACK || tok == token.LPAREN || tok == token.LBRACE
}

func isClose(tok token.Token) bool {
	return tok == token.RBRACK || tok == token.RPAREN || tok == token.RBRACE
}

var closerOf = map[token.Token]token.Token{
	token.LBRACK: token.RBRACK,
	token.LPAREN: token.RPAREN,
	token.LBRACE: token.RBRACE,
}

// splitTop splits balanced items at every sep found outside brackets.
func splitTop(items []item, sep token.Token) [][]item {
	var parts [][]item
	depth, start := 0, 0
	for i, it := range items {
		switch {
		case isOpen(it.tok):
			depth++
		case isClose(it.tok):
			depth--
		case it.tok == sep && depth == 0:
			parts = append(parts, items[start:i])
			start = i + 1
		}
	}
	return append(parts, items[start:])
}
