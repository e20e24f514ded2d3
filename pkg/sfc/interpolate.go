package sfc

import (
	"strings"
	"unicode"

	"github.com/recera/vue2doric/pkg/source"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Interpolate splits text into literal fragments and {{ }} bindings, in
// source order. An unclosed {{ is kept as literal text and empty bindings
// are skipped.
func Interpolate(text string) []source.Token {
	var tokens []source.Token
	literal := func(s string) {
		if s == "" {
			return
		}
		if n := len(tokens); n > 0 && !tokens[n-1].IsBinding {
			tokens[n-1].Literal += s
			return
		}
		tokens = append(tokens, source.LiteralToken(s))
	}

	c := &cursor{input: text}
	for !c.eof() {
		literal(c.parseUntil(openDelim))
		if !c.consume(openDelim) {
			break
		}
		expr := c.parseUntil(closeDelim)
		if !c.consume(closeDelim) {
			literal(openDelim + expr)
			break
		}
		if expr = strings.TrimSpace(expr); expr != "" {
			tokens = append(tokens, source.BindingToken(expr))
		}
	}
	return tokens
}

// textNode builds the node for raw template text, or returns nil when the
// text is only whitespace. Whitespace runs in literal text collapse to one
// space and the outer edges are trimmed; binding expressions are kept as
// written.
func textNode(raw string) source.Node {
	tokens := Interpolate(raw)
	hasBinding := false
	for i := range tokens {
		if tokens[i].IsBinding {
			hasBinding = true
			continue
		}
		lit := collapseSpace(tokens[i].Literal)
		if i == 0 {
			lit = strings.TrimLeftFunc(lit, unicode.IsSpace)
		}
		if i == len(tokens)-1 {
			lit = strings.TrimRightFunc(lit, unicode.IsSpace)
		}
		tokens[i].Literal = lit
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if tok.IsBinding || tok.Literal != "" {
			kept = append(kept, tok)
		}
	}
	switch {
	case len(kept) == 0:
		return nil
	case !hasBinding:
		return &source.Text{Content: kept[0].Literal}
	}
	return &source.Expression{Tokens: kept}
}

// collapseSpace replaces each whitespace run in s with a single space.
func collapseSpace(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(words, " ")
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		out = " " + out
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		out += " "
	}
	return out
}
