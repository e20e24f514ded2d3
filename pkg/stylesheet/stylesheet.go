// Package stylesheet reads the rules of a component's <style> blocks.
//
// Only top-level rulesets are kept. At-rules and everything nested in them
// (@media, @keyframes, @supports) are skipped, since the Doric style table
// has no notion of conditions.
package stylesheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/recera/vue2doric/pkg/source"
)

// Parse returns the rulesets of css in source order. A rule lists its
// selector group as written, comma separated.
func Parse(text string) (source.RuleSet, error) {
	p := css.NewParser(parse.NewInputString(text), false)

	var (
		rules    source.RuleSet
		group    []string
		current  *source.Rule
		atDepth  int
		ruleSkip int
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse stylesheet: %w", err)
			}
			return rules, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.QualifiedRuleGrammar:
			if atDepth == 0 {
				group = append(group, selectorText(p.Values()))
			}
		case css.BeginRulesetGrammar:
			if atDepth > 0 || current != nil {
				// nested ruleset
				ruleSkip++
				continue
			}
			group = append(group, selectorText(p.Values()))
			current = &source.Rule{Selector: strings.Join(nonEmpty(group), ", ")}
			group = group[:0]
		case css.EndRulesetGrammar:
			if ruleSkip > 0 {
				ruleSkip--
				continue
			}
			if current != nil {
				rules = append(rules, *current)
				current = nil
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if current != nil && ruleSkip == 0 {
				current.Declarations = appendDeclaration(current.Declarations, data, p.Values())
			}
		}
	}
}

// ParseDeclarations reads an inline declaration list such as the value of
// a style attribute: `color: red; font-size: 12px`.
func ParseDeclarations(text string) ([]source.Declaration, error) {
	p := css.NewParser(parse.NewInputString(text), true)

	var decls []source.Declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse declarations: %w", err)
			}
			return decls, nil
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = appendDeclaration(decls, data, p.Values())
		}
	}
}

func appendDeclaration(decls []source.Declaration, property []byte, values []css.Token) []source.Declaration {
	prop := strings.TrimSpace(string(property))
	if prop == "" {
		return decls
	}
	d := source.Declaration{Property: prop, Value: tokenText(values)}
	for i := range decls {
		if decls[i].Property == d.Property {
			decls[i].Value = d.Value
			return decls
		}
	}
	return append(decls, d)
}

// selectorText joins the buffered selector tokens. The grammar's own data is
// the delimiter that ended the selector, not part of it.
func selectorText(values []css.Token) string {
	return strings.Trim(tokenText(values), ",{ \t\r\n")
}

func tokenText(values []css.Token) string {
	var b strings.Builder
	for _, v := range values {
		b.Write(v.Data)
	}
	return strings.TrimSpace(b.String())
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
