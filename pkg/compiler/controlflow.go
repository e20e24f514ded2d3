package compiler

import (
	"strings"

	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

// wrapControlFlow wraps an element's built node in its v-if chain or its
// v-for iteration. v-if takes precedence when both are present.
func (c *Context) wrapControlFlow(el *source.Element, b built) (built, error) {
	if cond := strings.TrimSpace(el.If); cond != "" {
		if el.For != nil {
			c.warn(&DirectiveConflictWarning{Tag: el.Tag}, "tag", el.Tag)
		}
		otherwise, symbols, err := c.buildBranches(el.Conditions)
		if err != nil {
			return built{}, err
		}
		b.node = c.opts.Builder.MakeConditional(operand(cond), b.node, otherwise)
		b.symbols = append(b.symbols, symbols...)
		return b, nil
	}

	if it := el.For; it != nil {
		b.node = c.opts.Builder.MakeMap(operand(it.Source), it.Alias, it.Index, b.node)
	}
	return b, nil
}

// buildBranches folds v-else-if / v-else siblings into the else side of a
// conditional. Branches are built in source order and folded from the last
// one; a nil result means `null`.
func (c *Context) buildBranches(branches []source.Branch) (jsx.Expr, []doric.Symbol, error) {
	nodes := make([]jsx.Expr, len(branches))
	var symbols []doric.Symbol
	for i, br := range branches {
		b, err := c.buildElement(br.Element)
		if err != nil {
			return nil, nil, err
		}
		nodes[i] = b.node
		symbols = append(symbols, b.symbols...)
	}

	var otherwise jsx.Expr
	for i := len(branches) - 1; i >= 0; i-- {
		cond := strings.TrimSpace(branches[i].Cond)
		if cond == "" {
			otherwise = nodes[i]
			continue
		}
		otherwise = c.opts.Builder.MakeConditional(operand(cond), nodes[i], otherwise)
	}
	return otherwise, symbols, nil
}
