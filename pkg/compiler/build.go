package compiler

import (
	"fmt"
	"strings"

	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

// built is the result of one build step: the target node plus the runtime
// symbols it introduced. Callers merge symbols into the registry.
type built struct {
	node    jsx.Expr
	symbols []doric.Symbol
}

// buildNode builds n depth-first. Children come before their parent so the
// registry sees symbols in first-use order.
func (c *Context) buildNode(n source.Node) (built, error) {
	switch n := n.(type) {
	case *source.Element:
		return c.buildElement(n)
	case *source.Text:
		return c.buildText(n), nil
	case *source.Expression:
		return c.buildExpression(n), nil
	case nil:
		return built{}, fmt.Errorf("nil template node")
	default:
		return built{}, fmt.Errorf("unsupported template node %T", n)
	}
}

func (c *Context) buildElement(el *source.Element) (built, error) {
	children := make([]jsx.Expr, 0, len(el.Children))
	for _, child := range el.Children {
		b, err := c.buildNode(child)
		if err != nil {
			return built{}, err
		}
		c.Imports.Add(b.symbols...)
		children = append(children, b.node)
	}

	sym := c.resolveTag(el)
	attrs := c.transformAttrs(el)
	styleAttrs, err := c.resolveStyles(el)
	if err != nil {
		return built{}, err
	}
	attrs = append(attrs, styleAttrs...)

	node := c.opts.Builder.MakeElement(string(sym), attrs, children)
	return c.wrapControlFlow(el, built{node: node, symbols: []doric.Symbol{sym}})
}

func (c *Context) buildText(t *source.Text) built {
	return c.leaf(doric.TextLeaf, c.opts.Builder.MakeText(t.Content))
}

func (c *Context) buildExpression(e *source.Expression) built {
	return c.leaf(doric.ExpressionLeaf, concatTokens(c.opts.Builder, e.Tokens))
}

func (c *Context) leaf(sym doric.Symbol, value jsx.Expr) built {
	node := c.opts.Builder.MakeElement(string(sym), []jsx.Attr{{Name: "text", Value: value}}, nil)
	return built{node: node, symbols: []doric.Symbol{sym}}
}

// concatTokens joins tokens with `+` in source order. A single token is
// returned as is.
func concatTokens(b Builder, tokens []source.Token) jsx.Expr {
	parts := make([]jsx.Expr, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsBinding {
			parts = append(parts, bindingExpr(tok.Binding))
			continue
		}
		parts = append(parts, b.MakeText(tok.Literal))
	}
	switch len(parts) {
	case 0:
		return b.MakeText("")
	case 1:
		return parts[0]
	}
	return &jsx.Concat{Parts: parts}
}

func bindingExpr(expr string) jsx.Expr {
	return &jsx.Raw{Code: operand(expr)}
}

// operand parenthesizes expr unless it is a plain identifier path, so it
// keeps its meaning next to `+`, ` ? ` or `.map(`.
func operand(expr string) string {
	expr = strings.TrimSpace(expr)
	if simplePathRe.MatchString(expr) {
		return expr
	}
	return "(" + expr + ")"
}
