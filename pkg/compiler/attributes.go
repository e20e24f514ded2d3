package compiler

import (
	"regexp"
	"strings"

	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

// vmParam is the single parameter of every generated component function.
const vmParam = "vm"

// dataScope is the object event handlers are invoked against.
const dataScope = vmParam + ".data"

var (
	attrNameRe   = regexp.MustCompile(`^[A-Za-z_$][\w$-]*$`)
	simplePathRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)
)

// resolveTag maps el's tag, recording a warning for unmapped tags.
func (c *Context) resolveTag(el *source.Element) doric.Symbol {
	sym, ok := c.opts.Tags.Lookup(el.Tag)
	if !ok {
		c.warn(&UnmappedTagWarning{Tag: el.Tag}, "tag", el.Tag)
	}
	return sym
}

// transformAttrs converts el's attributes in source order.
func (c *Context) transformAttrs(el *source.Element) []jsx.Attr {
	attrs := make([]jsx.Attr, 0, len(el.Attrs))
	for _, a := range el.Attrs {
		if event, ok := doric.IsEvent(a.Name); ok {
			handler := strings.TrimSpace(a.Value)
			if handler == "" {
				c.dropAttr(el, a.Name, "empty handler")
				continue
			}
			attrs = append(attrs, jsx.Attr{Name: doric.EventName(event), Value: callback(handler)})
			continue
		}

		name, bound := strings.CutPrefix(a.Name, doric.BindSigil)
		name = doric.LookupAttr(el.Tag, name)
		if !attrNameRe.MatchString(name) {
			c.dropAttr(el, a.Name, "not a valid attribute name")
			continue
		}
		if bound {
			expr := strings.TrimSpace(a.Value)
			if expr == "" {
				c.dropAttr(el, a.Name, "empty binding")
				continue
			}
			attrs = append(attrs, jsx.ExprAttr(name, expr))
			continue
		}
		attrs = append(attrs, jsx.LiteralAttr(name, a.Value))
	}
	return attrs
}

func (c *Context) dropAttr(el *source.Element, name, reason string) {
	c.warn(&DroppedAttributeWarning{Tag: el.Tag, Attr: name, Reason: reason}, "tag", el.Tag, "attr", name)
}

// callback wraps a handler into a zero-argument arrow. Handler paths are
// invoked against the component data; anything else runs as a statement.
func callback(handler string) jsx.Expr {
	if simplePathRe.MatchString(handler) {
		return &jsx.Arrow{Body: &jsx.Raw{Code: handler + ".call(" + dataScope + ")"}}
	}
	return &jsx.Arrow{Body: &jsx.Raw{Code: strings.TrimSuffix(handler, ";")}, Statement: true}
}
