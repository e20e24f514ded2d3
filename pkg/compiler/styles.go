package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

// resolveStyleFunc is the generated runtime helper for class bindings.
const resolveStyleFunc = "resolveStyle"

// styleTableVar is the local holding the style table inside the component.
const styleTableVar = "styleTable"

// resolveStyles returns el's style attributes: selector-declared style,
// static inline style, class binding, style binding, in that order.
func (c *Context) resolveStyles(el *source.Element) ([]jsx.Attr, error) {
	var attrs []jsx.Attr

	var declared []source.Declaration
	for _, rule := range c.Rules {
		if matchesSelector(rule.Selector, el) {
			declared = mergeDeclarations(declared, rule.Declarations)
		}
	}
	if len(declared) > 0 {
		attrs = append(attrs, jsx.SpreadAttr(styleObject(declared)))
	}

	if el.StaticStyle != "" {
		static, err := decodeStaticStyle(el.StaticStyle)
		if err != nil {
			return nil, &StyleParseError{Tag: el.Tag, Literal: el.StaticStyle, Err: err}
		}
		if len(static) > 0 {
			attrs = append(attrs, jsx.SpreadAttr(styleObject(static)))
		}
	}

	if expr := strings.TrimSpace(el.ClassBinding); expr != "" {
		attrs = append(attrs, jsx.SpreadAttr(&jsx.Call{
			Callee: resolveStyleFunc,
			Args:   []jsx.Expr{&jsx.Raw{Code: styleTableVar}, &jsx.Raw{Code: expr}},
		}))
	}

	if expr := strings.TrimSpace(el.StyleBinding); expr != "" {
		attrs = append(attrs, jsx.SpreadAttr(&jsx.Raw{Code: "(" + expr + ")"}))
	}
	return attrs, nil
}

// matchesSelector reports whether any comma-separated sub-selector matches
// el: `#id` against the id attribute, `.class` against the static class
// literal, anything else against the tag name.
func matchesSelector(selector string, el *source.Element) bool {
	for _, sub := range strings.Split(selector, ",") {
		sub = strings.TrimSpace(sub)
		switch {
		case strings.HasPrefix(sub, "#"):
			if id, ok := el.Attr("id"); ok && stripQuotes(id) == sub[1:] {
				return true
			}
		case strings.HasPrefix(sub, "."):
			if el.StaticClass != "" && stripQuotes(el.StaticClass) == sub[1:] {
				return true
			}
		default:
			if sub != "" && sub == el.Tag {
				return true
			}
		}
	}
	return false
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func styleObject(decls []source.Declaration) *jsx.Object {
	obj := &jsx.Object{Props: make([]jsx.Prop, 0, len(decls))}
	for _, d := range decls {
		obj.Props = append(obj.Props, jsx.Prop{Key: d.Property, Value: &jsx.String{Value: d.Value}})
	}
	return obj
}

// decodeStaticStyle reads a JSON object of scalar values, keeping key order.
func decodeStaticStyle(literal string) ([]source.Declaration, error) {
	dec := json.NewDecoder(strings.NewReader(literal))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, found %v", tok)
	}

	var decls []source.Declaration
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected property name, found %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		var value string
		switch v := tok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("property %q: expected scalar value, found %v", key, tok)
		}
		decls = mergeDeclarations(decls, []source.Declaration{{Property: key, Value: value}})
	}

	if _, err = dec.Token(); err != nil {
		return nil, err
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after style object")
	}
	return decls, nil
}
