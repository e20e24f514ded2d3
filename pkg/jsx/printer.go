package jsx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Printer renders expressions and statement lines with two-space
// indentation.
type Printer struct {
	buf   strings.Builder
	level int
}

// Print renders e at indentation level zero.
func Print(e Expr) string {
	var p Printer
	p.Expr(e)
	return p.String()
}

// String returns everything printed so far.
func (p *Printer) String() string {
	return p.buf.String()
}

// Indent increases the indentation of following lines.
func (p *Printer) Indent() { p.level++ }

// Dedent decreases the indentation of following lines.
func (p *Printer) Dedent() {
	if p.level > 0 {
		p.level--
	}
}

// Line writes one indented line.
func (p *Printer) Line(format string, args ...any) {
	p.writeIndent()
	if len(args) == 0 {
		p.buf.WriteString(format)
	} else {
		fmt.Fprintf(&p.buf, format, args...)
	}
	p.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	p.buf.WriteByte('\n')
}

// Raw writes text verbatim.
func (p *Printer) Raw(text string) {
	p.buf.WriteString(text)
}

// Return writes `return (<e>);` with e on its own lines.
func (p *Printer) Return(e Expr) {
	p.writeIndent()
	p.buf.WriteString("return (")
	p.level++
	p.newline()
	p.Expr(e)
	p.level--
	p.newline()
	p.buf.WriteString(");\n")
}

// Expr writes e at the current position. Continuation lines use the current
// indentation level.
func (p *Printer) Expr(e Expr) {
	switch n := e.(type) {
	case nil, *Null:
		p.buf.WriteString("null")
	case *Raw:
		p.buf.WriteString(n.Code)
	case *String:
		p.buf.WriteString(Quote(n.Value))
	case *Concat:
		for i, part := range n.Parts {
			if i > 0 {
				p.buf.WriteString(" + ")
			}
			p.Expr(part)
		}
	case *Object:
		p.object(n)
	case *Call:
		p.buf.WriteString(n.Callee)
		p.buf.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.Expr(arg)
		}
		p.buf.WriteByte(')')
	case *Arrow:
		p.params(n.Params)
		p.buf.WriteString(" => ")
		switch {
		case n.Statement:
			p.buf.WriteString("{ ")
			p.Expr(n.Body)
			p.buf.WriteString("; }")
		case isObject(n.Body):
			p.buf.WriteByte('(')
			p.Expr(n.Body)
			p.buf.WriteByte(')')
		default:
			p.Expr(n.Body)
		}
	case *Element:
		p.element(n)
	case *Conditional:
		p.Expr(n.Cond)
		p.buf.WriteString(" ? ")
		p.branch(n.Then)
		p.buf.WriteString(" : ")
		p.branch(n.Else)
	case *Map:
		p.Expr(n.Iterable)
		p.buf.WriteString(".map(")
		params := []Param{n.Item}
		if n.Index != nil {
			params = append(params, *n.Index)
		}
		p.params(params)
		p.buf.WriteString(" => ")
		p.branch(n.Body)
		p.buf.WriteByte(')')
	default:
		panic(fmt.Sprintf("jsx: unknown expression %T", e))
	}
}

func (p *Printer) element(n *Element) {
	p.buf.WriteByte('<')
	p.buf.WriteString(n.Symbol)
	for _, a := range n.Attrs {
		p.buf.WriteByte(' ')
		if a.Spread {
			p.buf.WriteString("{...")
			p.Expr(a.Value)
			p.buf.WriteByte('}')
			continue
		}
		p.buf.WriteString(a.Name)
		p.buf.WriteString("={")
		p.Expr(a.Value)
		p.buf.WriteByte('}')
	}
	if len(n.Children) == 0 {
		p.buf.WriteString(" />")
		return
	}
	p.buf.WriteByte('>')
	p.level++
	for _, child := range n.Children {
		p.newline()
		if el, ok := child.(*Element); ok {
			p.element(el)
			continue
		}
		p.buf.WriteByte('{')
		p.Expr(child)
		p.buf.WriteByte('}')
	}
	p.level--
	p.newline()
	p.buf.WriteString("</")
	p.buf.WriteString(n.Symbol)
	p.buf.WriteByte('>')
}

// branch prints elements inside parentheses on their own lines.
func (p *Printer) branch(e Expr) {
	el, ok := e.(*Element)
	if !ok {
		p.Expr(e)
		return
	}
	p.buf.WriteByte('(')
	p.level++
	p.newline()
	p.element(el)
	p.level--
	p.newline()
	p.buf.WriteByte(')')
}

func (p *Printer) object(o *Object) {
	if len(o.Props) == 0 {
		p.buf.WriteString("{}")
		return
	}
	p.buf.WriteString("{ ")
	for i, prop := range o.Props {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(Key(prop.Key))
		p.buf.WriteString(": ")
		p.Expr(prop.Value)
	}
	p.buf.WriteString(" }")
}

func (p *Printer) params(params []Param) {
	p.buf.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(param.Name)
		if param.Type != "" {
			p.buf.WriteString(": ")
			p.buf.WriteString(param.Type)
		}
	}
	p.buf.WriteByte(')')
}

func (p *Printer) newline() {
	p.buf.WriteByte('\n')
	p.writeIndent()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.level; i++ {
		p.buf.WriteString("  ")
	}
}

func isObject(e Expr) bool {
	_, ok := e.(*Object)
	return ok
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Key returns an object key, quoted unless it is a plain identifier.
func Key(k string) string {
	if IsIdentifier(k) {
		return k
	}
	return Quote(k)
}

// IsIdentifier reports whether s is a plain identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
