// Package source holds the parsed inputs of a component compile: the template
// element tree, the stylesheet rules and the script bindings.
package source

// Node is one node of a parsed template tree.
type Node interface {
	node()
}

// Attr is a source attribute as written in the template.
type Attr struct {
	Name  string
	Value string
}

// Iteration describes a v-for directive: `(Alias, Index) in Source`.
type Iteration struct {
	Source string
	Alias  string
	Index  string // empty when the directive has no index alias
}

// Branch is a v-else-if (Cond set) or v-else (Cond empty) sibling folded into
// the element carrying the v-if.
type Branch struct {
	Cond    string
	Element *Element
}

// Element represents a template element.
type Element struct {
	Tag   string
	Attrs []Attr

	StaticClass  string // class literal, may be JSON-quoted
	StaticStyle  string // JSON-encoded property map
	ClassBinding string // :class expression
	StyleBinding string // :style expression

	If         string
	For        *Iteration
	Conditions []Branch

	Children []Node
	Parent   *Element
}

// Text represents literal text content.
type Text struct {
	Content string
}

// Token is one piece of an interpolated text node. Exactly one of Binding or
// Literal is meaningful, selected by IsBinding.
type Token struct {
	Binding   string
	Literal   string
	IsBinding bool
}

// Expression represents text containing {{ }} interpolations, kept as the
// ordered token list.
type Expression struct {
	Tokens []Token
}

func (*Element) node()    {}
func (*Text) node()       {}
func (*Expression) node() {}

// BindingToken returns a binding token for expr.
func BindingToken(expr string) Token {
	return Token{Binding: expr, IsBinding: true}
}

// LiteralToken returns a literal fragment token.
func LiteralToken(s string) Token {
	return Token{Literal: s}
}

// IsRoot reports whether e has no parent.
func (e *Element) IsRoot() bool {
	return e.Parent == nil
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AppendChild adds child to e, setting the back-reference for elements.
func (e *Element) AppendChild(child Node) {
	if el, ok := child.(*Element); ok {
		el.Parent = e
	}
	e.Children = append(e.Children, child)
}
