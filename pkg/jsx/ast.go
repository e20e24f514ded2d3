// Package jsx is a small TSX syntax tree for generated components, with a
// printer that renders it as source text.
package jsx

// Expr is any printable TSX expression, including JSX elements.
type Expr interface {
	expr()
}

// Raw is opaque expression text copied verbatim.
type Raw struct {
	Code string
}

// String is a quoted string literal.
type String struct {
	Value string
}

// Null is the `null` literal.
type Null struct{}

// Concat joins parts with `+`, left to right.
type Concat struct {
	Parts []Expr
}

// Prop is one key of an object literal.
type Prop struct {
	Key   string
	Value Expr
}

// Object is an object literal with ordered keys.
type Object struct {
	Props []Prop
}

// Call is `Callee(Args...)`.
type Call struct {
	Callee string
	Args   []Expr
}

// Param is an arrow-function parameter with an optional type annotation.
type Param struct {
	Name string
	Type string
}

// Arrow is `(Params) => Body`. Statement bodies are printed inside braces.
type Arrow struct {
	Params    []Param
	Body      Expr
	Statement bool
}

// Attr is a JSX attribute. Spread attributes print as `{...Value}`.
type Attr struct {
	Name   string
	Value  Expr
	Spread bool
}

// Element is a JSX element.
type Element struct {
	Symbol   string
	Attrs    []Attr
	Children []Expr
}

// Conditional is `Cond ? Then : Else`.
type Conditional struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Map is `Iterable.map((Item, Index) => Body)`. Index is optional.
type Map struct {
	Iterable Expr
	Item     Param
	Index    *Param
	Body     Expr
}

func (*Raw) expr()         {}
func (*String) expr()      {}
func (*Null) expr()        {}
func (*Concat) expr()      {}
func (*Object) expr()      {}
func (*Call) expr()        {}
func (*Arrow) expr()       {}
func (*Element) expr()     {}
func (*Conditional) expr() {}
func (*Map) expr()         {}

// LiteralAttr returns `name={"value"}`.
func LiteralAttr(name, value string) Attr {
	return Attr{Name: name, Value: &String{Value: value}}
}

// ExprAttr returns `name={code}`.
func ExprAttr(name, code string) Attr {
	return Attr{Name: name, Value: &Raw{Code: code}}
}

// SpreadAttr returns `{...value}`.
func SpreadAttr(value Expr) Attr {
	return Attr{Value: value, Spread: true}
}
