package jsx

// Factory builds TSX nodes. It is the TSX implementation of the compiler's
// target-tree builder.
type Factory struct{}

// MakeElement returns `<symbol attrs>children</symbol>`.
func (Factory) MakeElement(symbol string, attrs []Attr, children []Expr) Expr {
	return &Element{Symbol: symbol, Attrs: attrs, Children: children}
}

// MakeText returns a string literal.
func (Factory) MakeText(literal string) Expr {
	return &String{Value: literal}
}

// MakeConditional returns `cond ? then : otherwise`; a nil otherwise
// becomes null.
func (Factory) MakeConditional(cond string, then, otherwise Expr) Expr {
	if otherwise == nil {
		otherwise = &Null{}
	}
	return &Conditional{Cond: &Raw{Code: cond}, Then: then, Else: otherwise}
}

// MakeMap returns `iterable.map((alias: any, index: number) => body)`. An
// empty indexAlias drops the index parameter.
func (Factory) MakeMap(iterable, alias, indexAlias string, body Expr) Expr {
	m := &Map{
		Iterable: &Raw{Code: iterable},
		Item:     Param{Name: alias, Type: "any"},
		Body:     body,
	}
	if indexAlias != "" {
		m.Index = &Param{Name: indexAlias, Type: "number"}
	}
	return m
}
