// Package doric is the Doric side of the mapping: the view symbols a
// component may render to and the tables that map template tags, attributes
// and events onto them.
package doric

import "strings"

// RuntimeModule is the module the generated code imports its symbols from.
const RuntimeModule = "doric"

// Symbol names a Doric view or runtime export.
type Symbol string

const (
	VLayout  Symbol = "VLayout"
	HLayout  Symbol = "HLayout"
	Stack    Symbol = "Stack"
	Text     Symbol = "Text"
	Image    Symbol = "Image"
	Input    Symbol = "Input"
	Scroller Symbol = "Scroller"

	// Runtime exports used by emitted code, never produced by a tag.
	JSX   Symbol = "jsx"
	Panel Symbol = "Panel"
	Group Symbol = "Group"
	Entry Symbol = "Entry"
)

// Leaf symbols for text and interpolated-expression nodes.
const (
	TextLeaf       = Text
	ExpressionLeaf = Text
)

// NoMappedTag is rendered for template tags without a Doric counterpart. It
// is a JSX intrinsic name, so it is never imported.
const NoMappedTag Symbol = "no-mapped-tags"

// Views lists every symbol a tag mapping may target.
func Views() []Symbol {
	return []Symbol{VLayout, HLayout, Stack, Text, Image, Input, Scroller}
}

// ParseSymbol resolves a view name, case-insensitively.
func ParseSymbol(name string) (Symbol, bool) {
	for _, s := range Views() {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// Importable reports whether s is exported by the runtime module.
func (s Symbol) Importable() bool {
	return s != "" && s != NoMappedTag
}
