// Package compiler turns a parsed Vue component (template tree, stylesheet
// rules, script bindings) into a Doric TSX component.
//
// All state of a compile lives in a Context, so compiles of different
// components never share anything and may run concurrently.
package compiler

import (
	"io"
	"log/slog"

	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

// Builder assembles target nodes. jsx.Factory is the TSX implementation.
type Builder interface {
	MakeElement(symbol string, attrs []jsx.Attr, children []jsx.Expr) jsx.Expr
	MakeText(literal string) jsx.Expr
	MakeConditional(cond string, then, otherwise jsx.Expr) jsx.Expr
	MakeMap(iterable, alias, indexAlias string, body jsx.Expr) jsx.Expr
}

// Options tune a compile.
type Options struct {
	// RuntimeModule is the import path of the Doric runtime. Defaults to
	// doric.RuntimeModule.
	RuntimeModule string
	// Panel adds an @Entry panel class that mounts the component.
	Panel bool
	// Tags extends the built-in tag table.
	Tags *doric.TagTable
	// Builder defaults to jsx.Factory.
	Builder Builder
	// Logger receives warnings. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Context is the state of a single compile.
type Context struct {
	Component string
	Root      *source.Element
	Rules     source.RuleSet
	Bindings  source.BindingMap

	Imports  *ImportRegistry
	Styles   *StyleTable
	Warnings []error

	opts Options
}

// NewContext prepares a compile of one component. The component name is
// taken from bindings.Component.
func NewContext(root *source.Element, rules source.RuleSet, bindings source.BindingMap, opts Options) *Context {
	if opts.RuntimeModule == "" {
		opts.RuntimeModule = doric.RuntimeModule
	}
	if opts.Builder == nil {
		opts.Builder = jsx.Factory{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if bindings.Lang == "" {
		bindings.Lang = "js"
	}
	return &Context{
		Component: bindings.Component,
		Root:      root,
		Rules:     rules,
		Bindings:  bindings,
		Imports:   NewImportRegistry(),
		Styles:    NewStyleTable(rules),
		opts:      opts,
	}
}

func (c *Context) warn(w error, attrs ...any) {
	c.Warnings = append(c.Warnings, w)
	c.opts.Logger.Warn(w.Error(), append([]any{"component", c.Component}, attrs...)...)
}
