package compiler

import "github.com/recera/vue2doric/pkg/doric"

// Compile transforms the context's template tree into an Output. A
// StyleParseError aborts the compile; unmapped tags and dropped attributes
// only add to ctx.Warnings.
func Compile(ctx *Context) (*Output, error) {
	if ctx.Root == nil {
		return nil, ErrNoTemplate
	}
	if !ctx.Root.IsRoot() {
		return nil, ErrNotRoot
	}

	ctx.Imports.Add(doric.JSX)
	root, err := ctx.buildNode(ctx.Root)
	if err != nil {
		return nil, err
	}
	ctx.Imports.Add(root.symbols...)
	if ctx.opts.Panel {
		ctx.Imports.Add(doric.Panel, doric.Group, doric.Entry)
	}

	out := &Output{
		Component:     ctx.Component,
		RuntimeModule: ctx.opts.RuntimeModule,
		Imports:       ctx.Imports.Symbols(),
		Function:      ctx.synthesize(root.node),
		Styles:        ctx.Styles,
		Script:        ctx.Bindings.Script,
		Lang:          ctx.Bindings.Lang,
		Panel:         ctx.opts.Panel,
		Warnings:      ctx.Warnings,
	}
	ctx.opts.Logger.Debug("compiled component",
		"component", ctx.Component,
		"imports", len(out.Imports),
		"selectors", ctx.Styles.Len(),
		"warnings", len(ctx.Warnings))
	return out, nil
}
