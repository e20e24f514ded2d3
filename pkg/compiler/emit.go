package compiler

import (
	"strings"

	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/jsx"
)

// resolveStyleHelper merges the style table entries named by a class
// binding (string, array or object form).
const resolveStyleHelper = `function resolveStyle(table: any, binding: any): any {
  let names: string[] = [];
  if (typeof binding === "string") {
    names = binding.split(/\s+/).filter((name: string) => name !== "");
  } else if (Array.isArray(binding)) {
    names = binding.filter((name: any) => typeof name === "string");
  } else if (binding) {
    names = Object.keys(binding).filter((name: string) => binding[name]);
  }
  return names.reduce((style: any, name: string) => Object.assign(style, table["." + name]), {});
}
`

// Artifact is one generated file.
type Artifact struct {
	Name    string
	Content []byte
}

// Artifacts are the three files generated for a component.
type Artifacts struct {
	Component Artifact // <Base>.tsx
	Script    Artifact // <Base>Prop.js or <Base>Prop.ts
	Style     Artifact // <Base>Style.ts
}

// All returns the artifacts in a fixed order.
func (a Artifacts) All() []Artifact {
	return []Artifact{a.Component, a.Script, a.Style}
}

// Output is the result of a compile. Render turns it into file contents.
type Output struct {
	Component     string
	RuntimeModule string
	Imports       []doric.Symbol
	Function      Function
	Styles        *StyleTable
	Script        string
	Lang          string
	Panel         bool
	Warnings      []error
}

// ComponentFile returns the name of the TSX artifact.
func (o *Output) ComponentFile() string { return o.Component + ".tsx" }

// ScriptFile returns the name of the passthrough script artifact.
func (o *Output) ScriptFile() string {
	if o.Lang == "ts" {
		return o.Component + "Prop.ts"
	}
	return o.Component + "Prop.js"
}

// StyleFile returns the name of the style table artifact.
func (o *Output) StyleFile() string { return o.Component + "Style.ts" }

// Render produces the artifacts. It performs no IO.
func (o *Output) Render() Artifacts {
	return Artifacts{
		Component: Artifact{Name: o.ComponentFile(), Content: []byte(o.renderComponent())},
		Script:    Artifact{Name: o.ScriptFile(), Content: []byte(o.Script)},
		Style:     Artifact{Name: o.StyleFile(), Content: []byte(o.renderStyles())},
	}
}

// ImportStatement returns the runtime import line.
func (o *Output) ImportStatement() string {
	names := make([]string, len(o.Imports))
	for i, s := range o.Imports {
		names[i] = string(s)
	}
	return "import { " + strings.Join(names, ", ") + " } from " + jsx.Quote(o.RuntimeModule) + ";"
}

func (o *Output) renderComponent() string {
	var p jsx.Printer
	p.Line("%s", o.ImportStatement())
	if o.Panel {
		p.Line("import props from %s;", jsx.Quote("./"+o.Component+"Prop"))
		p.Line("import styles from %s;", jsx.Quote("./"+o.Component+"Style"))
	}
	p.Blank()
	p.Raw(resolveStyleHelper)
	p.Blank()

	fn := o.Function
	p.Line("export function %s(%s: %s) {", fn.Name, fn.Param.Name, fn.Param.Type)
	p.Indent()
	for _, stmt := range fn.Statements {
		p.Line("%s", stmt)
	}
	p.Return(fn.Body)
	p.Dedent()
	p.Line("}")

	if o.Panel {
		p.Blank()
		p.Line("@Entry")
		p.Line("export class %sPanel extends Panel {", fn.Name)
		p.Indent()
		p.Line("build(root: Group) {")
		p.Indent()
		p.Line("root.addChild(")
		p.Indent()
		p.Line("%s({", fn.Name)
		p.Indent()
		p.Line(`data: typeof props.data === "function" ? props.data() : props.data || {},`)
		p.Line("methods: props.methods || {},")
		p.Line("style: styles,")
		p.Dedent()
		p.Line("})")
		p.Dedent()
		p.Line(");")
		p.Dedent()
		p.Line("}")
		p.Dedent()
		p.Line("}")
	}
	return p.String()
}

func (o *Output) renderStyles() string {
	if o.Styles == nil || o.Styles.Len() == 0 {
		return "export default {};\n"
	}
	var p jsx.Printer
	p.Line("export default {")
	p.Indent()
	for _, sel := range o.Styles.Selectors() {
		decls := o.Styles.Declarations(sel)
		props := make([]string, len(decls))
		for i, d := range decls {
			props[i] = jsx.Quote(d.Property) + ": " + jsx.Quote(d.Value)
		}
		if len(props) == 0 {
			p.Line("%s: {},", jsx.Quote(sel))
			continue
		}
		p.Line("%s: { %s },", jsx.Quote(sel), strings.Join(props, ", "))
	}
	p.Dedent()
	p.Line("};")
	return p.String()
}
