package compiler

import (
	"strings"

	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

// vmType is the declared type of the component function's parameter.
const vmType = "{ data: any; methods: any; style: any }"

// Function is the generated component function.
type Function struct {
	Name       string
	Param      jsx.Param
	Statements []string
	Body       jsx.Expr
}

// synthesize closes the built tree over the script bindings: data names are
// destructured from vm.data, option names from vm.methods.
func (c *Context) synthesize(body jsx.Expr) Function {
	var stmts []string
	if names := c.Bindings.Names(source.CategoryData); len(names) > 0 {
		stmts = append(stmts, destructure(names, vmParam+".data"))
	}
	if names := c.Bindings.Names(source.CategoryOptions); len(names) > 0 {
		stmts = append(stmts, destructure(names, vmParam+".methods"))
	}
	stmts = append(stmts, "const "+styleTableVar+" = "+vmParam+".style;")

	return Function{
		Name:       doric.Identifier(c.Component),
		Param:      jsx.Param{Name: vmParam, Type: vmType},
		Statements: stmts,
		Body:       body,
	}
}

func destructure(names []string, from string) string {
	return "const { " + strings.Join(names, ", ") + " } = " + from + ";"
}
