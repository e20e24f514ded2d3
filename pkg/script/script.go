// Package script extracts the bindings a component script exposes to its
// template: data() keys, methods, computed and inject names, and props.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/recera/vue2doric/pkg/source"
)

// ErrTypeStrip reports a TypeScript script esbuild could not transform.
var ErrTypeStrip = errors.New("typescript transform failed")

// Extract reads the component options object exported by src. The returned
// map always carries src verbatim as its passthrough script, even when no
// options object is found.
func Extract(component, src, lang string) (source.BindingMap, error) {
	if lang == "" {
		lang = "js"
	}
	m := source.BindingMap{Component: component, Script: src, Lang: lang}
	if strings.TrimSpace(src) == "" {
		return m, nil
	}

	code := src
	if lang == "ts" {
		stripped, err := StripTypes(component, src)
		if err != nil {
			return m, err
		}
		code = stripped
	}

	ast, err := js.Parse(parse.NewInputString(code), js.Options{})
	if err != nil {
		return m, fmt.Errorf("parse script of %s: %w", component, err)
	}
	if obj := exportedOptions(ast.BlockStmt.List); obj != nil {
		collect(&m, obj)
	}
	return m, nil
}

// StripTypes removes TypeScript syntax with esbuild.
func StripTypes(name, src string) (string, error) {
	res := api.Transform(src, api.TransformOptions{
		Loader:     api.LoaderTS,
		Sourcefile: name,
	})
	if len(res.Errors) > 0 {
		msg := res.Errors[0]
		if loc := msg.Location; loc != nil {
			return "", fmt.Errorf("%s:%d:%d: %s: %w", name, loc.Line, loc.Column, msg.Text, ErrTypeStrip)
		}
		return "", fmt.Errorf("%s: %s: %w", name, msg.Text, ErrTypeStrip)
	}
	return string(res.Code), nil
}

// exportedOptions finds `export default {...}` or
// `export default defineComponent({...})`.
func exportedOptions(stmts []js.IStmt) *js.ObjectExpr {
	for _, stmt := range stmts {
		exp, ok := stmt.(*js.ExportStmt)
		if !ok || !exp.Default {
			continue
		}
		switch decl := exp.Decl.(type) {
		case *js.ObjectExpr:
			return decl
		case *js.CallExpr:
			if len(decl.Args.List) > 0 {
				if obj, ok := unwrap(decl.Args.List[0].Value).(*js.ObjectExpr); ok {
					return obj
				}
			}
		}
	}
	return nil
}

func collect(m *source.BindingMap, options *js.ObjectExpr) {
	for _, prop := range options.List {
		switch propertyKey(prop) {
		case "data":
			addKeys(m, returnedObject(prop.Value), source.CategoryData)
		case "setup":
			addSetup(m, returnedObject(prop.Value))
		case "methods", "computed", "inject":
			addKeys(m, unwrap(prop.Value), source.CategoryOptions)
		case "props":
			addKeys(m, unwrap(prop.Value), source.CategoryOther)
		}
	}
}

// addKeys adds the keys of an object literal, or the strings of an array
// literal, as bindings of category c.
func addKeys(m *source.BindingMap, e js.IExpr, c source.Category) {
	switch e := e.(type) {
	case *js.ObjectExpr:
		for _, prop := range e.List {
			if name := propertyKey(prop); name != "" {
				m.Add(name, c)
			}
		}
	case *js.ArrayExpr:
		for _, el := range e.List {
			if lit, ok := el.Value.(*js.LiteralExpr); ok && lit.TokenType == js.StringToken {
				m.Add(unquote(lit.Data), c)
			}
		}
	}
}

// addSetup categorizes setup() results: function values are options,
// everything else is data.
func addSetup(m *source.BindingMap, e js.IExpr) {
	obj, ok := e.(*js.ObjectExpr)
	if !ok {
		return
	}
	for _, prop := range obj.List {
		name := propertyKey(prop)
		if name == "" {
			continue
		}
		switch unwrap(prop.Value).(type) {
		case *js.ArrowFunc, *js.FuncDecl, *js.MethodDecl:
			m.Add(name, source.CategoryOptions)
		default:
			m.Add(name, source.CategoryData)
		}
	}
}

// returnedObject returns the object a data-like option evaluates to: the
// literal itself, or the value returned by a method, function or arrow.
func returnedObject(e js.IExpr) js.IExpr {
	var body *js.BlockStmt
	switch fn := unwrap(e).(type) {
	case *js.ObjectExpr:
		return fn
	case *js.MethodDecl:
		body = &fn.Body
	case *js.FuncDecl:
		body = &fn.Body
	case *js.ArrowFunc:
		body = &fn.Body
	default:
		return nil
	}
	for _, stmt := range body.List {
		if ret, ok := stmt.(*js.ReturnStmt); ok {
			return unwrap(ret.Value)
		}
	}
	return nil
}

// propertyKey returns the static key of prop, or "" for spreads and
// computed keys.
func propertyKey(prop js.Property) string {
	if prop.Spread {
		return ""
	}
	if prop.Name != nil {
		if prop.Name.Computed != nil {
			return ""
		}
		return unquote(prop.Name.Literal.Data)
	}
	switch v := prop.Value.(type) {
	case *js.MethodDecl:
		if v.Name.Computed != nil {
			return ""
		}
		return unquote(v.Name.Literal.Data)
	case *js.Var:
		return string(v.Data)
	}
	return ""
}

func unwrap(e js.IExpr) js.IExpr {
	for {
		g, ok := e.(*js.GroupExpr)
		if !ok {
			return e
		}
		e = g.X
	}
}

func unquote(b []byte) string {
	s := string(b)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
