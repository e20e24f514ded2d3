package sfc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vue2doric/pkg/source"
)

var ignoreParent = cmpopts.IgnoreFields(source.Element{}, "Parent")

const counterVue = `<template>
  <div class="card" @tap="increment">
    <h1>Count: {{ count }}</h1>
    <img src="logo.png">
    <br/>
  </div>
</template>

<script lang="ts">
export default {
  data() { return { count: 0 } },
}
</script>

<style scoped>
.card { color: red; }
</style>
<style>
h1 { font-size: 20px; }
</style>

<docs>ignored</docs>
`

func TestParseBlocks(t *testing.T) {
	d, err := Parse("components/Counter.vue", []byte(counterVue))
	require.NoError(t, err)

	assert.Equal(t, "Counter", d.Component())
	assert.Equal(t, "ts", d.ScriptLang())

	require.NotNil(t, d.Script)
	assert.Equal(t, "\nexport default {\n  data() { return { count: 0 } },\n}\n", d.Script.Content)
	assert.Equal(t, 9, d.Script.Line)

	require.Len(t, d.Styles, 2)
	assert.True(t, d.Styles[0].Scoped)
	assert.Equal(t, "\n.card { color: red; }\n", d.Styles[0].Content)
	assert.False(t, d.Styles[1].Scoped)
	assert.Empty(t, d.Warnings)
}

func TestParseTemplateTree(t *testing.T) {
	d, err := Parse("Counter.vue", []byte(counterVue))
	require.NoError(t, err)

	want := &source.Element{
		Tag:         "div",
		StaticClass: "card",
		Attrs:       []source.Attr{{Name: "@tap", Value: "increment"}},
		Children: []source.Node{
			&source.Element{Tag: "h1", Children: []source.Node{
				&source.Expression{Tokens: []source.Token{
					source.LiteralToken("Count: "),
					source.BindingToken("count"),
				}},
			}},
			&source.Element{Tag: "img", Attrs: []source.Attr{{Name: "src", Value: "logo.png"}}},
			&source.Element{Tag: "br"},
		},
	}
	if diff := cmp.Diff(want, d.Template, ignoreParent); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, d.Template.IsRoot())
	h1 := d.Template.Children[0].(*source.Element)
	assert.Same(t, d.Template, h1.Parent)
}

func TestParseDirectives(t *testing.T) {
	src := `<template>
<ul>
  <li v-for="(item, i) in items" :key="item.id" v-bind:title="item.name" v-on:click="pick(i)">{{ item.name }}</li>
  <p v-if="mode === 'a'">A</p>
  <p v-else-if="mode === 'b'">B</p>
  <p v-else>C</p>
  <input v-model="query" v-show="ready" :class="{ on: ready }" :style="extra" style="color: red; font-size: 12px">
</ul>
</template>`

	d, err := Parse("List.vue", []byte(src))
	require.NoError(t, err)

	ul := d.Template
	require.Len(t, ul.Children, 3)

	li := ul.Children[0].(*source.Element)
	assert.Equal(t, &source.Iteration{Source: "items", Alias: "item", Index: "i"}, li.For)
	assert.Equal(t, []source.Attr{
		{Name: ":key", Value: "item.id"},
		{Name: ":title", Value: "item.name"},
		{Name: "@click", Value: "pick(i)"},
	}, li.Attrs)

	p := ul.Children[1].(*source.Element)
	assert.Equal(t, "mode === 'a'", p.If)
	require.Len(t, p.Conditions, 2)
	assert.Equal(t, "mode === 'b'", p.Conditions[0].Cond)
	assert.Equal(t, "", p.Conditions[1].Cond)
	assert.Equal(t, []source.Node{&source.Text{Content: "C"}}, p.Conditions[1].Element.Children)
	assert.Same(t, ul, p.Conditions[0].Element.Parent)

	input := ul.Children[2].(*source.Element)
	assert.Equal(t, "{ on: ready }", input.ClassBinding)
	assert.Equal(t, "extra", input.StyleBinding)
	assert.JSONEq(t, `{"color":"red","font-size":"12px"}`, input.StaticStyle)
	assert.Empty(t, input.Attrs)

	require.Len(t, d.Warnings, 2)
	var w *DroppedDirectiveWarning
	require.ErrorAs(t, d.Warnings[0], &w)
	assert.Equal(t, "v-model", w.Directive)
	assert.Equal(t, 7, w.Line)
}

func TestParseJSONStyleKept(t *testing.T) {
	d, err := Parse("A.vue", []byte(`<template><div style='{"color": "red"'></div></template>`))
	require.NoError(t, err)
	assert.Equal(t, `{"color": "red"`, d.Template.StaticStyle)
}

func TestParseWhitespace(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []source.Node
	}{
		{"literal runs collapse", "<p>\n    Hello\n    world  </p>", []source.Node{&source.Text{Content: "Hello world"}}},
		{"whitespace only", "<p>\n   \t </p>", nil},
		{"binding kept verbatim", `<p>{{ "a   b" }}</p>`, []source.Node{
			&source.Expression{Tokens: []source.Token{source.BindingToken(`"a   b"`)}},
		}},
		{"spaces around bindings", "<p>\n  Hi   {{ name }}\n  and\t{{ other }}  !\n</p>", []source.Node{
			&source.Expression{Tokens: []source.Token{
				source.LiteralToken("Hi "),
				source.BindingToken("name"),
				source.LiteralToken(" and "),
				source.BindingToken("other"),
				source.LiteralToken(" !"),
			}},
		}},
		{"adjacent bindings", "<p>  {{ a }}{{ b }}  </p>", []source.Node{
			&source.Expression{Tokens: []source.Token{source.BindingToken("a"), source.BindingToken("b")}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse("A.vue", []byte("<template>\n  "+tt.body+"\n</template>"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Template.Children)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no template", `<script>export default {}</script>`, ErrNoTemplate},
		{"empty template", `<template>  </template>`, ErrNoTemplate},
		{"two templates", `<template><a></a></template><template><b></b></template>`, ErrDuplicateBlock},
		{"two scripts", `<template><a></a></template><script></script><script></script>`, ErrDuplicateBlock},
		{"two roots", `<template><a></a><b></b></template>`, ErrMultipleRoots},
		{"text root", `<template>hello <a></a></template>`, ErrMultipleRoots},
		{"unclosed element", `<template><div><p></div></template>`, ErrUnclosedElement},
		{"unclosed at end", `<template><div></template>`, ErrUnclosedElement},
		{"unclosed block", `<template><div></div>`, ErrUnclosedElement},
		{"bad v-for", `<template><div v-for="in items"></div></template>`, ErrInvalidFor},
		{"orphan v-else", `<template><div><p v-else></p></div></template>`, ErrInvalidBranch},
		{"else after else", `<template><div><p v-if="a"></p><p v-else></p><p v-else></p></div></template>`, ErrInvalidBranch},
		{"pug", `<template lang="pug">div</template>`, ErrUnsupportedLang},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("Bad.vue", []byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "Bad.vue")
		})
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		text string
		want []source.Token
	}{
		{"plain", []source.Token{source.LiteralToken("plain")}},
		{"{{ a }}{{b}}", []source.Token{source.BindingToken("a"), source.BindingToken("b")}},
		{"x {{ n }} rows", []source.Token{
			source.LiteralToken("x "), source.BindingToken("n"), source.LiteralToken(" rows"),
		}},
		{"a {{ }} b", []source.Token{source.LiteralToken("a  b")}},
		{"open {{ n", []source.Token{source.LiteralToken("open {{ n")}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.text))
		})
	}
}

func TestParseFor(t *testing.T) {
	valid := map[string]source.Iteration{
		"item in items":              {Source: "items", Alias: "item"},
		"item of items":              {Source: "items", Alias: "item"},
		"( item , idx ) in list.all": {Source: "list.all", Alias: "item", Index: "idx"},
		"n in 10":                    {Source: "10", Alias: "n"},
	}
	for expr, want := range valid {
		got, err := ParseFor(expr)
		require.NoError(t, err, expr)
		assert.Equal(t, want, *got, expr)
	}

	for _, expr := range []string{"", "items", "item in", "(a, b in x", "(a,) in x", "x inlist", "{ id } in items"} {
		_, err := ParseFor(expr)
		assert.ErrorIs(t, err, ErrInvalidFor, expr)
	}
}
