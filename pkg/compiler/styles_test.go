package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vue2doric/pkg/jsx"
	"github.com/recera/vue2doric/pkg/source"
)

func TestMatchesSelector(t *testing.T) {
	withClass := func(class string) *source.Element {
		return &source.Element{Tag: "div", StaticClass: class}
	}
	withID := &source.Element{Tag: "p", Attrs: []source.Attr{{Name: "id", Value: `"title"`}}}

	tests := []struct {
		name     string
		selector string
		el       *source.Element
		want     bool
	}{
		{"class", ".foo", withClass("foo"), true},
		{"quoted class", ".foo", withClass(`"foo"`), true},
		{"class mismatch", ".foo", withClass("bar"), false},
		{"class requires equality", ".foo", withClass("foo bar"), false},
		{"no class", ".foo", withClass(""), false},
		{"tag in list", "div, .foo", withClass("bar"), true},
		{"class in list", "span,.foo", withClass("foo"), true},
		{"id", "#title", withID, true},
		{"id mismatch", "#other", withID, false},
		{"tag", "p", withID, true},
		{"tag mismatch", "span", withID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesSelector(tt.selector, tt.el))
		})
	}
}

func TestDecodeStaticStyle(t *testing.T) {
	decls, err := decodeStaticStyle(`{"width": 100, "color": "red", "visible": true, "color": "blue"}`)
	require.NoError(t, err)
	assert.Equal(t, []source.Declaration{
		{Property: "width", Value: "100"},
		{Property: "color", Value: "blue"},
		{Property: "visible", Value: "true"},
	}, decls)

	decls, err = decodeStaticStyle(`{}`)
	require.NoError(t, err)
	assert.Empty(t, decls)

	for _, bad := range []string{
		`{"color": "red"`,
		`["color"]`,
		`{"margin": {"top": 1}}`,
		`{"color": null}`,
		`{"color": "red"} trailing`,
		`color: red`,
	} {
		_, err := decodeStaticStyle(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveStylesOrder(t *testing.T) {
	rules := source.RuleSet{
		{Selector: "div", Declarations: []source.Declaration{{Property: "color", Value: "red"}, {Property: "margin", Value: "0"}}},
		{Selector: ".card", Declarations: []source.Declaration{{Property: "color", Value: "blue"}}},
		{Selector: "span", Declarations: []source.Declaration{{Property: "color", Value: "green"}}},
	}
	e := &source.Element{
		Tag:          "div",
		StaticClass:  "card",
		StaticStyle:  `{"font-size": "12px"}`,
		ClassBinding: "{ active: on }",
		StyleBinding: "extra",
	}
	ctx := NewContext(e, rules, source.BindingMap{}, Options{})
	attrs, err := ctx.resolveStyles(e)
	require.NoError(t, err)

	got := jsx.Print(&jsx.Element{Symbol: "VLayout", Attrs: attrs})
	want := `<VLayout` +
		` {...{ color: "blue", margin: "0" }}` +
		` {...{ "font-size": "12px" }}` +
		` {...resolveStyle(styleTable, { active: on })}` +
		` {...(extra)} />`
	assert.Equal(t, want, got)
}

func TestResolveStylesNone(t *testing.T) {
	e := &source.Element{Tag: "p"}
	ctx := NewContext(e, source.RuleSet{{Selector: ".x"}}, source.BindingMap{}, Options{})
	attrs, err := ctx.resolveStyles(e)
	require.NoError(t, err)
	assert.Empty(t, attrs)
}

func TestStyleTable(t *testing.T) {
	table := NewStyleTable(source.RuleSet{
		{Selector: ".a, div", Declarations: []source.Declaration{{Property: "color", Value: "red"}}},
		{Selector: "div", Declarations: []source.Declaration{{Property: "margin", Value: "1px"}, {Property: "color", Value: "blue"}}},
		{Selector: " , #id", Declarations: nil},
	})
	assert.Equal(t, []string{".a", "div", "#id"}, table.Selectors())
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []source.Declaration{
		{Property: "color", Value: "blue"},
		{Property: "margin", Value: "1px"},
	}, table.Declarations("div"))
	assert.Equal(t, []source.Declaration{{Property: "color", Value: "red"}}, table.Declarations(".a"))
}
