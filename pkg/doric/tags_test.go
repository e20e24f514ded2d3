package doric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagTableMatchesLookup(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Tags() {
		require.False(t, seen[m.Tag], "duplicate tag %q", m.Tag)
		seen[m.Tag] = true

		sym, ok := LookupTag(m.Tag)
		assert.True(t, ok, m.Tag)
		assert.Equal(t, m.Symbol, sym, m.Tag)
		assert.True(t, sym.Importable(), m.Tag)
	}
}

func TestLookupTagFallback(t *testing.T) {
	sym, ok := LookupTag("marquee")
	assert.False(t, ok)
	assert.Equal(t, NoMappedTag, sym)
	assert.False(t, sym.Importable())
}

func TestAttributeTableMatchesLookup(t *testing.T) {
	for _, m := range Attributes() {
		assert.Equal(t, m.Target, LookupAttr(m.Tag, m.Source), "%s.%s", m.Tag, m.Source)
	}
	assert.Equal(t, "src", LookupAttr("div", "src"))
	assert.Equal(t, "alt", LookupAttr("img", "alt"))
	assert.Equal(t, "text", LookupAttr("textarea", "value"))
	assert.Equal(t, "href", LookupAttr("a", "href"))
	assert.Len(t, Attributes(), 5)
}

func TestTagTableExtra(t *testing.T) {
	table := NewTagTable(map[string]Symbol{"scroll-view": Scroller, "div": Text})

	sym, ok := table.Lookup("scroll-view")
	assert.True(t, ok)
	assert.Equal(t, Scroller, sym)

	// built-in entries win
	sym, _ = table.Lookup("div")
	assert.Equal(t, VLayout, sym)

	sym, ok = table.Lookup("blink")
	assert.False(t, ok)
	assert.Equal(t, NoMappedTag, sym)

	var nilTable *TagTable
	sym, ok = nilTable.Lookup("li")
	assert.True(t, ok)
	assert.Equal(t, VLayout, sym)
}

func TestParseSymbol(t *testing.T) {
	sym, ok := ParseSymbol("vlayout")
	assert.True(t, ok)
	assert.Equal(t, VLayout, sym)

	_, ok = ParseSymbol("VLayot")
	assert.False(t, ok)
}

func TestEvents(t *testing.T) {
	tests := []struct {
		attr  string
		event string
		ok    bool
		name  string
	}{
		{"@tap", "tap", true, "onClick"},
		{"@click.stop", "click", true, "onClick"},
		{"@longpress", "longpress", true, "onLongPress"},
		{"@value-change", "value-change", true, "onValueChange"},
		{"tap", "", false, ""},
		{"@", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			event, ok := IsEvent(tt.attr)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.event, event)
			if ok {
				assert.Equal(t, tt.name, EventName(event))
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "Counter", Identifier("Counter"))
	assert.Equal(t, "todo_list", Identifier("todo_list"))
	assert.Equal(t, "MyCard", Identifier("my-card"))
	assert.Equal(t, "MyCardV2", Identifier("my.card.v2"))
	assert.Equal(t, "_404Page", Identifier("404-page"))
	assert.Equal(t, "Component", Identifier("---"))
}
