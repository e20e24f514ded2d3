package stylesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vue2doric/pkg/source"
)

func TestParse(t *testing.T) {
	rules, err := Parse(`
/* card */
.card {
  color: red;
  width: 100px;
  color: blue;
}
div, .foo { margin: 0; }
@media (max-width: 600px) {
  .card { color: green; }
}
#title { --accent: #fff; }
`)
	require.NoError(t, err)

	want := source.RuleSet{
		{Selector: ".card", Declarations: []source.Declaration{
			{Property: "color", Value: "blue"},
			{Property: "width", Value: "100px"},
		}},
		{Selector: "div, .foo", Declarations: []source.Declaration{{Property: "margin", Value: "0"}}},
		{Selector: "#title", Declarations: []source.Declaration{{Property: "--accent", Value: "#fff"}}},
	}
	assert.Equal(t, want, rules)
}

func TestParseEmpty(t *testing.T) {
	rules, err := Parse("  \n")
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestParseDeclarations(t *testing.T) {
	decls, err := ParseDeclarations("color: red; font-size: 12px;")
	require.NoError(t, err)
	assert.Equal(t, []source.Declaration{
		{Property: "color", Value: "red"},
		{Property: "font-size", Value: "12px"},
	}, decls)

	decls, err = ParseDeclarations("")
	require.NoError(t, err)
	assert.Empty(t, decls)
}
