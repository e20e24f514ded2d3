package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vue2doric/pkg/source"
)

func TestExtract(t *testing.T) {
	src := `import helper from "./helper";

export default {
  props: ["title", 'size'],
  inject: ["theme"],
  data() {
    return { msg: "hi", count: 0 };
  },
  computed: {
    doubled() { return this.count * 2; },
  },
  methods: {
    onTap() { this.count++; },
    "reset": function () { this.count = 0; },
  },
};
`
	m, err := Extract("Counter", src, "")
	require.NoError(t, err)

	assert.Equal(t, "Counter", m.Component)
	assert.Equal(t, src, m.Script)
	assert.Equal(t, "js", m.Lang)
	assert.Equal(t, []string{"msg", "count"}, m.Names(source.CategoryData))
	assert.Equal(t, []string{"theme", "doubled", "onTap", "reset"}, m.Names(source.CategoryOptions))
	assert.Equal(t, []string{"title", "size"}, m.Names(source.CategoryOther))
}

func TestExtractDataForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"arrow", `export default { data: () => ({ a: 1, b: 2 }) }`, []string{"a", "b"}},
		{"function", `export default { data: function () { return { a: 1 } } }`, []string{"a"}},
		{"object", `export default { data: { a: 1 } }`, []string{"a"}},
		{"defineComponent", `export default defineComponent({ data() { return { a: 1 } } })`, []string{"a"}},
		{"no default export", `export const x = { data() { return { a: 1 } } }`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Extract("C", tt.src, "js")
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Names(source.CategoryData))
		})
	}
}

func TestExtractSetup(t *testing.T) {
	src := `export default {
  setup() {
    const count = ref(0);
    return { count, inc: () => count.value++ };
  },
}`
	m, err := Extract("C", src, "js")
	require.NoError(t, err)
	assert.Equal(t, []string{"count"}, m.Names(source.CategoryData))
	assert.Equal(t, []string{"inc"}, m.Names(source.CategoryOptions))
}

func TestExtractTypeScript(t *testing.T) {
	src := `interface State { msg: string }
export default {
  data(): State {
    return { msg: "hi" as string };
  },
  methods: {
    greet(name: string): void {},
  },
};
`
	m, err := Extract("Hello", src, "ts")
	require.NoError(t, err)
	assert.Equal(t, src, m.Script)
	assert.Equal(t, "ts", m.Lang)
	assert.Equal(t, []string{"msg"}, m.Names(source.CategoryData))
	assert.Equal(t, []string{"greet"}, m.Names(source.CategoryOptions))
}

func TestExtractEmpty(t *testing.T) {
	m, err := Extract("Empty", "  \n", "")
	require.NoError(t, err)
	assert.Empty(t, m.Bindings)
	assert.Equal(t, "js", m.Lang)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract("Bad", "export default {", "js")
	assert.Error(t, err)

	_, err = Extract("Bad", "let x: = 1", "ts")
	assert.ErrorIs(t, err, ErrTypeStrip)
}
