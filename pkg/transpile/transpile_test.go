package transpile

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vue2doric/internal/cache"
	"github.com/recera/vue2doric/pkg/compiler"
	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/sfc"
)

const counterVue = `<template>
  <div class="box">
    <span>{{ count }} clicks</span>
    <button @click="increment">Add</button>
  </div>
</template>

<script>
export default {
  data() {
    return { count: 0 }
  },
  methods: {
    increment() { this.count++ }
  }
}
</script>

<style>
.box { padding: 8px; }
</style>
`

func writeComponent(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompile(t *testing.T) {
	out, warnings, err := Compile("Counter.vue", []byte(counterVue), compiler.Options{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	arts := out.Render()
	content := string(arts.Component.Content)
	assert.Contains(t, content, "export function Counter(vm:")
	assert.Contains(t, content, "const { count } = vm.data;")
	assert.Contains(t, content, "const { increment } = vm.methods;")
	assert.Contains(t, content, `<Text text={count + " clicks"} />`)
	assert.Contains(t, content, "onClick={() => increment.call(vm.data)}")
	assert.Contains(t, string(arts.Style.Content), `".box": { "padding": "8px" },`)
	assert.Contains(t, string(arts.Script.Content), "increment() { this.count++ }")
}

func TestCompileErrors(t *testing.T) {
	_, _, err := Compile("Empty.vue", []byte("<script>export default {}</script>"), compiler.Options{})
	assert.ErrorIs(t, err, sfc.ErrNoTemplate)

	_, _, err = Compile("Bad.vue", []byte(`<template><div style="{color: }"></div></template>`), compiler.Options{})
	assert.ErrorIs(t, err, compiler.ErrStyleParse)
}

func TestVerify(t *testing.T) {
	for _, panel := range []bool{false, true} {
		out, _, err := Compile("Counter.vue", []byte(counterVue), compiler.Options{Panel: panel})
		require.NoError(t, err)
		assert.NoError(t, Verify(out.Render().Component), "panel=%v", panel)
	}

	err := Verify(compiler.Artifact{Name: "Broken.tsx", Content: []byte("export function Broken() { return (<VLayout>; }\n")})
	assert.ErrorIs(t, err, ErrVerify)
	assert.Contains(t, err.Error(), "Broken.tsx:1:")
}

func TestProcessFile(t *testing.T) {
	src := t.TempDir()
	path := writeComponent(t, src, "Counter.vue", counterVue)

	var logs bytes.Buffer
	tr := New(Options{Verify: true, Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	res, err := tr.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, src, res.OutDir)
	assert.False(t, res.Cached)

	for _, name := range []string{"Counter.tsx", "CounterProp.js", "CounterStyle.ts"} {
		assert.FileExists(t, filepath.Join(src, name))
	}
	assert.Contains(t, logs.String(), "generated")
}

func TestProcessFileMalformedStyleWritesNothing(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	path := writeComponent(t, src, "Bad.vue", `<template><div style="{&quot;color&quot;: [1]}"><span>x</span></div></template>`)

	_, err := New(Options{OutDir: out}).ProcessFile(context.Background(), path)
	require.ErrorIs(t, err, compiler.ErrStyleParse)
	assert.NoDirExists(t, out)
}

func TestProcessFileWarnings(t *testing.T) {
	path := writeComponent(t, t.TempDir(), "Odd.vue", `<template><div><marquee>hi</marquee></div></template>`)

	res, err := New(Options{OutDir: t.TempDir()}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	var unmapped *compiler.UnmappedTagWarning
	assert.ErrorAs(t, res.Warnings[0], &unmapped)
}

func TestProcessFileCustomTags(t *testing.T) {
	path := writeComponent(t, t.TempDir(), "Pic.vue", `<template><div><photo src="a.png"/></div></template>`)

	res, err := New(Options{
		OutDir: t.TempDir(),
		Tags:   map[string]doric.Symbol{"photo": doric.Image},
	}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Contains(t, string(res.Artifacts.Component.Content), "<Image")
}

func TestProcessDirectory(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeComponent(t, src, "Counter.vue", counterVue)
	writeComponent(t, src, "nested/Label.vue", `<template><span>{{ label }}</span></template>`)
	writeComponent(t, src, "node_modules/Skip.vue", `<template><div/></template>`)
	writeComponent(t, src, ".hidden/Skip.vue", `<template><div/></template>`)
	writeComponent(t, src, "README.md", "not a component")

	results, err := New(Options{OutDir: out}).ProcessDirectory(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(src, "Counter.vue"), results[0].Source)
	assert.Equal(t, filepath.Join(src, "nested", "Label.vue"), results[1].Source)

	assert.FileExists(t, filepath.Join(out, "Counter.tsx"))
	assert.FileExists(t, filepath.Join(out, "nested", "Label.tsx"))
	assert.NoFileExists(t, filepath.Join(out, "Skip.tsx"))
}

func TestProcessDirectoryStopsOnError(t *testing.T) {
	src := t.TempDir()
	writeComponent(t, src, "A.vue", `<template><div/></template>`)
	writeComponent(t, src, "B.vue", `<script>export default {}</script>`)
	writeComponent(t, src, "C.vue", `<template><div/></template>`)

	results, err := New(Options{OutDir: t.TempDir()}).ProcessDirectory(context.Background(), src)
	require.ErrorIs(t, err, sfc.ErrNoTemplate)
	assert.Contains(t, err.Error(), "B.vue")
	assert.Len(t, results, 1)
}

func TestProcessCheck(t *testing.T) {
	src := t.TempDir()
	path := writeComponent(t, src, "Counter.vue", counterVue)

	res, err := New(Options{Check: true}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, res.Stale, 3)
	assert.NoFileExists(t, filepath.Join(src, "Counter.tsx"))

	_, err = New(Options{}).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	res, err = New(Options{Check: true}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, res.Stale)
}

func TestProcessCache(t *testing.T) {
	c, err := cache.New(cache.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	src := t.TempDir()
	path := writeComponent(t, src, "Counter.vue", counterVue)

	first, err := New(Options{Cache: c}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := New(Options{Cache: c}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Artifacts, second.Artifacts)

	// different options miss the cache
	third, err := New(Options{Cache: c, Panel: true}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, third.Cached)

	writeComponent(t, src, "Counter.vue", counterVue+"\n")
	fourth, err := New(Options{Cache: c}).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestFindComponentsMissingDir(t *testing.T) {
	_, err := FindComponents(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
