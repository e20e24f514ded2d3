// Package transpile runs the whole .vue to Doric pipeline for files and
// directories: parse, compile, optionally verify, then write or check.
package transpile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/recera/vue2doric/internal/cache"
	"github.com/recera/vue2doric/pkg/compiler"
	"github.com/recera/vue2doric/pkg/doric"
	"github.com/recera/vue2doric/pkg/script"
	"github.com/recera/vue2doric/pkg/sfc"
	"github.com/recera/vue2doric/pkg/source"
	"github.com/recera/vue2doric/pkg/stylesheet"
	"github.com/recera/vue2doric/pkg/writer"
)

// ErrVerify reports generated code that esbuild cannot parse.
var ErrVerify = errors.New("generated code does not parse")

// cacheVersion changes whenever generated output changes shape.
const cacheVersion = "vue2doric/1"

// Extension is the component file extension.
const Extension = ".vue"

// Options configure a Transpiler.
type Options struct {
	// OutDir receives the artifacts. Empty writes next to each source.
	OutDir string
	// RuntimeModule overrides the Doric import path.
	RuntimeModule string
	// Panel emits an @Entry panel class per component.
	Panel bool
	// Tags adds tag mappings on top of the built-in table.
	Tags map[string]doric.Symbol
	// Verify parses generated TSX with esbuild before writing.
	Verify bool
	// Check compares against existing files instead of writing.
	Check bool
	// Cache skips recompiling unchanged sources. Nil disables caching.
	Cache  *cache.Cache
	Logger *slog.Logger
}

// Result is the outcome of processing one component.
type Result struct {
	Source    string
	OutDir    string
	Artifacts compiler.Artifacts
	Warnings  []error
	Cached    bool
	// Stale lists out-of-date files in check mode.
	Stale []writer.FileDiff
}

// Transpiler processes components with fixed options.
type Transpiler struct {
	opts Options
	tags *doric.TagTable
	log  *slog.Logger
}

// New returns a Transpiler.
func New(opts Options) *Transpiler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transpiler{opts: opts, tags: doric.NewTagTable(opts.Tags), log: log}
}

// ProcessFile compiles one .vue file into OutDir, or next to the file when
// OutDir is empty.
func (t *Transpiler) ProcessFile(ctx context.Context, path string) (*Result, error) {
	out := t.opts.OutDir
	if out == "" {
		out = filepath.Dir(path)
	}
	return t.process(ctx, path, out)
}

// ProcessDirectory compiles every .vue file under dir, one at a time. With
// an OutDir, the directory layout below dir is kept. It stops at the first
// failing file.
func (t *Transpiler) ProcessDirectory(ctx context.Context, dir string) ([]*Result, error) {
	files, err := FindComponents(dir)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := t.ProcessUnder(ctx, dir, file)
		if err != nil {
			return results, fmt.Errorf("failed to process %s: %w", file, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// ProcessUnder compiles path, a file below root, the way ProcessDirectory
// would: with an OutDir, the artifacts land in the same relative directory.
func (t *Transpiler) ProcessUnder(ctx context.Context, root, path string) (*Result, error) {
	out := filepath.Dir(path)
	if t.opts.OutDir != "" {
		rel, err := filepath.Rel(root, out)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%s is not below %s", path, root)
		}
		out = filepath.Join(t.opts.OutDir, rel)
	}
	return t.process(ctx, path, out)
}

func (t *Transpiler) process(ctx context.Context, path, outDir string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	res := &Result{Source: path, OutDir: outDir}
	key := t.cacheKey(path, src)
	if arts, ok := t.cached(key); ok {
		res.Artifacts, res.Cached = arts, true
		t.log.Debug("cache hit", "file", path)
	} else {
		out, warnings, err := Compile(path, src, t.compilerOptions())
		if err != nil {
			return nil, err
		}
		res.Artifacts, res.Warnings = out.Render(), warnings
		for _, w := range warnings {
			t.log.Warn(w.Error(), "file", path)
		}
		if t.opts.Verify {
			if err := Verify(res.Artifacts.Component); err != nil {
				return nil, err
			}
		}
		t.store(key, path, res.Artifacts)
	}

	w := writer.New(outDir)
	if t.opts.Check {
		stale, err := w.Check(res.Artifacts)
		if err != nil {
			return nil, err
		}
		res.Stale = stale
		return res, nil
	}
	if err := w.Write(ctx, res.Artifacts); err != nil {
		return nil, err
	}
	t.log.Info("generated", "file", path, "out", outDir, "cached", res.Cached)
	return res, nil
}

func (t *Transpiler) compilerOptions() compiler.Options {
	return compiler.Options{
		RuntimeModule: t.opts.RuntimeModule,
		Panel:         t.opts.Panel,
		Tags:          t.tags,
		Logger:        t.log,
	}
}

// cacheKey covers everything that shapes the output: the file name (the
// component name), its content and the options.
func (t *Transpiler) cacheKey(path string, src []byte) string {
	tags := make([]string, 0, len(t.opts.Tags))
	for tag, sym := range t.opts.Tags {
		tags = append(tags, tag+"="+string(sym))
	}
	sort.Strings(tags)
	return cache.Key(
		cacheVersion,
		filepath.Base(path),
		string(src),
		t.opts.RuntimeModule,
		fmt.Sprint(t.opts.Panel),
		strings.Join(tags, ","),
	)
}

func (t *Transpiler) cached(key string) (compiler.Artifacts, bool) {
	var arts compiler.Artifacts
	if t.opts.Cache == nil {
		return arts, false
	}
	data, ok := t.opts.Cache.Get(key)
	if !ok {
		return arts, false
	}
	if err := json.Unmarshal(data, &arts); err != nil {
		t.log.Debug("dropping unreadable cache entry", "error", err)
		_ = t.opts.Cache.Delete(key)
		return arts, false
	}
	return arts, true
}

func (t *Transpiler) store(key, path string, arts compiler.Artifacts) {
	if t.opts.Cache == nil {
		return
	}
	data, err := json.Marshal(arts)
	if err == nil {
		err = t.opts.Cache.Put(key, path, data)
	}
	if err != nil {
		t.log.Warn("cache write failed", "file", path, "error", err)
	}
}

// Compile runs the in-memory pipeline for one component source: split,
// parse the template, styles and script, then compile. It performs no IO.
func Compile(name string, src []byte, opts compiler.Options) (*compiler.Output, []error, error) {
	d, err := sfc.Parse(name, src)
	if err != nil {
		return nil, nil, err
	}

	var rules source.RuleSet
	for _, block := range d.Styles {
		blockRules, err := stylesheet.Parse(block.Content)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: %w", name, block.Line, err)
		}
		rules = append(rules, blockRules...)
	}

	var scriptSrc string
	if d.Script != nil {
		scriptSrc = d.Script.Content
	}
	bindings, err := script.Extract(d.Component(), scriptSrc, d.ScriptLang())
	if err != nil {
		return nil, nil, err
	}

	ctx := compiler.NewContext(d.Template, rules, bindings, opts)
	out, err := compiler.Compile(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	warnings := append(append([]error(nil), d.Warnings...), out.Warnings...)
	return out, warnings, nil
}

// Verify parses a generated TSX artifact with esbuild.
func Verify(a compiler.Artifact) error {
	res := api.Transform(string(a.Content), api.TransformOptions{
		Loader:      api.LoaderTSX,
		JSX:         api.JSXPreserve,
		Sourcefile:  a.Name,
		TsconfigRaw: `{"compilerOptions":{"experimentalDecorators":true}}`,
	})
	if len(res.Errors) == 0 {
		return nil
	}
	msg := res.Errors[0]
	if loc := msg.Location; loc != nil {
		return fmt.Errorf("%s:%d:%d: %s: %w", a.Name, loc.Line, loc.Column, msg.Text, ErrVerify)
	}
	return fmt.Errorf("%s: %s: %w", a.Name, msg.Text, ErrVerify)
}

// FindComponents returns the .vue files under the given directories in
// lexical order, skipping hidden directories and node_modules.
func FindComponents(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, Extension) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find components: %w", err)
		}
	}
	return files, nil
}
