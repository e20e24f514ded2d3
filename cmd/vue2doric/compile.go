package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/recera/vue2doric/cmd/vue2doric/internal/config"
	"github.com/recera/vue2doric/cmd/vue2doric/internal/ui"
	"github.com/recera/vue2doric/internal/cache"
	"github.com/recera/vue2doric/pkg/transpile"
)

// errStale is returned by --check when generated files are out of date.
var errStale = errors.New("generated files are out of date")

type compileFlags struct {
	dir        string
	out        string
	configPath string
	watch      bool
	check      bool
	verify     bool
	panel      bool
	verbose    bool
	noCache    bool
}

func newCompileCommand() *cobra.Command {
	var f compileFlags

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile .vue components into Doric TSX",
		Long: `Compile Vue single-file components into Doric components.

For every Foo.vue three files are generated: Foo.tsx (the render function),
FooProp.js or FooProp.ts (the component script, unchanged) and FooStyle.ts
(the style table).

If no files are specified, every .vue file under --dir is compiled.

Examples:
  vue2doric compile                        # Compile all .vue files under .
  vue2doric compile src/Counter.vue        # Compile one file
  vue2doric compile --dir src --out gen    # Mirror src/ into gen/
  vue2doric compile --check                # Fail if generated files are stale
  vue2doric compile --watch                # Recompile on changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.dir, "dir", "d", ".", "Directory to search for .vue files")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory (default: next to each source)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to "+config.FileName)
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Watch for file changes and recompile")
	cmd.Flags().BoolVar(&f.check, "check", false, "Report stale generated files instead of writing")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Parse generated TSX before writing it")
	cmd.Flags().BoolVar(&f.panel, "panel", false, "Emit an @Entry panel class per component")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "Disable the compile cache")

	cmd.MarkFlagsMutuallyExclusive("watch", "check")
	return cmd
}

// applyFlags lets explicitly set flags override the configuration file.
func applyFlags(cmd *cobra.Command, f compileFlags, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutDir = f.out
	}
	if flags.Changed("verify") {
		cfg.Verify = f.verify
	}
	if flags.Changed("panel") {
		cfg.Panel = f.panel
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
}

func runCompile(cmd *cobra.Command, f compileFlags, args []string) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, f, cfg)

	log, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	tags, err := cfg.TagMap()
	if err != nil {
		return err
	}

	opts := transpile.Options{
		OutDir:        cfg.OutDir,
		RuntimeModule: cfg.RuntimeModule,
		Panel:         cfg.Panel,
		Tags:          tags,
		Verify:        cfg.Verify,
		Check:         f.check,
		Logger:        log,
	}
	if cfg.Cache.Enabled && !f.check {
		c, err := cache.New(cache.Config{Dir: cfg.Cache.Dir, MaxEntries: cfg.Cache.MaxEntries})
		if err != nil {
			log.Warn("compile cache disabled", "error", err)
		} else {
			opts.Cache = c
			defer func() {
				if err := c.Flush(); err != nil {
					log.Warn("failed to save compile cache", "error", err)
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := ui.New(cmd.OutOrStdout())
	tr := transpile.New(opts)
	start := time.Now()

	results, err := compileTargets(ctx, tr, f.dir, args)
	report(out, results, f.verbose)
	if err != nil {
		out.Error("%v", err)
		if !f.watch {
			return err
		}
	}

	if f.check {
		if stale := countStale(results); stale > 0 {
			return fmt.Errorf("%d files: %w", stale, errStale)
		}
		out.Success("%d components up to date", len(results))
		return nil
	}
	if len(results) == 0 && err == nil {
		out.Muted("no .vue files found")
	} else if err == nil {
		out.Success("compiled %d components in %v", len(results), time.Since(start).Round(time.Millisecond))
	}

	if !f.watch {
		return nil
	}
	roots := []string{f.dir}
	if len(args) > 0 {
		roots = parentDirs(args)
	}
	return watchAndCompile(ctx, tr, opts.Cache, roots, args, out, log)
}

// compileTargets compiles explicit files, or every component under dir.
func compileTargets(ctx context.Context, tr *transpile.Transpiler, dir string, files []string) ([]*transpile.Result, error) {
	if len(files) == 0 {
		return tr.ProcessDirectory(ctx, dir)
	}
	var results []*transpile.Result
	for _, file := range files {
		res, err := tr.ProcessFile(ctx, file)
		if err != nil {
			return results, fmt.Errorf("failed to compile %s: %w", file, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func report(out *ui.Printer, results []*transpile.Result, verbose bool) {
	for _, res := range results {
		for _, w := range res.Warnings {
			out.Warn("%s: %v", res.Source, w)
		}
		for _, d := range res.Stale {
			if d.Missing {
				out.Error("%s is missing", d.Path)
			} else {
				out.Error("%s is out of date", d.Path)
			}
			out.Diff(d.Patch)
		}
		if verbose && len(res.Stale) == 0 {
			suffix := ""
			if res.Cached {
				suffix = " (cached)"
			}
			out.Muted("%s → %s%s", res.Source, res.OutDir, suffix)
		}
	}
}

func countStale(results []*transpile.Result) int {
	n := 0
	for _, res := range results {
		n += len(res.Stale)
	}
	return n
}

func parentDirs(files []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
