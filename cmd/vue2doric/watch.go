package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recera/vue2doric/cmd/vue2doric/internal/ui"
	"github.com/recera/vue2doric/internal/cache"
	"github.com/recera/vue2doric/pkg/transpile"
)

const watchDebounce = 100 * time.Millisecond

// watcher recompiles components when their files change. Events are
// debounced so an editor's write-rename sequence compiles once.
type watcher struct {
	fs       *fsnotify.Watcher
	tr       *transpile.Transpiler
	cache    *cache.Cache
	roots    []string
	only     map[string]bool
	out      *ui.Printer
	log      *slog.Logger
	debounce time.Duration
	pending  map[string]bool
}

// newWatcher watches every directory under roots. With files, only those
// files are recompiled.
func newWatcher(tr *transpile.Transpiler, c *cache.Cache, roots, files []string, out *ui.Printer, log *slog.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &watcher{
		fs:       fsw,
		tr:       tr,
		cache:    c,
		roots:    roots,
		only:     make(map[string]bool, len(files)),
		out:      out,
		log:      log,
		debounce: watchDebounce,
		pending:  make(map[string]bool),
	}
	for _, f := range files {
		w.only[filepath.Clean(f)] = true
	}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func watchAndCompile(ctx context.Context, tr *transpile.Transpiler, c *cache.Cache, roots, files []string, out *ui.Printer, log *slog.Logger) error {
	w, err := newWatcher(tr, c, roots, files, out, log)
	if err != nil {
		return err
	}
	out.Title("Watching for changes... (Press Ctrl+C to stop)")
	return w.run(ctx)
}

func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.log.Debug("watching", "dir", path)
		return nil
	})
}

// run handles events until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handle records an event and reports whether a compile is due.
func (w *watcher) handle(event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)

	if !strings.HasSuffix(path, transpile.Extension) {
		if event.Has(fsnotify.Create) {
			// new directories are watched too
			if err := w.addTree(path); err != nil {
				w.log.Debug("not watching", "path", path, "error", err)
			}
		}
		return false
	}
	if len(w.only) > 0 && !w.only[path] {
		return false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, path)
		if w.cache != nil {
			if _, err := w.cache.InvalidateSource(path); err != nil {
				w.log.Warn("failed to invalidate cache", "file", path, "error", err)
			}
		}
		return false
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.pending[path] = true
		return true
	}
	return false
}

func (w *watcher) flush(ctx context.Context) {
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	clear(w.pending)

	for _, path := range paths {
		start := time.Now()
		res, err := w.compile(ctx, path)
		if err != nil {
			w.out.Error("%s: %v", path, err)
			continue
		}
		for _, warning := range res.Warnings {
			w.out.Warn("%s: %v", path, warning)
		}
		w.out.Success("%s (%v)", path, time.Since(start).Round(time.Millisecond))
	}
}

func (w *watcher) compile(ctx context.Context, path string) (*transpile.Result, error) {
	if len(w.only) > 0 {
		return w.tr.ProcessFile(ctx, path)
	}
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return w.tr.ProcessUnder(ctx, root, path)
		}
	}
	return w.tr.ProcessFile(ctx, path)
}
