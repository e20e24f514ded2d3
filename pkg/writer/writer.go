// Package writer puts generated component artifacts on disk.
package writer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/recera/vue2doric/pkg/compiler"
)

// IOError reports a failed filesystem operation on Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Writer writes artifacts into one output directory.
type Writer struct {
	dir  string
	perm fs.FileMode
}

// New returns a Writer for dir.
func New(dir string) *Writer {
	return &Writer{dir: dir, perm: 0o644}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write creates the output directory, then writes all artifacts
// concurrently and waits for every write to finish. Each file is written to
// a temporary name and renamed into place.
func (w *Writer) Write(ctx context.Context, arts compiler.Artifacts) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: w.dir, Err: err}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, a := range arts.All() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writeFile(a)
		})
	}
	return g.Wait()
}

func (w *Writer) writeFile(a compiler.Artifact) error {
	path := filepath.Join(w.dir, a.Name)
	tmp, err := os.CreateTemp(w.dir, "."+a.Name+".*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return &IOError{Op: op, Path: path, Err: err}
	}
	if _, err := tmp.Write(a.Content); err != nil {
		return fail("write", err)
	}
	if err := tmp.Chmod(w.perm); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// FileDiff describes an artifact whose file on disk is missing or differs.
type FileDiff struct {
	Path    string
	Missing bool
	Patch   string
}

// Check compares arts against the files on disk without writing anything.
// It returns one FileDiff per stale artifact, in artifact order.
func (w *Writer) Check(arts compiler.Artifacts) ([]FileDiff, error) {
	var stale []FileDiff
	for _, a := range arts.All() {
		path := filepath.Join(w.dir, a.Name)
		current, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, FileDiff{Path: path, Missing: true, Patch: LineDiff("", string(a.Content))})
			continue
		case err != nil:
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}
		if string(current) != string(a.Content) {
			stale = append(stale, FileDiff{Path: path, Patch: LineDiff(string(current), string(a.Content))})
		}
	}
	return stale, nil
}

// LineDiff renders a line diff from old to new: removed lines prefixed
// with "-", added lines with "+", unchanged runs collapsed to one context
// line on each side.
func LineDiff(old, new string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", text)
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", text)
		case diffmatchpatch.DiffEqual:
			if len(text) <= 2 {
				writeLines(&sb, " ", text)
				continue
			}
			if i > 0 {
				writeLines(&sb, " ", text[:1])
			}
			sb.WriteString("@@\n")
			if i < len(diffs)-1 {
				writeLines(&sb, " ", text[len(text)-1:])
			}
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.SplitAfter(strings.TrimSuffix(s, "\n"), "\n")
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(strings.TrimSuffix(l, "\n"))
		sb.WriteByte('\n')
	}
}
