package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/compforge/cli/internal/output"
)

// Workspace is the set of editor capabilities component operations rely on.
type Workspace interface {
	// Root returns the workspace root directory.
	Root() string

	// FindFiles returns files below the root whose root-relative,
	// slash-separated path matches an include glob and no exclude glob.
	FindFiles(ctx context.Context, include, exclude []string) ([]string, error)

	// OpenText reads a file as a text document.
	OpenText(path string) (*Document, error)

	// ApplyEdit applies every edit or none.
	ApplyEdit(ctx context.Context, edit *WorkspaceEdit) error

	// RenameSymbol returns the edits that rename the symbol at offset in doc.
	RenameSymbol(ctx context.Context, doc *Document, offset int, newName string) ([]TextEdit, error)
}

// Local is a Workspace over a filesystem directory.
type Local struct {
	fs   afero.Fs
	root string
}

var _ Workspace = (*Local)(nil)

// NewLocal creates a workspace rooted at root on fsys.
func NewLocal(fsys afero.Fs, root string) *Local {
	return &Local{fs: fsys, root: filepath.Clean(root)}
}

// Root returns the workspace root directory.
func (l *Local) Root() string {
	return l.root
}

// FindFiles walks the root in lexical order. Directories matching an exclude
// glob are not descended into.
func (l *Local) FindFiles(ctx context.Context, include, exclude []string) ([]string, error) {
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob %q", p)
		}
	}

	var files []string
	err := afero.Walk(l.fs, l.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if dirExcluded(exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(exclude, rel) || !matchAny(include, rel) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", l.root, err)
	}
	return files, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// dirExcluded reports whether everything below dir is excluded, which is
// the case when a probe entry inside it matches an exclude glob such as
// "**/node_modules/**".
func dirExcluded(exclude []string, dir string) bool {
	return matchAny(exclude, dir) || matchAny(exclude, path.Join(dir, "\x00"))
}

// OpenText reads a file as a text document.
func (l *Local) OpenText(p string) (*Document, error) {
	b, err := afero.ReadFile(l.fs, p)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", p, err)
	}
	return NewDocument(p, string(b)), nil
}

// ApplyEdit validates and computes every file's new content before writing
// any of them. If a write fails, files already written are restored.
func (l *Local) ApplyEdit(ctx context.Context, edit *WorkspaceEdit) error {
	type change struct {
		path     string
		original []byte
		updated  []byte
		mode     os.FileMode
	}

	var changes []change
	for _, p := range edit.Paths() {
		info, err := l.fs.Stat(p)
		if err != nil {
			return fmt.Errorf("applying edit to %s: %w", p, err)
		}
		original, err := afero.ReadFile(l.fs, p)
		if err != nil {
			return fmt.Errorf("applying edit to %s: %w", p, err)
		}
		updated, err := ApplyEdits(string(original), edit.Edits(p))
		if err != nil {
			return fmt.Errorf("applying edit to %s: %w", p, err)
		}
		changes = append(changes, change{path: p, original: original, updated: []byte(updated), mode: info.Mode().Perm()})
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for i, c := range changes {
		if err := afero.WriteFile(l.fs, c.path, c.updated, c.mode); err != nil {
			var restoreErrs []error
			for _, done := range changes[:i] {
				if rerr := afero.WriteFile(l.fs, done.path, done.original, done.mode); rerr != nil {
					restoreErrs = append(restoreErrs, rerr)
				}
			}
			if len(restoreErrs) > 0 {
				output.Error("restoring files after failed edit", "err", errors.Join(restoreErrs...))
			}
			return fmt.Errorf("writing %s: %w", c.path, err)
		}
	}

	output.Debug("applied workspace edit", "files", len(changes), "edits", edit.Len())
	return nil
}

// RenameSymbol renames every whole-word occurrence of the identifier at
// offset within the same document.
func (l *Local) RenameSymbol(ctx context.Context, doc *Document, offset int, newName string) ([]TextEdit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	word, _, ok := doc.WordAt(offset)
	if !ok {
		pos := doc.PositionAt(offset)
		return nil, fmt.Errorf("%s:%d:%d: no identifier to rename", doc.Path, pos.Line+1, pos.Character+1)
	}

	occurrences := doc.WordOccurrences(word)
	edits := make([]TextEdit, 0, len(occurrences))
	for _, start := range occurrences {
		edits = append(edits, TextEdit{Start: start, End: start + len(word), NewText: newName})
	}
	return edits, nil
}
