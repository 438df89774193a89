package templates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/compforge/cli/internal/config"
	"github.com/compforge/cli/internal/output"
)

// Generator renders template descriptors into new files. It never
// overwrites an existing file.
type Generator struct {
	fs           afero.Fs
	root         string
	replacements map[string]string
}

// Option configures a Generator.
type Option func(*Generator)

// WithReplacements adds literal replacement pairs applied alongside the
// name tokens.
func WithReplacements(pairs map[string]string) Option {
	return func(g *Generator) {
		g.replacements = pairs
	}
}

// NewGenerator creates a generator writing to fsys. Targets outside
// workspaceRoot are refused; an empty root disables the check.
func NewGenerator(fsys afero.Fs, workspaceRoot string, opts ...Option) *Generator {
	g := &Generator{fs: fsys, root: workspaceRoot}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RenderOne renders a single descriptor. The returned error is non-nil only
// when the component name's case cannot be detected; per-file failures are
// reported in FileResult.Err.
func (g *Generator) RenderOne(ctx context.Context, req FileRequest) (FileResult, error) {
	sub, err := NewSubstituter(req.Name, g.replacements)
	if err != nil {
		return FileResult{}, err
	}
	return g.render(ctx, sub, req), nil
}

// RenderGroup renders every descriptor concurrently and partitions the
// outcomes. Descriptors whose computed target duplicates an earlier one in
// the list fail without being rendered.
func (g *Generator) RenderGroup(ctx context.Context, name, targetDir string, descriptors []config.TemplateDescriptor, templateDir string) (*GenerationResult, error) {
	sub, err := NewSubstituter(name, g.replacements)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(descriptors))
	claimed := make(map[string]string, len(descriptors))

	var wg sync.WaitGroup
	for i, d := range descriptors {
		rel := targetPath(sub, d)
		if label, dup := claimed[rel]; dup {
			results[i] = FileResult{
				Path:    filepath.Join(targetDir, filepath.FromSlash(rel)),
				RelPath: rel,
				Err:     fmt.Errorf("target %s is also produced by template %q", rel, label),
			}
			continue
		}
		claimed[rel] = d.Label

		wg.Add(1)
		go func(i int, d config.TemplateDescriptor) {
			defer wg.Done()
			results[i] = g.render(ctx, sub, FileRequest{
				Name:        name,
				TargetDir:   targetDir,
				Descriptor:  d,
				TemplateDir: templateDir,
			})
		}(i, d)
	}
	wg.Wait()

	result := &GenerationResult{}
	for _, r := range results {
		switch {
		case r.Written:
			result.Added = append(result.Added, r.RelPath)
		case r.AlreadyExisted:
			result.Skipped = append(result.Skipped, r.RelPath)
		default:
			result.Failed = append(result.Failed, FailedFile{Path: r.RelPath, Err: r.Err})
		}
	}
	result.Success = len(result.Added) > 0

	output.Debug("generated component",
		"name", name,
		"target", targetDir,
		"added", len(result.Added),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)
	return result, nil
}

func targetPath(sub *Substituter, d config.TemplateDescriptor) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(sub.Replace(d.Target))))
}

func (g *Generator) render(ctx context.Context, sub *Substituter, req FileRequest) FileResult {
	rel := targetPath(sub, req.Descriptor)
	target := filepath.Join(req.TargetDir, filepath.FromSlash(rel))
	res := FileResult{Path: target, RelPath: rel}

	if err := g.checkInsideRoot(target); err != nil {
		res.Err = err
		return res
	}

	if _, err := g.fs.Stat(target); err == nil {
		res.AlreadyExisted = true
		output.Debug("file exists, skipping", "path", target)
		return res
	} else if !errors.Is(err, os.ErrNotExist) {
		res.Err = fmt.Errorf("checking %s: %w", target, err)
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	source := filepath.Join(req.TemplateDir, filepath.FromSlash(req.Descriptor.Source))
	content, err := afero.ReadFile(g.fs, source)
	if err != nil {
		res.Err = fmt.Errorf("reading template %s: %w", source, err)
		return res
	}

	if err := g.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		res.Err = fmt.Errorf("creating directory for %s: %w", target, err)
		return res
	}

	written, err := g.writeNew(target, []byte(sub.Replace(string(content))))
	switch {
	case err != nil:
		res.Err = err
	case !written:
		res.AlreadyExisted = true
	default:
		res.Written = true
		output.Debug("created file", "path", target)
	}
	return res
}

// writeNew creates path exclusively. It reports false without error when
// the file appeared after the existence check.
func (g *Generator) writeNew(path string, content []byte) (bool, error) {
	f, err := g.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}

func (g *Generator) checkInsideRoot(path string) error {
	if g.root == "" {
		return nil
	}
	if !Within(g.root, path) {
		return fmt.Errorf("target %s is outside the workspace %s", path, g.root)
	}
	return nil
}

// Within reports whether path is root or below it.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
