package templates

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/compforge/cli/internal/config"
	"github.com/compforge/cli/internal/output"
)

//go:embed starter
var starterFS embed.FS

const (
	starterRoot   = "starter"
	starterConfig = "compforge.json"
)

// StarterFiles lists the files WriteStarter creates, relative to the
// target directory.
func StarterFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(starterFS, starterRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, starterTarget(p))
		return nil
	})
	return files, err
}

// starterTarget maps an embedded path to its target path. The config file is
// stored without its leading dot so embed picks it up.
func starterTarget(p string) string {
	rel := p[len(starterRoot)+1:]
	if rel == starterConfig {
		return config.FileName
	}
	return rel
}

// WriteStarter writes a starter configuration and templates directory into
// dir. Existing files are left untouched and reported as skipped.
func (g *Generator) WriteStarter(ctx context.Context, dir string) (*GenerationResult, error) {
	result := &GenerationResult{}

	err := fs.WalkDir(starterFS, starterRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := starterTarget(p)
		target := filepath.Join(dir, filepath.FromSlash(rel))

		if err := g.checkInsideRoot(target); err != nil {
			result.Failed = append(result.Failed, FailedFile{Path: rel, Err: err})
			return nil
		}

		content, err := fs.ReadFile(starterFS, p)
		if err != nil {
			return fmt.Errorf("reading embedded %s: %w", p, err)
		}

		if err := g.fs.MkdirAll(filepath.Join(dir, filepath.FromSlash(path.Dir(rel))), 0o755); err != nil {
			result.Failed = append(result.Failed, FailedFile{Path: rel, Err: err})
			return nil
		}

		written, err := g.writeNew(target, content)
		switch {
		case err != nil:
			result.Failed = append(result.Failed, FailedFile{Path: rel, Err: err})
		case written:
			result.Added = append(result.Added, rel)
			output.Debug("created file", "path", target)
		default:
			result.Skipped = append(result.Skipped, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Success = len(result.Added) > 0
	return result, nil
}
