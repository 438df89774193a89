package component

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
)

// Rename renames the component at srcDir to newName in place: the
// directory, the entries within it, their contents, and finally imports of
// the component elsewhere in the workspace. Completed steps are not rolled
// back when a later one fails.
func (s *Service) Rename(ctx context.Context, srcDir, newName string) (*Result, error) {
	abs, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", srcDir, err)
	}
	oldName := filepath.Base(abs)
	if oldName == newName {
		return &Result{Source: abs, Target: abs, NoOp: true}, nil
	}

	src, dst, err := s.prepare(abs, newName)
	if err != nil {
		return nil, err
	}

	rw := NewRewriter(oldName, newName)
	result := &Result{Source: src, Target: dst}

	if err := s.checkEntryCollisions(src, rw); err != nil {
		return nil, err
	}

	output.Debug("renaming component", "source", src, "target", dst)

	if err := s.fs.Rename(src, dst); err != nil {
		return result, fmt.Errorf("renaming %s: %w", src, err)
	}
	s.report(".", output.StatusRenamed)

	files, err := s.renameEntries(ctx, dst, rw, result)
	if err != nil {
		return result, err
	}

	for _, f := range files {
		if err := checkCancelled(ctx, result.Files); err != nil {
			return result, err
		}

		changed, err := s.rewriteFile(filepath.Join(dst, filepath.FromSlash(f)), rw)
		if err != nil {
			return result, err
		}
		if changed {
			result.Files = append(result.Files, FileChange{Path: f, Status: output.StatusRewritten})
			s.report(f, output.StatusRewritten)
		}
	}

	if s.ws == nil {
		return result, nil
	}

	imports, err := s.UpdateImports(ctx, oldName, newName)
	result.Imports = imports
	if err != nil {
		return result, err
	}
	return result, nil
}

// renameEntries renames every entry below dir whose name contains an old
// variant and returns all files, relative to dir, after renaming.
func (s *Service) renameEntries(ctx context.Context, dir string, rw *Rewriter, result *Result) ([]string, error) {
	var files []string

	queue := []dirJob{{dst: dir}}
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]

		entries, err := afero.ReadDir(s.fs, job.dst)
		if err != nil {
			return files, fmt.Errorf("reading %s: %w", job.dst, err)
		}

		for _, entry := range entries {
			if err := checkCancelled(ctx, result.Files); err != nil {
				return files, err
			}

			name := rw.Replace(entry.Name())
			from := filepath.Join(job.dst, entry.Name())
			to := filepath.Join(job.dst, name)
			rel := path.Join(job.rel, name)

			if name != entry.Name() {
				if err := s.checkFree(from, to); err != nil {
					return files, err
				}
				if err := s.fs.Rename(from, to); err != nil {
					return files, fmt.Errorf("renaming %s: %w", from, err)
				}
				result.Files = append(result.Files, FileChange{Path: rel, Status: output.StatusRenamed})
				s.report(rel, output.StatusRenamed)
			}

			if entry.IsDir() {
				queue = append(queue, dirJob{dst: to, rel: rel})
				continue
			}
			files = append(files, rel)
		}
	}
	return files, nil
}

// checkEntryCollisions walks the component at dir before anything is moved
// and fails when a renamed entry would land on the name of a sibling.
func (s *Service) checkEntryCollisions(dir string, rw *Rewriter) error {
	queue := []string{dir}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := afero.ReadDir(s.fs, current)
		if err != nil {
			return fmt.Errorf("reading %s: %w", current, err)
		}

		renamed := make(map[string]string, len(entries))
		for _, entry := range entries {
			name := rw.Replace(entry.Name())
			if other, taken := renamed[name]; taken {
				return collisionError(current, entry.Name(), other, name)
			}
			renamed[name] = entry.Name()
			if entry.IsDir() {
				queue = append(queue, filepath.Join(current, entry.Name()))
			}
		}
	}
	return nil
}

// checkFree guards a single entry rename against replacing an existing
// entry. Renames that only change letter case are allowed through so
// case-insensitive filesystems do not report the entry as its own
// collision.
func (s *Service) checkFree(from, to string) error {
	if strings.EqualFold(filepath.Base(from), filepath.Base(to)) {
		return nil
	}
	if _, err := s.fs.Stat(to); err == nil {
		return oerrors.NewExistsError(fmt.Sprintf("%s already exists", to), to, "")
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", to, err)
	}
	return nil
}

func collisionError(dir, a, b, name string) error {
	target := filepath.Join(dir, name)
	return oerrors.NewExistsError(
		fmt.Sprintf("renaming would give %s and %s the same name %s", a, b, name),
		target,
		"rename or remove one of the entries first",
	)
}
