package component

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/compforge/cli/internal/output"
)

// dirJob is one pending directory of a tree walk.
type dirJob struct {
	src string
	dst string
	rel string
}

// Fork copies the component at srcDir to a sibling directory named
// newName, renaming entries and rewriting contents. A failure part way
// leaves the partial copy in place.
func (s *Service) Fork(ctx context.Context, srcDir, newName string) (*Result, error) {
	src, dst, err := s.prepare(srcDir, newName)
	if err != nil {
		return nil, err
	}

	rw := NewRewriter(filepath.Base(src), newName)
	if err := s.checkEntryCollisions(src, rw); err != nil {
		return nil, err
	}
	result := &Result{Source: src, Target: dst}

	output.Debug("forking component", "source", src, "target", dst)

	queue := []dirJob{{src: src, dst: dst}}
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]

		if err := s.fs.MkdirAll(job.dst, 0o755); err != nil {
			return result, fmt.Errorf("creating %s: %w", job.dst, err)
		}

		entries, err := afero.ReadDir(s.fs, job.src)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", job.src, err)
		}

		for _, entry := range entries {
			if err := checkCancelled(ctx, result.Files); err != nil {
				return result, err
			}

			name := rw.Replace(entry.Name())
			next := dirJob{
				src: filepath.Join(job.src, entry.Name()),
				dst: filepath.Join(job.dst, name),
				rel: path.Join(job.rel, name),
			}

			if entry.IsDir() {
				queue = append(queue, next)
				continue
			}

			status, err := s.copyFile(next.src, next.dst, entry.Mode().Perm(), rw)
			if err != nil {
				return result, err
			}
			result.Files = append(result.Files, FileChange{Path: next.rel, Status: status})
			s.report(next.rel, status)
		}
	}

	return result, nil
}

// copyFile writes the rewritten content of src to a new file at dst.
func (s *Service) copyFile(src, dst string, perm os.FileMode, rw *Rewriter) (string, error) {
	content, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src, err)
	}

	status := output.StatusCopied
	if !isBinary(content) {
		if updated := rw.Replace(string(content)); updated != string(content) {
			content = []byte(updated)
			status = output.StatusRewritten
		}
	}

	f, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", dst, err)
	}
	return status, nil
}
