package component

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/workspace"
)

// Progress reports one processed entry.
type Progress struct {
	// Path is relative to the target component directory.
	Path   string
	Status string
}

// ProgressFunc receives progress reports.
type ProgressFunc func(Progress)

// FileChange records what happened to one entry of the component.
type FileChange struct {
	Path   string
	Status string
}

// Result describes a completed fork or rename.
type Result struct {
	Source string
	Target string

	// NoOp is true when the new name equals the old one.
	NoOp bool

	Files []FileChange

	// Imports is set by Rename when imports were scanned.
	Imports *ImportResult
}

// Service forks and renames components on a filesystem.
type Service struct {
	fs       afero.Fs
	ws       workspace.Workspace
	progress ProgressFunc
	restrict func(name string) error
	include  []string
	exclude  []string
}

// Option configures a Service.
type Option func(*Service)

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Service) {
		s.progress = fn
	}
}

// WithNameCheck adds a validation applied to new names, typically
// Resolved.ValidateComponentName.
func WithNameCheck(fn func(name string) error) Option {
	return func(s *Service) {
		s.restrict = fn
	}
}

// WithImportGlobs selects the files Rename scans for imports.
func WithImportGlobs(include, exclude []string) Option {
	return func(s *Service) {
		s.include = include
		s.exclude = exclude
	}
}

// NewService creates a service. ws may be nil, in which case Rename does
// not update imports.
func NewService(fsys afero.Fs, ws workspace.Workspace, opts ...Option) *Service {
	s := &Service{
		fs:      fsys,
		ws:      ws,
		include: config.DefaultImportInclude,
		exclude: config.DefaultImportExclude,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) report(path, status string) {
	if s.progress != nil {
		s.progress(Progress{Path: path, Status: status})
	}
}

// prepare validates a fork or rename of srcDir to newName and returns the
// source and target directories.
func (s *Service) prepare(srcDir, newName string) (string, string, error) {
	src, err := filepath.Abs(srcDir)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", srcDir, err)
	}

	info, err := s.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", oerrors.NewNotFoundError(fmt.Sprintf("component directory %s does not exist", src), src, "")
		}
		return "", "", fmt.Errorf("checking %s: %w", src, err)
	}
	if !info.IsDir() {
		return "", "", oerrors.NewValidationError(fmt.Sprintf("%s is not a directory", src), src, "", "pass the component's directory")
	}

	if err := config.ValidateComponentName(newName, ""); err != nil {
		return "", "", err
	}
	if s.restrict != nil {
		if err := s.restrict(newName); err != nil {
			return "", "", err
		}
	}

	dst := filepath.Join(filepath.Dir(src), newName)
	if _, err := s.fs.Stat(dst); err == nil {
		return "", "", oerrors.NewExistsError(
			fmt.Sprintf("%s already exists", dst),
			dst,
			"choose another name or remove the existing directory",
		)
	} else if !os.IsNotExist(err) {
		return "", "", fmt.Errorf("checking %s: %w", dst, err)
	}

	return src, dst, nil
}

// isBinary reports whether content looks like a binary file. Binary files
// are copied and renamed but never rewritten.
func isBinary(content []byte) bool {
	n := len(content)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(content[:n], 0) >= 0
}

// rewriteFile rewrites path in place and reports whether it changed.
func (s *Service) rewriteFile(path string, rw *Rewriter) (bool, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return false, err
	}
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if isBinary(content) {
		return false, nil
	}

	updated := rw.Replace(string(content))
	if updated == string(content) {
		return false, nil
	}
	if err := afero.WriteFile(s.fs, path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func checkCancelled(ctx context.Context, done []FileChange) error {
	if err := ctx.Err(); err != nil {
		if len(done) > 0 {
			output.Warn("stopped with the component partially processed", "entries", len(done))
		}
		return err
	}
	return nil
}
