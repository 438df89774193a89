package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
)

// Resolver locates the nearest configuration file above a directory and
// validates it. Configurations are read fresh on every call.
type Resolver struct {
	fs afero.Fs
}

// NewResolver creates a resolver reading from fsys.
func NewResolver(fsys afero.Fs) *Resolver {
	return &Resolver{fs: fsys}
}

// Find walks from start up to the filesystem root and returns the path of
// the first configuration file found.
func (r *Resolver) Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, err := r.fs.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", oerrors.NewNotFoundError(
				fmt.Sprintf("no %s found in %s or any parent directory", FileName, start),
				start,
				"run 'compforge init' to create one",
			)
		}
		dir = parent
	}
}

// Resolve finds and validates the configuration governing start.
//
// The nearest configuration file is authoritative: if it is malformed or
// invalid, resolution fails without looking further up.
func (r *Resolver) Resolve(start string) (*Resolved, error) {
	path, err := r.Find(start)
	if err != nil {
		return nil, err
	}
	output.Debug("found configuration", "path", path, "start", start)
	return r.Load(path)
}

// Load reads and validates the configuration file at path.
func (r *Resolver) Load(path string) (*Resolved, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	cfg, err := validator.Validate(r.fs, path, dir, data)
	if err != nil {
		return nil, configError(path, err)
	}

	resolved := &Resolved{
		Config: cfg,
		Dir:    dir,
		Path:   path,
	}
	if cfg.ComponentNamePattern != "" {
		// Already compiled once by the validator.
		resolved.namePattern = regexp.MustCompile(cfg.ComponentNamePattern)
	}
	return resolved, nil
}

// configError converts validator failures into a DetailError listing
// every collected problem.
func configError(path string, err error) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  "the configuration file is not valid JSON",
			Location: path,
			Details:  []string{parseErr.Err.Error()},
			Hint:     "fix the syntax error; parent directories are not searched while this file is broken",
			Cause:    oerrors.ErrConfig,
		}
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return oerrors.NewConfigError(
			fmt.Sprintf("found %d problem(s) in the configuration", len(verrs)),
			path,
			verrs.Messages(),
			"run 'compforge config vet' after editing to re-check",
		)
	}

	return fmt.Errorf("validating %s: %w", path, err)
}
