package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/compforge/cli/internal/component"
	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/workspace"
)

// transformReport is the structured form of a fork or rename result.
type transformReport struct {
	Source  string            `json:"source" yaml:"source"`
	Target  string            `json:"target" yaml:"target"`
	Files   map[string]string `json:"files" yaml:"files"`
	Imports *importReport     `json:"imports,omitempty" yaml:"imports,omitempty"`
}

type importReport struct {
	Scanned int      `json:"scanned" yaml:"scanned"`
	Files   int      `json:"files" yaml:"files"`
	Edits   int      `json:"edits" yaml:"edits"`
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// nameCheck returns the validation applied to new names: the configured
// case restriction and pattern when a configuration governs dir, otherwise
// case detection only. Only a missing configuration is tolerated.
func (g *GlobalConfig) nameCheck(dir string) (func(string) error, error) {
	resolved, err := g.resolveConfig(dir)
	if err == nil {
		return resolved.ValidateComponentName, nil
	}
	if errors.Is(err, oerrors.ErrNotFound) {
		output.Debug("no configuration found, checking case only", "dir", dir)
		return func(name string) error {
			return config.ValidateComponentName(name, "")
		}, nil
	}
	return nil, err
}

// newComponentName returns the new name from args or from a prompt
// pre-filled with the current name.
func (g *GlobalConfig) newComponentName(args []string, current string, check func(string) error) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}

	name, err := g.Prompter.Text("New component name", current, promptValidator(check))
	if err != nil {
		return "", promptError(err, "the new name argument")
	}
	return name, nil
}

// newService builds the component service. ws is nil for fork.
func (g *GlobalConfig) newService(check func(string) error, ws workspace.Workspace) *component.Service {
	opts := []component.Option{
		component.WithNameCheck(check),
		component.WithProgress(func(p component.Progress) {
			output.Debug("processed", "path", p.Path, "status", p.Status)
		}),
	}
	if g.Settings != nil {
		opts = append(opts, component.WithImportGlobs(g.Settings.Imports.Include, g.Settings.Imports.Exclude))
	}
	return component.NewService(g.FS, ws, opts...)
}

// runTransform runs op under a spinner. RunWithSpinner returns only after
// op has, so result is complete when read.
func runTransform(ctx context.Context, title string, op func(ctx context.Context) (*component.Result, error)) (*component.Result, error) {
	var result *component.Result
	err := output.RunWithSpinner(ctx, title, func(ctx context.Context) error {
		var err error
		result, err = op(ctx)
		return err
	})
	return result, err
}

// partialError explains that a failed fork or rename may have left the
// filesystem part way through. Failures before any mutation pass through.
func partialError(verb string, result *component.Result, err error) error {
	if result == nil {
		return err
	}
	return &oerrors.DetailError{
		Type:     verb + " failed",
		Message:  fmt.Sprintf("%s stopped part way: %v", verb, err),
		Location: result.Target,
		Details:  changedPaths(result),
		Hint:     "completed steps were not rolled back; inspect " + result.Target,
		Cause:    err,
	}
}

func changedPaths(result *component.Result) []string {
	out := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		out = append(out, f.Status+": "+f.Path)
	}
	return out
}

func (g *GlobalConfig) writeTransform(w io.Writer, result *component.Result) error {
	files := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		files[f.Path] = f.Status
	}

	switch {
	case g.Output.Structured():
		report := transformReport{Source: result.Source, Target: result.Target, Files: files}
		if imp := result.Imports; imp != nil {
			report.Imports = &importReport{Scanned: imp.Scanned, Files: imp.Files, Edits: imp.Edits, Skipped: imp.Skipped}
		}
		return writeStructured(w, g.Output, report)

	default:
		tree := output.RenderFileTree(filepath.Base(result.Target), files)
		if tree != "" {
			_, err := io.WriteString(w, tree)
			return err
		}
		return nil
	}
}
