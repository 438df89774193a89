package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/templates"
)

// generationReport is the structured form of a generation result.
type generationReport struct {
	Component string         `json:"component" yaml:"component"`
	Target    string         `json:"target" yaml:"target"`
	Added     []string       `json:"added" yaml:"added"`
	Skipped   []string       `json:"skipped" yaml:"skipped"`
	Failed    []failedReport `json:"failed,omitempty" yaml:"failed,omitempty"`
}

type failedReport struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// resolveConfig finds and validates the configuration governing dir.
func (g *GlobalConfig) resolveConfig(dir string) (*config.Resolved, error) {
	return config.NewResolver(g.FS).Resolve(dir)
}

// targetDirectory returns the absolute form of dir after checking that it
// is an existing directory.
func (g *GlobalConfig) targetDirectory(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	info, err := g.FS.Stat(abs)
	if err != nil {
		return "", oerrors.NewNotFoundError(fmt.Sprintf("directory %s does not exist", abs), abs, "")
	}
	if !info.IsDir() {
		return "", oerrors.NewValidationError(fmt.Sprintf("%s is not a directory", abs), abs, "", "")
	}
	return abs, nil
}

// componentName returns the validated name from the flag or, when the flag
// is empty, from a prompt.
func (g *GlobalConfig) componentName(resolved *config.Resolved, flagValue string) (string, error) {
	name := flagValue
	if name == "" {
		var err error
		name, err = g.Prompter.Text("Component name", "", promptValidator(resolved.ValidateComponentName))
		if err != nil {
			return "", promptError(err, "--name")
		}
	}

	if err := resolved.ValidateComponentName(name); err != nil {
		return "", err
	}
	return name, nil
}

// generate renders descriptors for name into targetDir.
func (g *GlobalConfig) generate(ctx context.Context, resolved *config.Resolved, name, targetDir string, descriptors []config.TemplateDescriptor) (*templates.GenerationResult, error) {
	root := g.generationRoot(targetDir, resolved.Dir)
	gen := templates.NewGenerator(g.FS, root, templates.WithReplacements(resolved.Config.Replacements))
	return gen.RenderGroup(ctx, name, targetDir, descriptors, resolved.TemplateDir())
}

// generationRoot returns the directory generated files must stay inside.
// When no workspace was configured and targetDir lies outside the current
// directory, fallback bounds the writes instead.
func (g *GlobalConfig) generationRoot(targetDir, fallback string) string {
	if g.WorkspaceSource != config.SourceDefault || templates.Within(g.Workspace, targetDir) {
		return g.Workspace
	}
	output.Debug("target is outside the current directory", "target", targetDir, "root", fallback)
	return fallback
}

// finishGeneration prints the result and sends the command's notification.
// Any failed file makes the command exit with ExitPartial.
func (g *GlobalConfig) finishGeneration(w io.Writer, name, targetDir string, result *templates.GenerationResult) error {
	if err := g.writeGeneration(w, name, targetDir, result); err != nil {
		return g.fail(err)
	}

	counts := result.Counts()
	n := output.Notification{
		Level:   counts.Level(),
		Message: fmt.Sprintf("%s: %s", name, counts.Summary()),
	}
	for _, f := range result.Failed {
		n.Details = append(n.Details, fmt.Sprintf("%s: %v", f.Path, f.Err))
	}
	g.Notifier.Notify(n)

	if counts.Failed > 0 {
		return &oerrors.ExitError{
			Code:    oerrors.ExitPartial,
			Err:     fmt.Errorf("%w: %s", oerrors.ErrPartial, counts.Summary()),
			Printed: true,
		}
	}
	return nil
}

func (g *GlobalConfig) writeGeneration(w io.Writer, name, targetDir string, result *templates.GenerationResult) error {
	switch {
	case g.Output.Structured():
		report := generationReport{
			Component: name,
			Target:    targetDir,
			Added:     nonNil(result.Added),
			Skipped:   nonNil(result.Skipped),
		}
		for _, f := range result.Failed {
			report.Failed = append(report.Failed, failedReport{Path: f.Path, Error: f.Err.Error()})
		}
		return writeStructured(w, g.Output, report)

	default:
		tree := output.RenderFileTree(filepath.Base(targetDir), result.Files())
		if tree != "" {
			_, err := io.WriteString(w, tree)
			return err
		}
		return nil
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format output.OutputFormat, v interface{}) error {
	if format == output.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
