package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/prompt"
)

// NewAddCmd creates the add command.
func NewAddCmd(cfg *GlobalConfig) *cobra.Command {
	var selected []string

	c := &cobra.Command{
		Use:   "add <componentDir>",
		Short: "Add template files to an existing component",
		Long: `Add files from any configured template to an existing component.

The component name is the directory's base name. Target patterns are
resolved against the component's parent directory, the same root 'create'
uses, so a template targeting {{PascalCaseComponentName}}/... lands inside
the component. Existing files are never overwritten.

Examples:
  # Pick templates from a list
  compforge add src/components/UserCard

  # Non-interactive; match templates by label or source
  compforge add src/components/UserCard --template "Unit test" --template Component.stories.tsx.tmpl`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runAdd(c, args, cfg, selected)
		},
	}

	c.Flags().StringArrayVarP(&selected, "template", "t", nil,
		"Template label or source to add (repeatable; picked when omitted)")

	return c
}

func runAdd(c *cobra.Command, args []string, cfg *GlobalConfig, selected []string) error {
	componentDir, err := cfg.targetDirectory(args[0])
	if err != nil {
		return cfg.fail(err)
	}

	name := filepath.Base(componentDir)
	if err := config.ValidateComponentName(name, ""); err != nil {
		return cfg.fail(err)
	}

	resolved, err := cfg.resolveConfig(componentDir)
	if err != nil {
		return cfg.fail(err)
	}

	descriptors, err := cfg.pickTemplates(resolved.AllTemplates(), selected)
	if err != nil {
		return cfg.fail(err)
	}

	targetRoot := filepath.Dir(componentDir)
	result, err := cfg.generate(c.Context(), resolved, name, targetRoot, descriptors)
	if err != nil {
		return cfg.fail(err)
	}

	return cfg.finishGeneration(c.OutOrStdout(), name, targetRoot, result)
}

// pickTemplates selects descriptors matching the given labels or sources,
// or asks for them when none are given.
func (g *GlobalConfig) pickTemplates(all []config.TemplateDescriptor, selected []string) ([]config.TemplateDescriptor, error) {
	if len(all) == 0 {
		return nil, oerrors.NewValidationError("no templates are configured", "", "templates", "")
	}

	if len(selected) > 0 {
		var out []config.TemplateDescriptor
		for _, s := range selected {
			d, ok := findTemplate(all, s)
			if !ok {
				return nil, oerrors.NewValidationError(
					fmt.Sprintf("no template with label or source %q", s),
					"",
					"templates",
					fmt.Sprintf("available templates: %s", strings.Join(templateLabels(all), ", ")),
				)
			}
			out = append(out, d)
		}
		return out, nil
	}

	items := make([]prompt.Item, len(all))
	for i, d := range all {
		items[i] = prompt.Item{Label: fmt.Sprintf("%s (%s)", d.Label, d.Target), Value: d.Source}
	}

	idx, err := g.Prompter.PickMany("Templates to add", items)
	if err != nil {
		return nil, promptError(err, "--template")
	}

	out := make([]config.TemplateDescriptor, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(all) {
			return nil, fmt.Errorf("template choice %d out of range", i)
		}
		out = append(out, all[i])
	}
	if len(out) == 0 {
		return nil, oerrors.ErrCancelled
	}
	return out, nil
}

// findTemplate matches by label first, then by source.
func findTemplate(all []config.TemplateDescriptor, key string) (config.TemplateDescriptor, bool) {
	for _, d := range all {
		if d.Label == key {
			return d, true
		}
	}
	for _, d := range all {
		if d.Source == key {
			return d, true
		}
	}
	return config.TemplateDescriptor{}, false
}

func templateLabels(all []config.TemplateDescriptor) []string {
	labels := make([]string, len(all))
	for i, d := range all {
		labels[i] = d.Label
	}
	return labels
}
