package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/prompt"
)

// NewCreateGroupCmd creates the create-group command.
func NewCreateGroupCmd(cfg *GlobalConfig) *cobra.Command {
	var (
		name  string
		group string
	)

	c := &cobra.Command{
		Use:   "create-group [dir]",
		Short: "Create a component from an alternate template group",
		Long: `Create a component from one of the alternate template groups.

The group is picked from a list unless --group names it by label.

Examples:
  compforge create-group src/components
  compforge create-group src/components --name UserCard --group "Component with tests"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreateGroup(c, args, cfg, name, group)
		},
	}

	c.Flags().StringVar(&name, "name", "", "Component name (prompted when omitted)")
	c.Flags().StringVarP(&group, "group", "g", "", "Label of the template group (picked when omitted)")

	return c
}

func runCreateGroup(c *cobra.Command, args []string, cfg *GlobalConfig, nameFlag, groupFlag string) error {
	dir, err := cfg.targetDirectory(dirArg(args))
	if err != nil {
		return cfg.fail(err)
	}

	resolved, err := cfg.resolveConfig(dir)
	if err != nil {
		return cfg.fail(err)
	}

	groups := resolved.Groups()
	if len(groups) == 0 {
		return cfg.fail(oerrors.NewValidationError(
			"no alternate template groups are configured",
			resolved.Path,
			"alternateTemplateGroups",
			"use 'compforge create' for the default group",
		))
	}

	group, err := cfg.pickGroup(groups, groupFlag)
	if err != nil {
		return cfg.fail(err)
	}

	name, err := cfg.componentName(resolved, nameFlag)
	if err != nil {
		return cfg.fail(err)
	}

	result, err := cfg.generate(c.Context(), resolved, name, dir, group.Templates)
	if err != nil {
		return cfg.fail(err)
	}

	return cfg.finishGeneration(c.OutOrStdout(), name, dir, result)
}

// pickGroup selects a group by label, or asks for one when label is empty.
func (g *GlobalConfig) pickGroup(groups []config.ResolvedGroup, label string) (config.ResolvedGroup, error) {
	labels := make([]string, len(groups))
	for i, grp := range groups {
		labels[i] = grp.Label
	}

	if label != "" {
		for _, grp := range groups {
			if grp.Label == label {
				return grp, nil
			}
		}
		return config.ResolvedGroup{}, oerrors.NewValidationError(
			fmt.Sprintf("no template group labeled %q", label),
			"",
			"alternateTemplateGroups",
			fmt.Sprintf("available groups: %s", strings.Join(labels, ", ")),
		)
	}

	items := make([]prompt.Item, len(groups))
	for i, grp := range groups {
		items[i] = prompt.Item{Label: grp.Label, Value: grp.Label}
	}

	idx, err := g.Prompter.PickOne("Template group", items)
	if err != nil {
		return config.ResolvedGroup{}, promptError(err, "--group")
	}
	if idx < 0 || idx >= len(groups) {
		return config.ResolvedGroup{}, fmt.Errorf("template group choice %d out of range", idx)
	}
	return groups[idx], nil
}
