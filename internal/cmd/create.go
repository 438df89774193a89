package cmd

import (
	"github.com/spf13/cobra"
)

// NewCreateCmd creates the create command.
func NewCreateCmd(cfg *GlobalConfig) *cobra.Command {
	var name string

	c := &cobra.Command{
		Use:   "create [dir]",
		Short: "Create a component from the default template group",
		Long: `Create a component from the default template group.

The nearest .compforge.json above dir (default: the current directory)
provides the templates. Target paths are resolved relative to dir.
Existing files are never overwritten; they are reported as skipped.

Examples:
  # Prompt for the component name
  compforge create src/components

  # Non-interactive
  compforge create src/components --name UserCard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(c, args, cfg, name)
		},
	}

	c.Flags().StringVar(&name, "name", "", "Component name (prompted when omitted)")

	return c
}

func runCreate(c *cobra.Command, args []string, cfg *GlobalConfig, nameFlag string) error {
	dir, err := cfg.targetDirectory(dirArg(args))
	if err != nil {
		return cfg.fail(err)
	}

	resolved, err := cfg.resolveConfig(dir)
	if err != nil {
		return cfg.fail(err)
	}

	name, err := cfg.componentName(resolved, nameFlag)
	if err != nil {
		return cfg.fail(err)
	}

	result, err := cfg.generate(c.Context(), resolved, name, dir, resolved.DefaultTemplates())
	if err != nil {
		return cfg.fail(err)
	}

	return cfg.finishGeneration(c.OutOrStdout(), name, dir, result)
}

// dirArg returns the optional directory argument, defaulting to ".".
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
