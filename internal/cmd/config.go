package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/config"
	"github.com/compforge/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  fmt.Sprintf(`Inspect and validate the %s governing a directory.`, config.FileName),
	}

	c.AddCommand(NewConfigVetCmd(cfg))
	c.AddCommand(NewConfigShowCmd(cfg))

	return c
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [dir]",
		Short: "Validate configuration",
		Long: fmt.Sprintf(`Validate the %s governing dir (default: the current directory).

Checks performed:
  1. A configuration file exists in dir or a parent directory
  2. It is valid JSON
  3. It matches the schema (required fields, closed objects, case enum)
  4. Template references resolve and no group renders two templates
     to the same target
  5. Every referenced template file exists

Every problem found is reported, not just the first.`, config.FileName),
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigVet(args, cfg)
		},
	}
}

func runConfigVet(args []string, cfg *GlobalConfig) error {
	resolved, err := cfg.resolveConfig(dirArg(args))
	if err != nil {
		return cfg.fail(err)
	}

	return cfg.finish(output.Notification{
		Level:   output.LevelInfo,
		Message: "Configuration is valid: " + resolved.Path,
		Details: []string{
			fmt.Sprintf("%d templates", len(resolved.AllTemplates())),
			fmt.Sprintf("%d alternate groups", len(resolved.Groups())),
		},
	}, nil)
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show [dir]",
		Short: "Show the resolved configuration",
		Long: `Show the configuration governing dir (default: the current directory).

With -o text (default) the templates are listed as a table per group.
With -o yaml or -o json the configuration document is printed.

Examples:
  compforge config show
  compforge config show src/components -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigShow(c.OutOrStdout(), args, cfg)
		},
	}
}

// runConfigShow prints the configuration. Success sends no notification
// so the output stays machine-readable.
func runConfigShow(w io.Writer, args []string, cfg *GlobalConfig) error {
	resolved, err := cfg.resolveConfig(dirArg(args))
	if err != nil {
		return cfg.fail(err)
	}

	switch {
	case cfg.Output.Structured():
		err = writeStructured(w, cfg.Output, resolved.Config)
	default:
		_, err = io.WriteString(w, fmt.Sprintf("%s\n%s\n", resolved.Path, output.RenderTemplateTable(templateRows(resolved))))
	}
	if err != nil {
		return cfg.fail(err)
	}
	return nil
}

// templateRows lists the default group then each alternate group.
func templateRows(resolved *config.Resolved) []output.TemplateRow {
	var rows []output.TemplateRow
	add := func(group string, ds []config.TemplateDescriptor) {
		for _, d := range ds {
			rows = append(rows, output.TemplateRow{Group: group, Label: d.Label, Source: d.Source, Target: d.Target})
		}
	}

	add("default", resolved.DefaultTemplates())
	for _, g := range resolved.Groups() {
		add(g.Label, g.Templates)
	}
	return rows
}
