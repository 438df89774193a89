package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/config"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/templates"
)

// NewInitCmd creates the init command.
func NewInitCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter configuration and templates",
		Long: fmt.Sprintf(`Write a starter %s and templates/ directory into dir
(default: the current directory).

The starter declares a default group (component and barrel export) and two
alternate groups (with tests; with story and styles). Existing files are
left untouched and reported as skipped.

Examples:
  compforge init
  compforge init src/components`, config.FileName),
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInit(c, args, cfg)
		},
	}
}

func runInit(c *cobra.Command, args []string, cfg *GlobalConfig) error {
	dir, err := cfg.targetDirectory(dirArg(args))
	if err != nil {
		return cfg.fail(err)
	}

	gen := templates.NewGenerator(cfg.FS, cfg.generationRoot(dir, dir))
	result, err := gen.WriteStarter(c.Context(), dir)
	if err != nil {
		return cfg.fail(err)
	}

	if err := cfg.finishGeneration(c.OutOrStdout(), "starter", dir, result); err != nil {
		return err
	}

	output.Debug("starter written", "dir", dir, "next", "compforge config vet")
	return nil
}
