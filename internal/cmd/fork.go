package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/component"
	"github.com/compforge/cli/internal/output"
)

// NewForkCmd creates the fork command.
func NewForkCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "fork <componentDir> [newName]",
		Short: "Copy a component under a new name",
		Long: `Copy a component directory to a sibling directory named newName.

Every file and directory name and every file's content has each case
variant of the old name (PascalCase, camelCase, kebab-case, snake_case)
replaced with the matching variant of the new name. The source is left
untouched. The new name is prompted for when omitted.

A failure part way leaves the partial copy in place.

Examples:
  compforge fork src/components/UserCard TeamCard`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			return runFork(c, args, cfg)
		},
	}
}

func runFork(c *cobra.Command, args []string, cfg *GlobalConfig) error {
	src, err := cfg.targetDirectory(args[0])
	if err != nil {
		return cfg.fail(err)
	}
	oldName := filepath.Base(src)

	check, err := cfg.nameCheck(src)
	if err != nil {
		return cfg.fail(err)
	}

	newName, err := cfg.newComponentName(args, oldName, check)
	if err != nil {
		return cfg.fail(err)
	}

	svc := cfg.newService(check, nil)
	result, err := runTransform(c.Context(), fmt.Sprintf("Forking %s to %s", oldName, newName),
		func(ctx context.Context) (*component.Result, error) {
			return svc.Fork(ctx, src, newName)
		})
	if err != nil {
		return cfg.fail(partialError("fork", result, err))
	}

	if err := cfg.writeTransform(c.OutOrStdout(), result); err != nil {
		return cfg.fail(err)
	}

	return cfg.finish(output.Notification{
		Level:   output.LevelInfo,
		Message: fmt.Sprintf("Forked %s to %s: %d files copied", oldName, newName, len(result.Files)),
	}, nil)
}
