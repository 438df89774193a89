package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/component"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/workspace"
)

// NewRenameCmd creates the rename command.
func NewRenameCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <componentDir> [newName]",
		Short: "Rename a component and update imports of it",
		Long: `Rename a component directory in place.

The directory, the entries within it and their contents have each case
variant of the old name replaced with the matching variant of the new
name. Then every source file in the workspace is scanned for static
imports whose path has a segment equal to the old name; the path and the
imported identifiers are rewritten in one atomic edit.

Supported import forms:
  import X from '...'
  import { A, B as C } from '...'
  import X, { A } from '...'
  import * as NS from '...'
Re-exports, dynamic import() and require() are not rewritten.

A failure part way is not rolled back.

Examples:
  compforge rename src/components/UserCard ProfileCard`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			return runRename(c, args, cfg)
		},
	}
}

func runRename(c *cobra.Command, args []string, cfg *GlobalConfig) error {
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

	svc := cfg.newService(check, workspace.NewLocal(cfg.FS, cfg.Workspace))
	result, err := runTransform(c.Context(), fmt.Sprintf("Renaming %s to %s", oldName, newName),
		func(ctx context.Context) (*component.Result, error) {
			return svc.Rename(ctx, src, newName)
		})
	if err != nil {
		return cfg.fail(partialError("rename", result, err))
	}

	if result.NoOp {
		return cfg.finish(output.Notification{
			Level:   output.LevelInfo,
			Message: fmt.Sprintf("%s already has that name; nothing was changed", oldName),
		}, nil)
	}

	if err := cfg.writeTransform(c.OutOrStdout(), result); err != nil {
		return cfg.fail(err)
	}

	return cfg.finish(renameNotification(oldName, newName, result), nil)
}

// renameNotification summarises a rename. Files skipped during the import
// scan make it a warning.
func renameNotification(oldName, newName string, result *component.Result) output.Notification {
	n := output.Notification{
		Level:   output.LevelInfo,
		Message: fmt.Sprintf("Renamed %s to %s: %d changes", oldName, newName, len(result.Files)),
	}

	imp := result.Imports
	if imp == nil {
		return n
	}

	n.Message += fmt.Sprintf(", imports updated in %d of %d files", imp.Files, imp.Scanned)
	if len(imp.Skipped) > 0 {
		n.Level = output.LevelWarn
		for _, p := range imp.Skipped {
			n.Details = append(n.Details, "not scanned: "+p)
		}
	}
	return n
}
