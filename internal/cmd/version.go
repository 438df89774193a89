package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show compforge version information.

Displays:
  - compforge version, commit, and build date
  - Go version
  - CUE SDK version (used for configuration validation)`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			if cfg.Output.Structured() {
				return writeStructured(c.OutOrStdout(), cfg.Output, info)
			}
			_, err := fmt.Fprintln(c.OutOrStdout(), info.String())
			return err
		},
	}
}
