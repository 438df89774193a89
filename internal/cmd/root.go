// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/prompt"
	"github.com/compforge/cli/internal/version"
)

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE and
// the collaborators every command uses. It is passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// Settings are the loaded user settings.
	Settings *config.Settings

	// Workspace is the resolved workspace root.
	Workspace string

	// WorkspaceSource records where Workspace came from.
	WorkspaceSource config.ConfigSource

	// Output is the resolved --output format.
	Output output.OutputFormat

	// Verbose mirrors --verbose.
	Verbose bool

	// FS is the filesystem commands operate on.
	FS afero.Fs

	// Prompter asks for names and template choices.
	Prompter prompt.Prompter

	// Notifier shows each command's final notification. Defaults to a
	// terminal notifier on the command's output stream.
	Notifier output.Notifier
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	verbose    bool
	timestamps bool
	workspace  string
	settings   string
	output     string
}

// NewRootCmd creates the root command for the compforge CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&GlobalConfig{
		FS:       afero.NewOsFs(),
		Prompter: prompt.NewTerminal(),
	})
}

func newRootCmd(cfg *GlobalConfig) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "compforge",
		Short: "Scaffold, extend, fork and rename components from templates",
		Long: `compforge generates groups of related files ("components") from templates
declared in a .compforge.json file, and forks or renames existing components
while rewriting every case variant of their name.

The nearest .compforge.json above the target directory governs each command.
Run 'compforge init' to create one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().StringVar(&flags.workspace, "workspace", "", "Workspace root (env: COMPFORGE_WORKSPACE)")
	rootCmd.PersistentFlags().StringVar(&flags.settings, "settings", "", "Path to settings file (env: COMPFORGE_SETTINGS)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))

	rootCmd.AddCommand(NewCreateCmd(cfg))
	rootCmd.AddCommand(NewCreateGroupCmd(cfg))
	rootCmd.AddCommand(NewAddCmd(cfg))
	rootCmd.AddCommand(NewRenameCmd(cfg))
	rootCmd.AddCommand(NewForkCmd(cfg))
	rootCmd.AddCommand(NewInitCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging, loads settings and resolves the
// workspace root.
func initializeGlobals(c *cobra.Command, cfg *GlobalConfig, flags *globalFlags) error {
	settingsPath, err := config.ResolveSettingsPath(flags.settings)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	loader := config.NewLoader()
	settings, err := loader.Load(settingsPath.Value)
	if err != nil {
		return &oerrors.DetailError{
			Type:     "invalid settings",
			Message:  err.Error(),
			Location: settingsPath.Value,
			Hint:     "fix or remove the settings file",
			Cause:    oerrors.ErrConfig,
		}
	}
	cfg.Settings = settings

	// Timestamps: flag (if explicitly set) > settings > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else {
		logCfg.Timestamps = settings.Log.Timestamps
	}
	output.SetupLogging(logCfg)
	output.SetOutput(c.ErrOrStderr())
	cfg.Verbose = flags.verbose

	workspace, err := config.ResolveWorkspace(flags.workspace, loader.FileValue("workspace"))
	if err != nil {
		return fmt.Errorf("resolving workspace: %w", err)
	}
	root, err := filepath.Abs(workspace.Value)
	if err != nil {
		return fmt.Errorf("resolving workspace %s: %w", workspace.Value, err)
	}
	cfg.Workspace = root
	cfg.WorkspaceSource = workspace.Source

	format, err := output.ParseOutputFormat(flags.output)
	if err != nil {
		return oerrors.NewValidationError(
			err.Error(),
			"",
			"",
			fmt.Sprintf("valid formats: %s", strings.Join(output.ValidFormats(), ", ")),
		)
	}
	cfg.Output = format

	if cfg.FS == nil {
		cfg.FS = afero.NewOsFs()
	}
	if cfg.Prompter == nil {
		cfg.Prompter = prompt.NewTerminal()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = output.NewTerminalNotifier(c.OutOrStdout())
	}

	info := version.Get()
	output.Debug("compforge started", "version", info.Version, "cue_sdk", info.CUESDKVersion)
	config.LogResolvedValues(settingsPath, workspace)

	return nil
}
