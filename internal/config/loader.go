package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for compforge settings.
const envPrefix = "COMPFORGE"

// Settings are the user-level CLI settings, loaded from
// ~/.compforge/config.yaml and COMPFORGE_* environment variables.
type Settings struct {
	// Workspace is the root that generated files and import rewrites must
	// stay inside. Env: COMPFORGE_WORKSPACE, Default: current directory.
	Workspace string `mapstructure:"workspace" yaml:"workspace,omitempty"`

	// Log contains logging-related settings.
	Log LogSettings `mapstructure:"log" yaml:"log"`

	// Imports controls which files are scanned when a rename updates imports.
	Imports ImportSettings `mapstructure:"imports" yaml:"imports"`
}

// LogSettings contains logging-related settings.
type LogSettings struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// ImportSettings selects the files scanned for import statements.
type ImportSettings struct {
	// Include globs, relative to the workspace root.
	Include []string `mapstructure:"include" yaml:"include"`

	// Exclude globs, relative to the workspace root.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// DefaultImportInclude lists the JavaScript and TypeScript sources scanned
// for imports by default.
var DefaultImportInclude = []string{
	"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs",
	"**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts",
	"**/*.vue", "**/*.svelte",
}

// DefaultImportExclude lists directories never scanned for imports.
var DefaultImportExclude = []string{
	"**/node_modules/**", "**/.git/**", "**/dist/**", "**/build/**",
}

// DefaultSettings returns Settings with all default values populated.
func DefaultSettings() *Settings {
	return &Settings{
		Imports: ImportSettings{
			Include: append([]string(nil), DefaultImportInclude...),
			Exclude: append([]string(nil), DefaultImportExclude...),
		},
	}
}

// Loader handles loading and merging settings from the settings file,
// the environment and defaults.
type Loader struct {
	v    *viper.Viper
	file *viper.Viper
}

// NewLoader creates a new settings loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("workspace", "COMPFORGE_WORKSPACE")
	_ = v.BindEnv("log.timestamps", "COMPFORGE_LOG_TIMESTAMPS")
	_ = v.BindEnv("imports.include", "COMPFORGE_IMPORTS_INCLUDE")
	_ = v.BindEnv("imports.exclude", "COMPFORGE_IMPORTS_EXCLUDE")

	defaults := DefaultSettings()
	v.SetDefault("imports.include", defaults.Imports.Include)
	v.SetDefault("imports.exclude", defaults.Imports.Exclude)

	return &Loader{v: v, file: viper.New()}
}

// Load reads the settings file at path and merges environment variables
// over it. A missing file is not an error.
func (l *Loader) Load(path string) (*Settings, error) {
	if path != "" {
		expandedPath, err := ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("expanding settings path: %w", err)
		}

		l.file.SetConfigFile(expandedPath)
		l.file.SetConfigType("yaml")

		if err := l.file.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading settings file: %w", err)
			}
		}

		if err := l.v.MergeConfigMap(l.file.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging settings file: %w", err)
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}

	return &s, nil
}

// FileValue returns a string setting as written in the settings file,
// ignoring the environment. Empty when the file does not set it.
func (l *Loader) FileValue(key string) string {
	if !l.file.IsSet(key) {
		return ""
	}
	return l.file.GetString(key)
}
