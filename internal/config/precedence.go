package config

import (
	"os"

	"github.com/compforge/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from the settings file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one setting after precedence resolution.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions holds the candidate values of one setting.
type ResolveOptions struct {
	Key         string
	FlagValue   string
	EnvVar      string
	ConfigValue string
	Default     string
}

// Resolve picks a value using precedence flag > env > config > default
// and records every lower-precedence value that was set.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, os.Getenv(opts.EnvVar)},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.Default},
	}

	for _, c := range candidates {
		if c.value == "" || (c.source == SourceEnv && opts.EnvVar == "") {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveSettingsPath resolves the settings file path using precedence:
// (1) --settings flag, (2) COMPFORGE_SETTINGS env, (3) ~/.compforge/config.yaml.
func ResolveSettingsPath(flagValue string) (ResolvedValue, error) {
	settingsPath, err := DefaultSettingsPath()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		Key:       "settings",
		FlagValue: flagValue,
		EnvVar:    "COMPFORGE_SETTINGS",
		Default:   settingsPath,
	}), nil
}

// ResolveWorkspace resolves the workspace root using precedence:
// (1) --workspace flag, (2) COMPFORGE_WORKSPACE env, (3) settings file,
// (4) the current directory.
func ResolveWorkspace(flagValue, configValue string) (ResolvedValue, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return ResolvedValue{}, err
	}

	result := Resolve(ResolveOptions{
		Key:         "workspace",
		FlagValue:   flagValue,
		EnvVar:      "COMPFORGE_WORKSPACE",
		ConfigValue: configValue,
		Default:     cwd,
	})
	result.Value = ExpandTilde(result.Value)
	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
