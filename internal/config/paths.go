package config

import (
	"os"
	"path/filepath"
	"strings"
)

// settingsDirName is the directory below the home directory that holds the
// user settings file.
const settingsDirName = ".compforge"

// DefaultSettingsPath returns ~/.compforge/config.yaml.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, settingsDirName, "config.yaml"), nil
}

// ExpandPath replaces a leading "~" or "~/" with the home directory.
// "~user" forms are returned unchanged.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}

// ExpandTilde is ExpandPath for callers that prefer the input unchanged
// over an error when the home directory is unknown.
func ExpandTilde(p string) string {
	expanded, err := ExpandPath(p)
	if err != nil {
		return p
	}
	return expanded
}
