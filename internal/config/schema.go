package config

import (
	_ "embed"
)

// FileName is the reserved name of the component configuration file.
const FileName = ".compforge.json"

//go:embed schema/config.cue
var configSchemaCUE []byte
