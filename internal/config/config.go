// Package config resolves and validates component configuration files
// (.compforge.json) and loads the CLI's user-level settings.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/compforge/cli/internal/casing"
	oerrors "github.com/compforge/cli/internal/errors"
)

// TemplateDescriptor names a template file, the path pattern it renders to,
// and the label shown when picking templates.
type TemplateDescriptor struct {
	// Source is the template file, relative to the templates directory.
	Source string `json:"source" yaml:"source"`

	// Target is the output path pattern, relative to the component's target
	// directory. It may contain name tokens.
	Target string `json:"target" yaml:"target"`

	// Label is the display name.
	Label string `json:"label" yaml:"label"`
}

// TemplateRef is an entry of a template group: either the source of a
// registry entry in TemplateConfig.Templates, or an inline descriptor.
type TemplateRef struct {
	ID     string
	Inline *TemplateDescriptor
}

// UnmarshalJSON accepts a string or a descriptor object.
func (r *TemplateRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = TemplateRef{ID: id}
		return nil
	}

	var d TemplateDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("template reference must be a string or a descriptor object: %w", err)
	}
	*r = TemplateRef{Inline: &d}
	return nil
}

// MarshalJSON writes the reference in the form it was read.
func (r TemplateRef) MarshalJSON() ([]byte, error) {
	if r.Inline != nil {
		return json.Marshal(r.Inline)
	}
	return json.Marshal(r.ID)
}

// MarshalYAML writes the reference in the form it was read.
func (r TemplateRef) MarshalYAML() (interface{}, error) {
	if r.Inline != nil {
		return r.Inline, nil
	}
	return r.ID, nil
}

// String returns the registry id or the inline descriptor's source.
func (r TemplateRef) String() string {
	if r.Inline != nil {
		return r.Inline.Source
	}
	return r.ID
}

// TemplateGroup is a labeled set of templates offered as one choice.
type TemplateGroup struct {
	Label     string        `json:"label" yaml:"label"`
	Templates []TemplateRef `json:"templates" yaml:"templates"`
}

// TemplateConfig is the root of a .compforge.json file.
type TemplateConfig struct {
	Schema string `json:"$schema,omitempty" yaml:"$schema,omitempty"`

	// TemplatesDirectoryName is the directory next to the config file that
	// holds the template sources. A single path segment.
	TemplatesDirectoryName string `json:"templatesDirectoryName" yaml:"templatesDirectoryName"`

	// DirectoryCase restricts component names to one case.
	DirectoryCase casing.Case `json:"directoryCase,omitempty" yaml:"directoryCase,omitempty"`

	// ComponentNamePattern is a regular expression component names must match.
	ComponentNamePattern string `json:"componentNamePattern,omitempty" yaml:"componentNamePattern,omitempty"`

	DefaultTemplateGroup    []TemplateRef        `json:"defaultTemplateGroup" yaml:"defaultTemplateGroup"`
	AlternateTemplateGroups []TemplateGroup      `json:"alternateTemplateGroups,omitempty" yaml:"alternateTemplateGroups,omitempty"`
	Templates               []TemplateDescriptor `json:"templates,omitempty" yaml:"templates,omitempty"`

	// Replacements are literal key/value pairs substituted in targets and
	// template content alongside the name tokens.
	Replacements map[string]string `json:"replacements,omitempty" yaml:"replacements,omitempty"`
}

// Lookup resolves a reference against the template registry.
func (c *TemplateConfig) Lookup(ref TemplateRef) (TemplateDescriptor, bool) {
	if ref.Inline != nil {
		return *ref.Inline, true
	}
	for _, t := range c.Templates {
		if t.Source == ref.ID {
			return t, true
		}
	}
	return TemplateDescriptor{}, false
}

// expand resolves refs in order, dropping any that do not resolve.
func (c *TemplateConfig) expand(refs []TemplateRef) []TemplateDescriptor {
	out := make([]TemplateDescriptor, 0, len(refs))
	for _, ref := range refs {
		if d, ok := c.Lookup(ref); ok {
			out = append(out, d)
		}
	}
	return out
}

// ResolvedGroup is a template group with its references expanded.
type ResolvedGroup struct {
	Label     string
	Templates []TemplateDescriptor
}

// Resolved is a validated configuration together with where it was found.
type Resolved struct {
	// Config is the validated configuration.
	Config *TemplateConfig

	// Dir is the directory containing the configuration file. Generation
	// falls back to it as the write boundary when no workspace is set.
	Dir string

	// Path is the configuration file path.
	Path string

	namePattern *regexp.Regexp
}

// TemplateDir returns the absolute templates directory.
func (r *Resolved) TemplateDir() string {
	return filepath.Join(r.Dir, r.Config.TemplatesDirectoryName)
}

// DefaultTemplates returns the default group's descriptors.
func (r *Resolved) DefaultTemplates() []TemplateDescriptor {
	return r.Config.expand(r.Config.DefaultTemplateGroup)
}

// Groups returns the alternate groups with references expanded.
func (r *Resolved) Groups() []ResolvedGroup {
	groups := make([]ResolvedGroup, 0, len(r.Config.AlternateTemplateGroups))
	for _, g := range r.Config.AlternateTemplateGroups {
		groups = append(groups, ResolvedGroup{
			Label:     g.Label,
			Templates: r.Config.expand(g.Templates),
		})
	}
	return groups
}

// AllTemplates returns every distinct descriptor reachable from the
// registry, the default group and the alternate groups, in that order.
func (r *Resolved) AllTemplates() []TemplateDescriptor {
	seen := make(map[TemplateDescriptor]bool)
	var out []TemplateDescriptor

	add := func(ds []TemplateDescriptor) {
		for _, d := range ds {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}

	add(r.Config.Templates)
	add(r.DefaultTemplates())
	for _, g := range r.Groups() {
		add(g.Templates)
	}
	return out
}

// ValidateComponentName checks a component name against the case engine
// and the configured case restriction and name pattern.
func (r *Resolved) ValidateComponentName(name string) error {
	if err := ValidateComponentName(name, r.Config.DirectoryCase); err != nil {
		return err
	}

	if r.namePattern != nil && !r.namePattern.MatchString(name) {
		return oerrors.NewValidationError(
			fmt.Sprintf("component name %q does not match %s", name, r.Config.ComponentNamePattern),
			r.Path,
			"componentNamePattern",
			"",
		)
	}
	return nil
}

// ValidateComponentName checks that a name has a detectable case and, when
// restrict is set, is written in that case.
func ValidateComponentName(name string, restrict casing.Case) error {
	if name == "" {
		return oerrors.NewValidationError("component name must not be empty", "", "", "")
	}

	if _, ok := casing.Detect(name); !ok {
		return oerrors.NewValidationError(
			fmt.Sprintf("component name %q is not in a supported case", name),
			"",
			"",
			"use PascalCase, camelCase, kebab-case or snake_case without mixing separators",
		)
	}

	if restrict != "" && !casing.Matches(name, restrict) {
		example, _ := casing.Transform(name, restrict)
		return oerrors.NewValidationError(
			fmt.Sprintf("component name %q must be %s case", name, restrict),
			"",
			"directoryCase",
			fmt.Sprintf("try %q", example),
		)
	}
	return nil
}
