package config

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"github.com/spf13/afero"

	"github.com/compforge/cli/internal/casing"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s\n", err.Error()))
	}
	return sb.String()
}

// Messages returns one line per error.
func (e ValidationErrors) Messages() []string {
	out := make([]string, len(e))
	for i := range e {
		out[i] = e[i].Error()
	}
	return out
}

func (e *ValidationErrors) add(field, format string, args ...interface{}) {
	*e = append(*e, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ParseError reports malformed configuration syntax.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Validator checks configuration documents against the embedded CUE schema
// and the referential rules that the schema cannot express.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE, cue.Filename("config.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema does not define #Config")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate parses and validates a configuration document. dir is the
// directory containing the document; template sources are checked under
// dir/templatesDirectoryName on fsys.
//
// Syntax errors return *ParseError. Every other problem is collected and
// returned as ValidationErrors.
func (v *Validator) Validate(fsys afero.Fs, filename, dir string, data []byte) (*TemplateConfig, error) {
	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return nil, &ParseError{Path: filename, Err: err}
	}

	value := v.ctx.BuildExpr(expr)
	if value.Err() != nil {
		return nil, &ParseError{Path: filename, Err: value.Err()}
	}

	errs := v.checkSchema(value)

	// Keep going after schema errors so reference and template file problems
	// are reported in the same run. A document whose shape cannot be decoded
	// stops at the schema errors.
	var cfg TemplateConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		if len(errs) > 0 {
			return nil, errs
		}
		return nil, ValidationErrors{{Message: fmt.Sprintf("decoding configuration: %v", err)}}
	}

	errs = append(errs, checkSemantics(&cfg)...)
	if cfg.TemplatesDirectoryName != "" {
		errs = append(errs, checkTemplateFiles(fsys, dir, &cfg)...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &cfg, nil
}

// checkSchema unifies the document with #Config and converts every CUE
// error into a ValidationError.
func (v *Validator) checkSchema(value cue.Value) ValidationErrors {
	unified := v.schema.Unify(value)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			Field:   schemaErrorPath(e),
			Message: schemaErrorMessage(e),
		}
		key := ve.Field + "\x00" + ve.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		errs = append(errs, ve)
	}

	errs = collapseDisjunctions(errs)
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Field < errs[j].Field
	})
	return errs
}

// collapseDisjunctions replaces the per-alternative errors CUE reports for
// a value that matches no branch of a disjunction with one message per
// field.
func collapseDisjunctions(errs ValidationErrors) ValidationErrors {
	collapsed := make(map[string]bool)
	for _, e := range errs {
		if isCaseField(e.Field) || strings.Contains(e.Message, "empty disjunction") {
			collapsed[e.Field] = true
		}
	}
	if len(collapsed) == 0 {
		return errs
	}

	out := make(ValidationErrors, 0, len(errs))
	done := make(map[string]bool)
	for _, e := range errs {
		if !collapsed[e.Field] {
			out = append(out, e)
			continue
		}
		if done[e.Field] {
			continue
		}
		done[e.Field] = true
		out = append(out, ValidationError{Field: e.Field, Message: disjunctionMessage(e.Field)})
	}
	return out
}

func isCaseField(field string) bool {
	return field == "directoryCase" || strings.HasSuffix(field, ".directoryCase")
}

func disjunctionMessage(field string) string {
	if isCaseField(field) {
		names := make([]string, len(casing.All))
		for i, c := range casing.All {
			names[i] = string(c)
		}
		return "must be one of " + strings.Join(names, ", ")
	}
	return "must be a template source or an object with source, target and label"
}

// schemaErrorPath drops definition selectors so paths read like the JSON
// document, e.g. "alternateTemplateGroups.0.label".
func schemaErrorPath(e cueerrors.Error) string {
	var parts []string
	for _, p := range e.Path() {
		if strings.HasPrefix(p, "#") {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ".")
}

func schemaErrorMessage(e cueerrors.Error) string {
	format, args := e.Msg()
	msg := fmt.Sprintf(format, args...)

	switch {
	case strings.Contains(msg, "incomplete value"),
		strings.Contains(msg, "field is required but not present"):
		return "required field is missing"
	case strings.Contains(msg, "field not allowed"):
		return "field is not allowed"
	}
	return msg
}

// checkSemantics applies the rules the schema cannot express: path shape,
// pattern syntax and template reference integrity.
func checkSemantics(cfg *TemplateConfig) ValidationErrors {
	var errs ValidationErrors

	name := cfg.TemplatesDirectoryName
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		errs.add("templatesDirectoryName", "must be a single directory name, got %q", name)
	}

	if cfg.ComponentNamePattern != "" {
		if _, err := regexp.Compile(cfg.ComponentNamePattern); err != nil {
			errs.add("componentNamePattern", "invalid regular expression: %v", err)
		}
	}

	registry := make(map[string]bool, len(cfg.Templates))
	for i, t := range cfg.Templates {
		if registry[t.Source] {
			errs.add(fmt.Sprintf("templates[%d].source", i), "duplicate template source %q", t.Source)
		}
		registry[t.Source] = true
	}

	errs = append(errs, checkGroup(cfg, "defaultTemplateGroup", cfg.DefaultTemplateGroup, registry)...)
	for i, g := range cfg.AlternateTemplateGroups {
		errs = append(errs, checkGroup(cfg, fmt.Sprintf("alternateTemplateGroups[%d].templates", i), g.Templates, registry)...)
	}

	for k := range cfg.Replacements {
		if k == "" {
			errs.add("replacements", "keys must not be empty")
		}
	}

	return errs
}

// checkGroup reports unresolved references and descriptors in one group
// rendering to the same target pattern.
func checkGroup(cfg *TemplateConfig, field string, refs []TemplateRef, registry map[string]bool) ValidationErrors {
	var errs ValidationErrors
	targets := make(map[string]int)

	for i, ref := range refs {
		entry := fmt.Sprintf("%s[%d]", field, i)
		if ref.Inline == nil && !registry[ref.ID] {
			errs.add(entry, "template %q is not defined in templates", ref.ID)
			continue
		}

		d, _ := cfg.Lookup(ref)
		if d.Target == "" {
			continue
		}
		if first, dup := targets[d.Target]; dup {
			errs.add(entry, "target %q is already produced by %s[%d]", d.Target, field, first)
			continue
		}
		targets[d.Target] = i
	}
	return errs
}

// checkTemplateFiles verifies that every reachable template source exists
// as a regular file inside the templates directory.
func checkTemplateFiles(fsys afero.Fs, dir string, cfg *TemplateConfig) ValidationErrors {
	var errs ValidationErrors

	r := &Resolved{Config: cfg, Dir: dir}
	templateDir := r.TemplateDir()

	for _, d := range r.AllTemplates() {
		if d.Source == "" {
			continue
		}
		if !isLocalPath(d.Source) {
			errs.add("templates", "source %q must stay inside %s", d.Source, cfg.TemplatesDirectoryName)
			continue
		}

		p := filepath.Join(templateDir, filepath.FromSlash(d.Source))
		info, err := fsys.Stat(p)
		switch {
		case err != nil:
			errs.add("templates", "template file %s not found", p)
		case info.IsDir():
			errs.add("templates", "template source %s is a directory", p)
		}
	}
	return errs
}

// isLocalPath reports whether a slash-separated relative path stays below
// its base directory.
func isLocalPath(p string) bool {
	p = filepath.ToSlash(p)
	if p == "" || path.IsAbs(p) || filepath.IsAbs(p) {
		return false
	}
	clean := path.Clean(p)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
