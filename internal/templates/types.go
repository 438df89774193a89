// Package templates renders template descriptors into component files.
package templates

import (
	"github.com/compforge/cli/internal/config"
	"github.com/compforge/cli/internal/output"
)

// FileRequest asks for one descriptor to be rendered for a component.
type FileRequest struct {
	// Name is the component name as typed.
	Name string

	// TargetDir is the directory target patterns are resolved against.
	TargetDir string

	// Descriptor is the template to render.
	Descriptor config.TemplateDescriptor

	// TemplateDir is the directory holding the template sources.
	TemplateDir string
}

// FileResult is the outcome of rendering one descriptor.
type FileResult struct {
	// Path is the absolute target path.
	Path string

	// RelPath is the target path relative to the request's TargetDir,
	// slash-separated.
	RelPath string

	// Written is true when the file was created.
	Written bool

	// AlreadyExisted is true when a file was already present at Path. Nothing
	// was read or written in that case.
	AlreadyExisted bool

	// Err is set when reading the template or writing the target failed.
	Err error
}

// FailedFile records a file that could not be generated.
type FailedFile struct {
	Path string
	Err  error
}

// GenerationResult summarises one group render.
type GenerationResult struct {
	// Success is true iff at least one file was written.
	Success bool

	// Added lists created files, relative to the target directory.
	Added []string

	// Skipped lists files that already existed.
	Skipped []string

	// Failed lists files that could not be generated.
	Failed []FailedFile
}

// Counts returns the per-bucket totals.
func (r *GenerationResult) Counts() output.Counts {
	return output.Counts{
		Added:   len(r.Added),
		Skipped: len(r.Skipped),
		Failed:  len(r.Failed),
	}
}

// Files maps every path in the result to its status, for tree rendering.
func (r *GenerationResult) Files() map[string]string {
	files := make(map[string]string, len(r.Added)+len(r.Skipped)+len(r.Failed))
	for _, p := range r.Added {
		files[p] = output.StatusAdded
	}
	for _, p := range r.Skipped {
		files[p] = output.StatusSkipped
	}
	for _, f := range r.Failed {
		files[f.Path] = output.StatusFailed
	}
	return files
}
