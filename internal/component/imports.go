package component

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/workspace"
)

// importPattern matches static import declarations with a binding clause:
//
//	import X from '...'
//	import { A, B as C } from '...'
//	import X, { A } from '...'
//	import * as NS from '...'
//	import type { T } from '...'
//
// Re-exports (export ... from), dynamic import() and require() are not
// matched.
var importPattern = regexp.MustCompile(
	`\bimport\s+(?:type\s+)?` +
		`((?:[A-Za-z_$][\w$]*\s*,\s*)?(?:\{[^}]*\}|\*\s*as\s+[A-Za-z_$][\w$]*)|[A-Za-z_$][\w$]*)` +
		`\s*from\s*['"]([^'"\r\n]+)['"]`,
)

var identPattern = regexp.MustCompile(`[A-Za-z_$][\w$]*`)

// ImportResult summarises an import update.
type ImportResult struct {
	// Scanned is the number of files searched.
	Scanned int

	// Files is the number of files with at least one edit.
	Files int

	// Edits is the number of text edits applied.
	Edits int

	// Skipped lists files that could not be opened or analysed.
	Skipped []string

	// Dropped counts symbol-rename edits discarded because they overlapped
	// an import path edit.
	Dropped int
}

// binding is one name bound by an import clause.
type binding struct {
	name   string
	offset int
	// aliased bindings ("A as B") only have the imported name edited.
	aliased bool
}

// UpdateImports rewrites imports of the component oldName across the
// workspace: path segments naming an old variant are rewritten and
// identifiers derived from the old name are renamed through the
// workspace's symbol rename. All edits are applied as one workspace edit.
func (s *Service) UpdateImports(ctx context.Context, oldName, newName string) (*ImportResult, error) {
	result := &ImportResult{}
	if s.ws == nil {
		return result, nil
	}

	files, err := s.ws.FindFiles(ctx, s.include, s.exclude)
	if err != nil {
		return result, fmt.Errorf("finding source files: %w", err)
	}
	result.Scanned = len(files)

	rw := NewRewriter(oldName, newName)
	edit := workspace.NewWorkspaceEdit()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		doc, err := s.ws.OpenText(file)
		if err != nil {
			output.Warn("skipping file during import update", "path", file, "err", err)
			result.Skipped = append(result.Skipped, file)
			continue
		}

		dropped, err := s.collectImportEdits(ctx, doc, oldName, rw, edit)
		if err != nil {
			output.Warn("skipping file during import update", "path", file, "err", err)
			result.Skipped = append(result.Skipped, file)
			continue
		}
		result.Dropped += dropped
	}

	result.Files = len(edit.Paths())
	result.Edits = edit.Len()
	if result.Edits == 0 {
		return result, nil
	}

	if err := s.ws.ApplyEdit(ctx, edit); err != nil {
		return result, fmt.Errorf("updating imports: %w", err)
	}

	for _, p := range edit.Paths() {
		s.report(p, "imports updated")
	}
	return result, nil
}

// collectImportEdits adds the edits for one document. Path edits go in
// first so that symbol-rename edits overlapping them are dropped.
func (s *Service) collectImportEdits(ctx context.Context, doc *workspace.Document, oldName string, rw *Rewriter, edit *workspace.WorkspaceEdit) (int, error) {
	text := doc.Text()
	matches := importPattern.FindAllStringSubmatchIndex(text, -1)

	var pathEdits, symbolEdits []workspace.TextEdit
	for _, m := range matches {
		clauseStart, clauseEnd := m[2], m[3]
		pathStart, pathEnd := m[4], m[5]

		specifier := text[pathStart:pathEnd]
		if !referencesComponent(specifier, oldName) {
			continue
		}

		if updated := rewriteSpecifier(specifier, rw); updated != specifier {
			pathEdits = append(pathEdits, workspace.TextEdit{Start: pathStart, End: pathEnd, NewText: updated})
		}

		for _, b := range parseClause(text[clauseStart:clauseEnd], clauseStart) {
			renamed := rw.Replace(b.name)
			if renamed == b.name {
				continue
			}

			if b.aliased {
				symbolEdits = append(symbolEdits, workspace.TextEdit{Start: b.offset, End: b.offset + len(b.name), NewText: renamed})
				continue
			}

			edits, err := s.ws.RenameSymbol(ctx, doc, b.offset, renamed)
			if err != nil {
				return 0, err
			}
			symbolEdits = append(symbolEdits, edits...)
		}
	}

	edit.Add(doc.Path, pathEdits...)
	return edit.AddIfDisjoint(doc.Path, dedupe(symbolEdits)...), nil
}

// dedupe drops repeated edits, which arise when two imports bind the same
// identifier.
func dedupe(edits []workspace.TextEdit) []workspace.TextEdit {
	seen := make(map[workspace.TextEdit]bool, len(edits))
	out := edits[:0]
	for _, e := range edits {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// referencesComponent reports whether an import specifier has a segment
// naming the component, ignoring extensions.
func referencesComponent(specifier, name string) bool {
	for _, seg := range strings.Split(specifier, "/") {
		if stem(seg) == name {
			return true
		}
	}
	return false
}

// rewriteSpecifier rewrites every segment whose stem is an old variant.
func rewriteSpecifier(specifier string, rw *Rewriter) string {
	segs := strings.Split(specifier, "/")
	for i, seg := range segs {
		st := stem(seg)
		if renamed, ok := rw.Lookup(st); ok {
			segs[i] = renamed + seg[len(st):]
		}
	}
	return strings.Join(segs, "/")
}

// stem returns a path segment up to its first dot; "." and ".." are kept.
func stem(seg string) string {
	if seg == "." || seg == ".." {
		return seg
	}
	if i := strings.IndexByte(seg, '.'); i > 0 {
		return seg[:i]
	}
	return seg
}

// parseClause extracts the names bound by an import clause. base is the
// clause's offset in the document.
func parseClause(clause string, base int) []binding {
	var out []binding

	head := clause
	named := ""
	namedAt := 0
	if open := strings.IndexByte(clause, '{'); open >= 0 {
		head = clause[:open]
		if end := strings.IndexByte(clause[open:], '}'); end > 0 {
			named = clause[open+1 : open+end]
			namedAt = open + 1
		}
	}

	// Default or namespace binding: the last identifier before the braces,
	// skipping the "as" of "* as NS".
	if idents := identPattern.FindAllStringIndex(head, -1); len(idents) > 0 {
		last := idents[len(idents)-1]
		name := head[last[0]:last[1]]
		if name != "as" {
			out = append(out, binding{name: name, offset: base + last[0]})
		}
	}

	offset := namedAt
	for _, spec := range strings.Split(named, ",") {
		idents := identPattern.FindAllStringIndex(spec, -1)
		if len(idents) > 0 && spec[idents[0][0]:idents[0][1]] == "type" && len(idents) > 1 {
			idents = idents[1:]
		}
		if len(idents) > 0 {
			first := idents[0]
			aliased := len(idents) >= 3 && spec[idents[1][0]:idents[1][1]] == "as"
			out = append(out, binding{
				name:    spec[first[0]:first[1]],
				offset:  base + offset + first[0],
				aliased: aliased,
			})
		}
		offset += len(spec) + 1
	}

	return out
}
