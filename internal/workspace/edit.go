package workspace

import (
	"fmt"
	"sort"
	"strings"
)

// TextEdit replaces the byte range [Start, End) of a document.
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// Overlaps reports whether two edits touch a common byte. Two insertions at
// the same offset also overlap.
func (e TextEdit) Overlaps(o TextEdit) bool {
	if e.Start == e.End && o.Start == o.End {
		return e.Start == o.Start
	}
	return e.Start < o.End && o.Start < e.End
}

// WorkspaceEdit collects text edits across files.
type WorkspaceEdit struct {
	edits map[string][]TextEdit
	order []string
}

// NewWorkspaceEdit creates an empty edit.
func NewWorkspaceEdit() *WorkspaceEdit {
	return &WorkspaceEdit{edits: make(map[string][]TextEdit)}
}

// Add appends edits for path.
func (w *WorkspaceEdit) Add(path string, edits ...TextEdit) {
	if len(edits) == 0 {
		return
	}
	if _, ok := w.edits[path]; !ok {
		w.order = append(w.order, path)
	}
	w.edits[path] = append(w.edits[path], edits...)
}

// AddIfDisjoint appends each edit that does not overlap an edit already
// recorded for path and returns how many were dropped.
func (w *WorkspaceEdit) AddIfDisjoint(path string, edits ...TextEdit) int {
	dropped := 0
	for _, e := range edits {
		conflict := false
		for _, existing := range w.edits[path] {
			if e.Overlaps(existing) {
				conflict = true
				break
			}
		}
		if conflict {
			dropped++
			continue
		}
		w.Add(path, e)
	}
	return dropped
}

// Paths returns the edited paths in the order they were first added.
func (w *WorkspaceEdit) Paths() []string {
	return append([]string(nil), w.order...)
}

// Edits returns the edits recorded for path.
func (w *WorkspaceEdit) Edits(path string) []TextEdit {
	return append([]TextEdit(nil), w.edits[path]...)
}

// Len returns the number of edits across all paths.
func (w *WorkspaceEdit) Len() int {
	n := 0
	for _, e := range w.edits {
		n += len(e)
	}
	return n
}

// ApplyEdits returns text with edits applied. Edits must lie within text and
// must not overlap.
func ApplyEdits(text string, edits []TextEdit) (string, error) {
	sorted := append([]TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End > len(text) || e.Start > e.End {
			return "", fmt.Errorf("edit [%d,%d) is outside the document (length %d)", e.Start, e.End, len(text))
		}
		if i > 0 && e.Overlaps(sorted[i-1]) {
			return "", fmt.Errorf("edits [%d,%d) and [%d,%d) overlap", sorted[i-1].Start, sorted[i-1].End, e.Start, e.End)
		}
		b.WriteString(text[last:e.Start])
		b.WriteString(e.NewText)
		last = e.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
