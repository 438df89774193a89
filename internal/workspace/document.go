// Package workspace provides the editor-side collaborators used by
// component operations: text documents, multi-file text edits, file search
// and symbol rename.
package workspace

import (
	"sort"
	"strings"
)

// Position is a zero-based line and byte column.
type Position struct {
	Line      int
	Character int
}

// Document is an opened text file with offset conversion.
type Document struct {
	Path string

	text       string
	lineStarts []int
}

// NewDocument creates a document from text.
func NewDocument(path, text string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{Path: path, text: text, lineStarts: starts}
}

// Text returns the document's full text.
func (d *Document) Text() string {
	return d.text
}

// PositionAt converts a byte offset to a position. Offsets are clamped to
// the document.
func (d *Document) PositionAt(offset int) Position {
	offset = clamp(offset, 0, len(d.text))
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	return Position{Line: line, Character: offset - d.lineStarts[line]}
}

// OffsetAt converts a position to a byte offset. Positions past the end of a
// line resolve to the line's end.
func (d *Document) OffsetAt(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(d.lineStarts) {
		return len(d.text)
	}

	start := d.lineStarts[p.Line]
	end := len(d.text)
	if p.Line+1 < len(d.lineStarts) {
		end = d.lineStarts[p.Line+1] - 1
	}
	return clamp(start+p.Character, start, end)
}

// WordAt returns the identifier covering offset and its start offset.
func (d *Document) WordAt(offset int) (string, int, bool) {
	if offset < 0 || offset >= len(d.text) || !isIdentByte(d.text[offset]) {
		return "", 0, false
	}

	start := offset
	for start > 0 && isIdentByte(d.text[start-1]) {
		start--
	}
	end := offset
	for end < len(d.text) && isIdentByte(d.text[end]) {
		end++
	}
	return d.text[start:end], start, true
}

// WordOccurrences returns the start offsets of every whole-word occurrence
// of word.
func (d *Document) WordOccurrences(word string) []int {
	if word == "" {
		return nil
	}

	var offsets []int
	for from := 0; from <= len(d.text)-len(word); {
		i := strings.Index(d.text[from:], word)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(word)
		before := start == 0 || !isIdentByte(d.text[start-1])
		after := end == len(d.text) || !isIdentByte(d.text[end])
		if before && after {
			offsets = append(offsets, start)
		}
		from = start + 1
	}
	return offsets
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
