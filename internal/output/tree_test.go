package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func treeLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestRenderFileTree(t *testing.T) {
	out := RenderFileTree("src", map[string]string{
		"Button/Button.tsx":       StatusAdded,
		"Button/Button.test.tsx":  StatusSkipped,
		"Button/styles/index.css": StatusAdded,
	})

	lines := treeLines(out)
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "src/")
	assert.Contains(t, lines[1], "└── Button/")
	// Directories sort before files.
	assert.Contains(t, lines[2], "├── styles/")
	assert.Contains(t, lines[3], "│   └── index.css")
	assert.Contains(t, lines[4], "├── Button.test.tsx")
	assert.Contains(t, lines[4], "skipped")
	assert.Contains(t, lines[5], "└── Button.tsx")
}

func TestRenderFileTree_DirectoryStatus(t *testing.T) {
	out := RenderFileTree("TeamBadge", map[string]string{
		".":                  StatusRenamed,
		"parts":              StatusRenamed,
		"parts/TeamBadge.ts": StatusRewritten,
		`TeamBadge.tsx`:      StatusRewritten,
	})

	lines := treeLines(out)
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TeamBadge/")
	assert.Contains(t, lines[0], "renamed")
	assert.Contains(t, lines[1], "├── parts/")
	assert.Contains(t, lines[1], "renamed")
	assert.Contains(t, lines[2], "│   └── TeamBadge.ts")
	assert.Contains(t, lines[3], "└── TeamBadge.tsx")
}

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("src", nil))
}
