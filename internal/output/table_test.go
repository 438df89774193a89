package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplateTable(t *testing.T) {
	out := RenderTemplateTable([]TemplateRow{
		{Group: "default", Label: "Component", Source: "Component.tsx", Target: "{{PascalCaseComponentName}}.tsx"},
		{Group: "default", Label: "Barrel", Source: "index.ts", Target: "index.ts"},
		{Group: "Story", Label: "Story", Source: "Component.stories.tsx", Target: "{{PascalCaseComponentName}}.stories.tsx"},
	})

	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, "Component.stories.tsx")
	assert.Contains(t, out, "{{PascalCaseComponentName}}.tsx")
	assert.Equal(t, 1, strings.Count(out, "default"), "group name is shown once per group")
	assert.Equal(t, 2, strings.Count(out, "Story"))
}
