package config

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/compforge/cli/internal/casing"
	oerrors "github.com/compforge/cli/internal/errors"
)

func TestTemplateRef_UnmarshalJSON(t *testing.T) {
	var refs []TemplateRef
	data := `["a.tmpl", {"source": "b.tmpl", "target": "{{COMPONENT_NAME}}.b", "label": "B"}]`
	require.NoError(t, json.Unmarshal([]byte(data), &refs))

	require.Len(t, refs, 2)
	assert.Equal(t, "a.tmpl", refs[0].ID)
	assert.Nil(t, refs[0].Inline)
	require.NotNil(t, refs[1].Inline)
	assert.Equal(t, "B", refs[1].Inline.Label)
	assert.Equal(t, "b.tmpl", refs[1].String())
}

func TestTemplateRef_UnmarshalJSON_RejectsOtherShapes(t *testing.T) {
	var ref TemplateRef
	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
}

func TestTemplateRef_MarshalKeepsForm(t *testing.T) {
	refs := []TemplateRef{
		{ID: "a.tmpl"},
		{Inline: &TemplateDescriptor{Source: "b.tmpl", Target: "B.txt", Label: "B"}},
	}

	b, err := json.Marshal(refs)
	require.NoError(t, err)
	assert.JSONEq(t, `["a.tmpl", {"source": "b.tmpl", "target": "B.txt", "label": "B"}]`, string(b))

	y, err := yaml.Marshal(refs)
	require.NoError(t, err)
	assert.Contains(t, string(y), "- a.tmpl")
	assert.Contains(t, string(y), "source: b.tmpl")
}

func sampleResolved() *Resolved {
	return &Resolved{
		Dir:  "/work/app",
		Path: "/work/app/.compforge.json",
		Config: &TemplateConfig{
			TemplatesDirectoryName: "tpl",
			DefaultTemplateGroup: []TemplateRef{
				{ID: "component.tmpl"},
				{ID: "index.tmpl"},
			},
			AlternateTemplateGroups: []TemplateGroup{
				{
					Label: "With story",
					Templates: []TemplateRef{
						{ID: "component.tmpl"},
						{Inline: &TemplateDescriptor{Source: "story.tmpl", Target: "{{PascalCaseComponentName}}.stories.tsx", Label: "Story"}},
					},
				},
			},
			Templates: []TemplateDescriptor{
				{Source: "component.tmpl", Target: "{{PascalCaseComponentName}}.tsx", Label: "Component"},
				{Source: "index.tmpl", Target: "index.ts", Label: "Index"},
			},
		},
	}
}

func TestResolved_Accessors(t *testing.T) {
	r := sampleResolved()

	assert.Equal(t, "/work/app/tpl", r.TemplateDir())

	defaults := r.DefaultTemplates()
	require.Len(t, defaults, 2)
	assert.Equal(t, "Component", defaults[0].Label)
	assert.Equal(t, "index.ts", defaults[1].Target)

	groups := r.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "With story", groups[0].Label)
	require.Len(t, groups[0].Templates, 2)
	assert.Equal(t, "Story", groups[0].Templates[1].Label)

	all := r.AllTemplates()
	require.Len(t, all, 3)
	assert.Equal(t, "story.tmpl", all[2].Source)
}

func TestValidateComponentName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		restrict casing.Case
		wantErr  bool
	}{
		{name: "pascal", input: "MyButton"},
		{name: "kebab", input: "my-button"},
		{name: "empty", input: "", wantErr: true},
		{name: "mixed separators", input: "My-Component", wantErr: true},
		{name: "leading digit", input: "1button", wantErr: true},
		{name: "restricted match", input: "MyButton", restrict: casing.Pascal},
		{name: "restricted mismatch", input: "my-button", restrict: casing.Pascal, wantErr: true},
		{name: "one word satisfies snake", input: "button", restrict: casing.Snake},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentName(tt.input, tt.restrict)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolved_ValidateComponentName_Pattern(t *testing.T) {
	fs, dir := writeWorkspace(t, `{
		"templatesDirectoryName": "tpl",
		"componentNamePattern": "^[A-Z][a-zA-Z]+$",
		"defaultTemplateGroup": ["a.tmpl"],
		"templates": [{"source": "a.tmpl", "target": "{{PascalCaseComponentName}}.txt", "label": "A"}]
	}`, "a.tmpl")

	resolved, err := NewResolver(fs).Resolve(dir)
	require.NoError(t, err)

	assert.NoError(t, resolved.ValidateComponentName("Button"))

	err = resolved.ValidateComponentName("Button2")
	require.Error(t, err)
	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "componentNamePattern", detail.Field)
}
