package templates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compforge/cli/internal/config"
	oerrors "github.com/compforge/cli/internal/errors"
)

const (
	workRoot    = "/work"
	templateDir = "/work/tpl"
	targetDir   = "/work/src"
)

func newFS(t *testing.T, templates map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(templateDir, 0o755))
	require.NoError(t, fs.MkdirAll(targetDir, 0o755))
	for name, content := range templates {
		p := filepath.Join(templateDir, filepath.FromSlash(name))
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
	}
	return fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestRenderOne_Scenario(t *testing.T) {
	fs := newFS(t, map[string]string{"a.tmpl": "Hello {{camelCaseComponentName}}"})
	g := NewGenerator(fs, workRoot)

	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "myThing",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "a.tmpl", Target: "{{PascalCaseComponentName}}.txt", Label: "A"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)

	assert.True(t, res.Written)
	assert.False(t, res.AlreadyExisted)
	assert.NoError(t, res.Err)
	assert.Equal(t, "MyThing.txt", res.RelPath)
	assert.Equal(t, "Hello myThing", readFile(t, fs, filepath.Join(targetDir, "MyThing.txt")))
}

func TestRenderOne_NeverOverwrites(t *testing.T) {
	fs := newFS(t, map[string]string{"foo.tmpl": "new content"})
	existing := filepath.Join(targetDir, "Foo.txt")
	require.NoError(t, afero.WriteFile(fs, existing, []byte("original"), 0o644))

	g := NewGenerator(fs, workRoot)
	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "Foo",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "foo.tmpl", Target: "{{COMPONENT_NAME}}.txt", Label: "Foo"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)

	assert.True(t, res.AlreadyExisted)
	assert.False(t, res.Written)
	assert.Equal(t, "original", readFile(t, fs, existing))
}

func TestRenderOne_ExistingTargetSkipsTemplateRead(t *testing.T) {
	fs := newFS(t, nil)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(targetDir, "Foo.txt"), []byte("x"), 0o644))

	g := NewGenerator(fs, workRoot)
	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "Foo",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "missing.tmpl", Target: "Foo.txt", Label: "Foo"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)
	assert.True(t, res.AlreadyExisted)
	assert.NoError(t, res.Err)
}

func TestRenderOne_InvalidName(t *testing.T) {
	fs := newFS(t, map[string]string{"a.tmpl": "x"})
	g := NewGenerator(fs, workRoot)

	_, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "My-Component",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "a.tmpl", Target: "{{COMPONENT_NAME}}.txt", Label: "A"},
		TemplateDir: templateDir,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	entries, err := afero.ReadDir(fs, targetDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderOne_MissingTemplateIsPerFileError(t *testing.T) {
	fs := newFS(t, nil)
	g := NewGenerator(fs, workRoot)

	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "Foo",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "gone.tmpl", Target: "Foo.txt", Label: "Foo"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.False(t, res.AlreadyExisted)
	assert.Error(t, res.Err)
}

func TestRenderOne_OutsideWorkspace(t *testing.T) {
	fs := newFS(t, map[string]string{"a.tmpl": "x"})
	g := NewGenerator(fs, workRoot)

	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "Foo",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "a.tmpl", Target: "../../etc/{{COMPONENT_NAME}}", Label: "A"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "outside the workspace")

	_, statErr := fs.Stat("/etc/Foo")
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderOne_CreatesIntermediateDirectories(t *testing.T) {
	fs := newFS(t, map[string]string{"a.tmpl": "x"})
	g := NewGenerator(fs, workRoot)

	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "date-picker",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "a.tmpl", Target: "{{PascalCaseComponentName}}/parts/{{snake_case_component_name}}.py", Label: "A"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)
	require.True(t, res.Written)
	assert.Equal(t, "DatePicker/parts/date_picker.py", res.RelPath)
}

func TestRenderOne_Replacements(t *testing.T) {
	fs := newFS(t, map[string]string{"a.tmpl": "// (c) __YEAR__ {{COMPONENT_NAME}}"})
	g := NewGenerator(fs, workRoot, WithReplacements(map[string]string{"__YEAR__": "2026"}))

	res, err := g.RenderOne(context.Background(), FileRequest{
		Name:        "Foo",
		TargetDir:   targetDir,
		Descriptor:  config.TemplateDescriptor{Source: "a.tmpl", Target: "Foo.ts", Label: "A"},
		TemplateDir: templateDir,
	})
	require.NoError(t, err)
	require.True(t, res.Written)
	assert.Equal(t, "// (c) 2026 Foo", readFile(t, fs, res.Path))
}

func groupDescriptors() []config.TemplateDescriptor {
	return []config.TemplateDescriptor{
		{Source: "component.tmpl", Target: "{{PascalCaseComponentName}}/{{PascalCaseComponentName}}.tsx", Label: "Component"},
		{Source: "index.tmpl", Target: "{{PascalCaseComponentName}}/index.ts", Label: "Index"},
		{Source: "style.tmpl", Target: "{{PascalCaseComponentName}}/{{kebab-case-component-name}}.css", Label: "Style"},
	}
}

func groupFS(t *testing.T) afero.Fs {
	return newFS(t, map[string]string{
		"component.tmpl": "export const {{PascalCaseComponentName}} = () => null;",
		"index.tmpl":     "export * from './{{PascalCaseComponentName}}';",
		"style.tmpl":     ".{{camelCaseComponentName}} {}",
	})
}

func TestRenderGroup(t *testing.T) {
	fs := groupFS(t)
	g := NewGenerator(fs, workRoot)

	result, err := g.RenderGroup(context.Background(), "dateRange", targetDir, groupDescriptors(), templateDir)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{
		"DateRange/DateRange.tsx",
		"DateRange/index.ts",
		"DateRange/date-range.css",
	}, result.Added)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Failed)
	assert.Equal(t, ".dateRange {}", readFile(t, fs, filepath.Join(targetDir, "DateRange", "date-range.css")))
}

func TestRenderGroup_Idempotent(t *testing.T) {
	fs := groupFS(t)
	g := NewGenerator(fs, workRoot)
	ctx := context.Background()

	first, err := g.RenderGroup(ctx, "Card", targetDir, groupDescriptors(), templateDir)
	require.NoError(t, err)
	require.Len(t, first.Added, 3)

	second, err := g.RenderGroup(ctx, "Card", targetDir, groupDescriptors(), templateDir)
	require.NoError(t, err)

	assert.False(t, second.Success)
	assert.Empty(t, second.Added)
	assert.Empty(t, second.Failed)

	skipped := append([]string(nil), second.Skipped...)
	added := append([]string(nil), first.Added...)
	sort.Strings(skipped)
	sort.Strings(added)
	assert.Equal(t, added, skipped)
	assert.Equal(t, 3, second.Counts().Skipped)
}

func TestRenderGroup_PartialWithFailures(t *testing.T) {
	fs := groupFS(t)
	require.NoError(t, fs.MkdirAll(filepath.Join(targetDir, "Card"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(targetDir, "Card", "index.ts"), []byte("keep"), 0o644))

	descs := append(groupDescriptors(), config.TemplateDescriptor{Source: "absent.tmpl", Target: "{{PascalCaseComponentName}}/extra.ts", Label: "Extra"})

	g := NewGenerator(fs, workRoot)
	result, err := g.RenderGroup(context.Background(), "Card", targetDir, descs, templateDir)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"Card/Card.tsx", "Card/card.css"}, result.Added)
	assert.Equal(t, []string{"Card/index.ts"}, result.Skipped)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "Card/extra.ts", result.Failed[0].Path)
	assert.Error(t, result.Failed[0].Err)
	assert.Equal(t, "keep", readFile(t, fs, filepath.Join(targetDir, "Card", "index.ts")))

	files := result.Files()
	assert.Equal(t, "added", files["Card/Card.tsx"])
	assert.Equal(t, "skipped", files["Card/index.ts"])
	assert.Equal(t, "failed", files["Card/extra.ts"])
}

func TestRenderGroup_DuplicateTargets(t *testing.T) {
	fs := groupFS(t)
	descs := []config.TemplateDescriptor{
		{Source: "component.tmpl", Target: "{{COMPONENT_NAME}}.ts", Label: "First"},
		{Source: "index.tmpl", Target: "{{PascalCaseComponentName}}.ts", Label: "Second"},
	}

	g := NewGenerator(fs, workRoot)
	result, err := g.RenderGroup(context.Background(), "Card", targetDir, descs, templateDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Card.ts"}, result.Added)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0].Err.Error(), `"First"`)
	assert.Equal(t, "export const Card = () => null;", readFile(t, fs, filepath.Join(targetDir, "Card.ts")))
}

func TestRenderGroup_InvalidNameTouchesNothing(t *testing.T) {
	fs := groupFS(t)
	g := NewGenerator(fs, workRoot)

	_, err := g.RenderGroup(context.Background(), "My-Component", targetDir, groupDescriptors(), templateDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	entries, err := afero.ReadDir(fs, targetDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderGroup_Cancelled(t *testing.T) {
	fs := groupFS(t)
	g := NewGenerator(fs, workRoot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.RenderGroup(ctx, "Card", targetDir, groupDescriptors(), templateDir)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Len(t, result.Failed, 3)
	for _, f := range result.Failed {
		assert.ErrorIs(t, f.Err, context.Canceled)
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/work", "/work"))
	assert.True(t, Within("/work", "/work/src/a.ts"))
	assert.True(t, Within("/work", "/work/..name/a.ts"))
	assert.False(t, Within("/work", "/workshop/a.ts"))
	assert.False(t, Within("/work", "/etc/passwd"))
}
