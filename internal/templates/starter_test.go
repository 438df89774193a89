package templates

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compforge/cli/internal/config"
)

func TestStarterFiles(t *testing.T) {
	files, err := StarterFiles()
	require.NoError(t, err)

	assert.Contains(t, files, config.FileName)
	assert.Contains(t, files, "templates/Component.tsx.tmpl")
	assert.NotContains(t, files, "compforge.json")
}

func TestWriteStarter(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/work/app"
	require.NoError(t, fs.MkdirAll(dir, 0o755))

	g := NewGenerator(fs, "/work")
	result, err := g.WriteStarter(context.Background(), dir)
	require.NoError(t, err)

	files, err := StarterFiles()
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Added, len(files))
	assert.Empty(t, result.Failed)

	// The starter configuration is valid as written.
	resolved, err := config.NewResolver(fs).Resolve(filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Equal(t, dir, resolved.Dir)
	assert.Len(t, resolved.Groups(), 2)

	// Generating from it works end to end.
	gen, err := g.RenderGroup(context.Background(), "Avatar", dir, resolved.DefaultTemplates(), resolved.TemplateDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"Avatar/Avatar.tsx", "Avatar/index.ts"}, gen.Added)
}

func TestWriteStarter_KeepsExistingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/work/app"
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, config.FileName), []byte(`{"mine": true}`), 0o644))

	result, err := NewGenerator(fs, "").WriteStarter(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{config.FileName}, result.Skipped)
	b, err := afero.ReadFile(fs, filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, `{"mine": true}`, string(b))
}
