package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLayer(t *testing.T) {
	cat, err := NewCatalog(BuiltinLayer())
	require.NoError(t, err)

	assert.Equal(t, []string{"basic", "static"}, cat.Names())

	basic, err := cat.Get("basic")
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, basic.Source)
	assert.NotEmpty(t, basic.Description())
	assert.Equal(t, "MIT", basic.Manifest.Vars["license"])

	_, err = basic.FS.Open("package.json")
	require.NoError(t, err)
	_, err = basic.FS.Open("gitignore")
	require.NoError(t, err, "builtin templates ship the ignore file without its dot")
}

func TestNewCatalog_LaterLayerShadows(t *testing.T) {
	local := fstest.MapFS{
		"basic/README.md":   {Data: []byte("local")},
		"api/main.txt":      {Data: []byte("x")},
		"api.yaml":          {Data: []byte("description: API server\ndelimiters: ['<%=', '%>']\n")},
		"not-a-template.md": {Data: []byte("ignored")},
	}

	cat, err := NewCatalog(BuiltinLayer(), Layer{Source: SourceLocal, FS: local, Base: "/tmp/t"})
	require.NoError(t, err)

	assert.Equal(t, []string{"api", "basic", "static"}, cat.Names())

	basic, err := cat.Get("basic")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, basic.Source)
	assert.Equal(t, SourceBuiltin, basic.Overrides)
	assert.Equal(t, "/tmp/t/basic", basic.Path)

	api, err := cat.Get("api")
	require.NoError(t, err)
	left, right := api.Delimiters()
	assert.Equal(t, "<%=", left)
	assert.Equal(t, "%>", right)
}

func TestNewCatalog_SkipsHiddenDirs(t *testing.T) {
	local := fstest.MapFS{
		".git/config":  {Data: []byte("[core]\n")},
		".cache/x":     {Data: []byte("x")},
		"api/main.txt": {Data: []byte("x")},
	}

	cat, err := NewCatalog(Layer{Source: SourceLocal, FS: local, Base: "/tmp/t"})
	require.NoError(t, err)

	assert.Equal(t, []string{"api"}, cat.Names())
	_, err = cat.Get(".git")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_GetUnknown(t *testing.T) {
	cat, err := NewCatalog(BuiltinLayer())
	require.NoError(t, err)

	_, err = cat.Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewCatalog_BadManifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{name: "invalid yaml", manifest: "description: [unclosed"},
		{name: "one delimiter", manifest: "delimiters: ['<%']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := Layer{Source: SourceLocal, FS: fstest.MapFS{
				"x/file.txt": {Data: []byte("x")},
				"x.yaml":     {Data: []byte(tt.manifest)},
			}}
			_, err := NewCatalog(layer)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing dir yields built-ins", func(t *testing.T) {
		cat, err := Load(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Equal(t, []string{"basic", "static"}, cat.Names())
	})

	t.Run("local dir is scanned", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "cli", "cmd"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cli", "cmd", "main.txt"), []byte("x"), 0o644))

		cat, err := Load(dir)
		require.NoError(t, err)
		assert.Contains(t, cat.Names(), "cli")
	})

	t.Run("file instead of dir", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		_, err := Load(file)
		assert.Error(t, err)
	})
}
