package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "game"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "unit_schema"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game", ManifestFilename), []byte("root"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit_schema", ManifestFilename), []byte("dep"), 0o644))

	src := NewDiskSource(filepath.Join(dir, "game"))
	data, err := src.Get(ManifestFilename)
	require.NoError(t, err)
	assert.Equal(t, "root", string(data))

	_, err = src.Get("missing.toml")
	assert.Error(t, err)

	// relative paths may climb out of the package directory
	dep := src.Sub("../unit_schema")
	data, err = dep.Get(ManifestFilename)
	require.NoError(t, err)
	assert.Equal(t, "dep", string(data))

	assert.NotEqual(t, src.Key(), dep.Key())
	assert.Equal(t, src.Key(), NewDiskSource(filepath.Join(dir, "game")).Key())
}

func TestMemorySource(t *testing.T) {
	files := map[string][]byte{}
	files[ManifestFilename] = []byte("root")
	files["deps/unit_schema/"+ManifestFilename] = []byte("dep")
	src := NewMemorySource("mem", files)

	data, err := src.Get(ManifestFilename)
	require.NoError(t, err)
	assert.Equal(t, "root", string(data))

	dep := src.Sub("deps/unit_schema")
	data, err = dep.Get(ManifestFilename)
	require.NoError(t, err)
	assert.Equal(t, "dep", string(data))

	_, err = dep.Get("missing.toml")
	assert.Error(t, err)
	assert.NotEqual(t, src.Key(), dep.Key())
}
