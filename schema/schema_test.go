package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldzban/ambient/manifest"
	"github.com/aldzban/ambient/semantic"
)

func resolve(t *testing.T, source string) *semantic.Package {
	t.Helper()
	m, err := manifest.Parse([]byte(source))
	require.NoError(t, err)
	pkg, err := semantic.New().AddPackage(m, nil)
	require.NoError(t, err)
	return pkg
}

const baseManifest = `
[package]
id = "laser_gun"
version = "0.3.0"

[components.damage]
type = "F32"
default = 40.0

[messages.fire]
[messages.fire.fields]
holder = "EntityId"
`

func TestSerializePackageSchema(t *testing.T) {
	bz, err := SerializePackageSchema()
	require.NoError(t, err)

	schema := string(bz)
	assert.True(t, strings.HasPrefix(schema, "{"))
	assert.Contains(t, schema, "components")
	assert.Contains(t, schema, "concepts")
	assert.Contains(t, schema, "messages")
	assert.Contains(t, schema, "enums")
}

func TestDiffEqualPackages(t *testing.T) {
	before := resolve(t, baseManifest)
	after := resolve(t, baseManifest)

	patch, err := Diff(before, after)
	require.NoError(t, err)
	assert.Empty(t, patch)

	equal, err := Equal(before, after)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestDiffChangedPackage(t *testing.T) {
	before := resolve(t, baseManifest)
	after := resolve(t, `
[package]
id = "laser_gun"
version = "0.4.0"

[components.damage]
type = "F32"
default = 55.0

[components.fire_interval]
type = "Duration"
default = "250ms"

[messages.fire]
[messages.fire.fields]
holder = "EntityId"
`)

	patch, err := Diff(before, after)
	require.NoError(t, err)
	require.NotEmpty(t, patch)

	paths := make([]string, 0, len(patch))
	for _, op := range patch {
		paths = append(paths, op.Path)
	}
	assert.Contains(t, paths, "/version")
	assert.Contains(t, paths, "/components/0/default")

	equal, err := Equal(before, after)
	require.NoError(t, err)
	assert.False(t, equal)
}
