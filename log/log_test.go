package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldzban/ambient/manifest"
	"github.com/aldzban/ambient/semantic"
)

func resolveTestPackage(t *testing.T) *semantic.Package {
	t.Helper()
	m, err := manifest.Parse([]byte(`
[package]
id = "laser_gun"

[components.damage]
type = "F32"

[components.fire_interval]
type = "Duration"

[concepts.gun]
[concepts.gun.components.required]
damage = {}

[messages.fire]
[messages.fire.fields]
holder = "EntityId"
`))
	require.NoError(t, err)
	pkg, err := semantic.New().AddPackage(m, nil)
	require.NoError(t, err)
	return pkg
}

func TestPackageLogsDeclarations(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Package(&logger, resolveTestPackage(t), zerolog.InfoLevel)

	out := buf.String()
	assert.Contains(t, out, `"package_id":"laser_gun"`)
	assert.Contains(t, out, `"total_components":2`)
	assert.Contains(t, out, `"component_path":"laser_gun::damage"`)
	assert.Contains(t, out, `"component_type":"Duration"`)
	assert.Contains(t, out, `"total_concepts":1`)
	assert.Contains(t, out, `"required_components":1`)
	assert.Contains(t, out, `"total_messages":1`)
	assert.Contains(t, out, `"laser_gun::fire"`)
}

func TestComponents(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Components(&logger, resolveTestPackage(t), zerolog.DebugLevel)
	assert.Contains(t, buf.String(), `"component_path":"laser_gun::fire_interval"`)
}

func TestCreatePackageLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	pkgLogger := CreatePackageLogger(&logger, "laser_gun")
	pkgLogger.Info().Msg("loaded")
	assert.Contains(t, buf.String(), `"package_id":"laser_gun"`)
}
