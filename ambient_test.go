package ambient

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldzban/ambient/registry"
)

const unitSchemaManifest = `
[package]
id = "unit_schema"

[components.health]
type = "F32"
default = 100.0
`

func newTestStore(t *testing.T) *registry.DeploymentStore {
	t.Helper()
	mr := miniredis.RunT(t)
	return registry.NewDeploymentStore(registry.Options{Addr: mr.Addr()}, "test")
}

func TestAppLoadsPackageGraph(t *testing.T) {
	files := map[string][]byte{
		registry.ManifestFilename: []byte(`
[package]
id = "game"

[dependencies]
units = { path = "deps/unit_schema" }

[components.score]
type = "U32"
default = 0
`),
	}
	files["deps/unit_schema/"+registry.ManifestFilename] = []byte(unitSchemaManifest)

	app, err := New(
		WithSource(registry.NewMemorySource("mem", files)),
		WithDeploymentStore(newTestStore(t)),
	)
	require.NoError(t, err)
	defer app.Stop()

	root, err := app.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "game", string(root.ID))
	assert.Same(t, root, app.Root())

	units, err := app.Semantic().Package("unit_schema")
	require.NoError(t, err)
	assert.Same(t, units, root.Dependencies["units"])

	assert.NotNil(t, app.Server())
}

func TestAppLoadsDeploymentPinnedDependencies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	deployed, err := store.Deploy(ctx, registry.NewMemorySource("unit-schema", map[string][]byte{
		registry.ManifestFilename: []byte(unitSchemaManifest),
	}))
	require.NoError(t, err)

	app, err := New(
		WithSource(registry.NewMemorySource("mem", map[string][]byte{
			registry.ManifestFilename: []byte(`
[package]
id = "game"

[dependencies]
units = { deployment = "` + deployed.ID + `" }
`),
		})),
		WithDeploymentStore(store),
	)
	require.NoError(t, err)
	defer app.Stop()

	root, err := app.Load(ctx)
	require.NoError(t, err)
	units := root.Dependencies["units"]
	require.NotNil(t, units)
	assert.Equal(t, "unit_schema", string(units.ID))
}

func TestAppStartStop(t *testing.T) {
	t.Setenv("AMBIENT_PORT", "0")

	app, err := New(
		WithSource(registry.NewMemorySource("mem", map[string][]byte{
			registry.ManifestFilename: []byte(unitSchemaManifest),
		})),
		WithDeploymentStore(newTestStore(t)),
	)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Start() }()

	time.Sleep(100 * time.Millisecond)
	app.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestAppLoadFailsOnBrokenManifest(t *testing.T) {
	app, err := New(
		WithSource(registry.NewMemorySource("mem", map[string][]byte{
			registry.ManifestFilename: []byte(`
[package]
id = "Game"
`),
		})),
		WithDeploymentStore(newTestStore(t)),
	)
	require.NoError(t, err)
	defer app.Stop()

	_, err = app.Load(context.Background())
	assert.Error(t, err)
	assert.Nil(t, app.Root())
}
