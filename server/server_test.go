package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldzban/ambient/codec"
	"github.com/aldzban/ambient/manifest"
	"github.com/aldzban/ambient/semantic"
	"github.com/aldzban/ambient/server/handler"
)

const laserGunManifest = `
[package]
id = "laser_gun"
name = "Laser Gun"
version = "0.3.0"

[components.damage]
type = "F32"
default = 40.0

[components.fire_interval]
type = "Duration"
default = "250ms"

[concepts.gun]
[concepts.gun.components.required]
damage = {}
fire_interval = {}

[messages.fire]
[messages.fire.fields]
holder = "EntityId"
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	sem := semantic.New()
	m, err := manifest.Parse([]byte(laserGunManifest))
	require.NoError(t, err)
	_, err = sem.AddPackage(m, nil)
	require.NoError(t, err)

	srv, err := New(sem, "4040")
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, target string) *http.Response {
	t.Helper()
	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	bz, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	value, err := codec.Decode[T](bz)
	require.NoError(t, err)
	return value
}

func TestNewRequiresSemantic(t *testing.T) {
	_, err := New(nil, "4040")
	assert.Error(t, err)
}

func TestGetHealth(t *testing.T) {
	resp := get(t, newTestServer(t), "/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody[handler.GetHealthResponse](t, resp)
	assert.True(t, body.IsHealthy)
}

func TestListPackages(t *testing.T) {
	resp := get(t, newTestServer(t), "/packages/")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody[handler.ListPackagesResponse](t, resp)
	require.Len(t, body.Packages, 1)
	summary := body.Packages[0]
	assert.Equal(t, "laser_gun", summary.ID)
	assert.Equal(t, "0.3.0", summary.Version)
	assert.Equal(t, 2, summary.Components)
	assert.Equal(t, 1, summary.Concepts)
	assert.Equal(t, 1, summary.Messages)
}

func TestGetPackage(t *testing.T) {
	resp := get(t, newTestServer(t), "/packages/laser_gun")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	doc := decodeBody[semantic.PackageDoc](t, resp)
	assert.Equal(t, "laser_gun", doc.ID)
	require.Len(t, doc.Components, 2)
	assert.Equal(t, "laser_gun::damage", doc.Components[0].Path)
}

func TestGetPackageNotFound(t *testing.T) {
	resp := get(t, newTestServer(t), "/packages/rocket_launcher")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeBody[handler.ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "rocket_launcher")
}

func TestGetPackageSchema(t *testing.T) {
	resp := get(t, newTestServer(t), "/packages/schema")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	bz, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(bz), "components")
}

func TestPostDiff(t *testing.T) {
	srv := newTestServer(t)

	body, err := codec.Encode(handler.PostDiffRequest{Before: "laser_gun", After: "laser_gun"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/diff", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	diff := decodeBody[handler.PostDiffResponse](t, resp)
	assert.True(t, diff.Equal)
	assert.Empty(t, diff.Patch)
}

func TestPostDiffUnknownPackage(t *testing.T) {
	srv := newTestServer(t)

	body, err := codec.Encode(handler.PostDiffRequest{Before: "laser_gun", After: "ghost"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/diff", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
