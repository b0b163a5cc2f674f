package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentifier(t *testing.T) {
	valid := []string{"health", "max_health", "cell_side_length", "x2", "a"}
	for _, s := range valid {
		id, err := NewIdentifier(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, id.String())
	}

	invalid := []string{"", "Health", "maxHealth", "_health", "health_", "max__health", "2x", "max-health", "core::health"}
	for _, s := range invalid {
		_, err := NewIdentifier(s)
		assert.Error(t, err, s)
	}
}

func TestNewPascalIdentifier(t *testing.T) {
	valid := []string{"Networked", "UnitKind", "F32", "Vec2", "A"}
	for _, s := range valid {
		id, err := NewPascalIdentifier(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, id.String())
	}

	invalid := []string{"", "networked", "unit_kind", "Unit Kind", "Unit-Kind", "3D"}
	for _, s := range invalid {
		_, err := NewPascalIdentifier(s)
		assert.Error(t, err, s)
	}
}

func TestParseItemPath(t *testing.T) {
	path, err := ParseItemPath("health")
	require.NoError(t, err)
	assert.True(t, path.IsLocal())
	assert.Equal(t, Identifier("health"), path.Item())
	assert.Empty(t, path.Scope())

	path, err = ParseItemPath("unit_schema::is_enemy")
	require.NoError(t, err)
	assert.False(t, path.IsLocal())
	assert.Equal(t, Identifier("is_enemy"), path.Item())
	assert.Equal(t, []string{"unit_schema"}, path.Scope())
	assert.Equal(t, "unit_schema::is_enemy", path.String())

	path, err = ParseItemPath("game::unit_schema::health")
	require.NoError(t, err)
	assert.Equal(t, []string{"game", "unit_schema"}, path.Scope())

	for _, s := range []string{"", "::", "health::", "::health", "Unit::health", "unit::Health"} {
		_, err := ParseItemPath(s)
		assert.Error(t, err, s)
	}
}
