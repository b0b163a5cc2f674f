package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primitive(t *testing.T, name string) *Type {
	t.Helper()
	typ, ok := newStandardDefinitions().Primitive(name)
	require.True(t, ok, name)
	return typ
}

func TestCheckValuePrimitives(t *testing.T) {
	tests := []struct {
		typeName string
		value    any
		ok       bool
	}{
		{"Bool", true, true},
		{"Bool", "true", false},
		{"F32", 1.5, true},
		{"F32", int64(3), true},
		{"F32", "fast", false},
		{"String", "hello", true},
		{"String", int64(1), false},
		{"EntityId", "q5mxl6b6zlkz4zuuk5nlfgzxglgi7vyu", true},
		{"U8", int64(255), true},
		{"U8", int64(256), false},
		{"U8", int64(-1), false},
		{"I16", int64(-32768), true},
		{"I16", int64(-32769), false},
		{"U64", int64(-1), false},
		{"I64", int64(-1), true},
		{"U32", 1.0, false},
		{"Duration", "250ms", true},
		{"Duration", "1h30m", true},
		{"Duration", "soon", false},
		{"Duration", int64(250), false},
		{"Vec3", []any{1.0, 2.0, 3.0}, true},
		{"Vec3", []any{1.0, 2.0}, false},
		{"Vec3", []any{1.0, 2.0, "three"}, false},
		{"Quat", []any{0.0, 0.0, 0.0, 1.0}, true},
		{"Mat4", []any{
			1.0, 0.0, 0.0, 0.0,
			0.0, 1.0, 0.0, 0.0,
			0.0, 0.0, 1.0, 0.0,
			0.0, 0.0, 0.0, 1.0,
		}, true},
		{"Empty", nil, true},
		{"Empty", map[string]any{}, true},
		{"Empty", true, false},
	}
	for _, test := range tests {
		err := primitive(t, test.typeName).CheckValue(test.value)
		if test.ok {
			assert.NoError(t, err, "%s <- %v", test.typeName, test.value)
		} else {
			assert.Error(t, err, "%s <- %v", test.typeName, test.value)
		}
	}
}

func TestCheckValueContainers(t *testing.T) {
	f32 := primitive(t, "F32")

	vec := &Type{Kind: KindVec, Element: f32, path: "Vec<F32>"}
	assert.NoError(t, vec.CheckValue([]any{1.0, 2.0, 3.0}))
	assert.NoError(t, vec.CheckValue([]any{}))
	assert.Error(t, vec.CheckValue(1.0))
	assert.Error(t, vec.CheckValue([]any{1.0, "two"}))

	option := &Type{Kind: KindOption, Element: f32, path: "Option<F32>"}
	assert.NoError(t, option.CheckValue(nil))
	assert.NoError(t, option.CheckValue(1.0))
	assert.Error(t, option.CheckValue("one"))
}

func TestCheckValueEnum(t *testing.T) {
	kind := &Type{
		Kind: KindEnum,
		Enum: &Enum{
			Name: "UnitKind",
			Members: []EnumMember{
				{Name: "Infantry"},
				{Name: "Vehicle"},
			},
		},
		path: "unit_schema::UnitKind",
	}
	assert.NoError(t, kind.CheckValue("Infantry"))
	assert.Error(t, kind.CheckValue("Boat"))
	assert.Error(t, kind.CheckValue(int64(0)))
}

func TestStandardDefinitions(t *testing.T) {
	defs := newStandardDefinitions()

	for _, name := range []string{
		"Empty", "Bool", "EntityId", "F32", "F64", "Mat4", "Quat", "String",
		"U8", "U16", "U32", "U64", "I8", "I16", "I32", "I64",
		"Vec2", "Vec3", "Vec4", "Uvec2", "Uvec3", "Uvec4",
		"Ivec2", "Ivec3", "Ivec4", "Duration",
	} {
		typ, ok := defs.Primitive(name)
		require.True(t, ok, name)
		assert.Equal(t, name, typ.Path())
		assert.Equal(t, KindPrimitive, typ.Kind)
	}
	_, ok := defs.Primitive("Float")
	assert.False(t, ok)

	for _, name := range []string{"Debuggable", "Networked", "Resource", "MaybeResource", "Store"} {
		attribute, ok := defs.Attribute(name)
		require.True(t, ok, name)
		assert.Equal(t, name, attribute.Name.String())
	}
	_, ok = defs.Attribute("Replicated")
	assert.False(t, ok)
}
