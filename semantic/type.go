package semantic

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/aldzban/ambient/manifest"
)

// TypeKind discriminates the inner shape of a resolved type.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindEnum
	KindVec
	KindOption
)

// Type is a resolved value type: a primitive, a declared enum, or a
// Vec/Option container around one of those.
type Type struct {
	Kind      TypeKind
	Primitive PrimitiveType // set for KindPrimitive
	Enum      *Enum         // set for KindEnum
	Element   *Type         // set for KindVec and KindOption

	path string
}

// Path returns the fully qualified path of the type, e.g. "F32",
// "unit_schema::UnitKind" or "Vec<F32>".
func (t *Type) Path() string { return t.path }

// Enum is a closed set of named members.
type Enum struct {
	Name        manifest.PascalIdentifier
	Description string
	Members     []EnumMember
}

type EnumMember struct {
	Name        manifest.PascalIdentifier
	Description string
}

func (e *Enum) HasMember(name string) bool {
	for _, member := range e.Members {
		if member.Name.String() == name {
			return true
		}
	}
	return false
}

// PrimitiveType enumerates the value types the engine knows how to store and
// replicate.
type PrimitiveType int

const (
	PrimitiveEmpty PrimitiveType = iota
	PrimitiveBool
	PrimitiveEntityID
	PrimitiveF32
	PrimitiveF64
	PrimitiveMat4
	PrimitiveQuat
	PrimitiveString
	PrimitiveU8
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveVec2
	PrimitiveVec3
	PrimitiveVec4
	PrimitiveUvec2
	PrimitiveUvec3
	PrimitiveUvec4
	PrimitiveIvec2
	PrimitiveIvec3
	PrimitiveIvec4
	PrimitiveDuration
)

var primitiveNames = map[PrimitiveType]string{
	PrimitiveEmpty:    "Empty",
	PrimitiveBool:     "Bool",
	PrimitiveEntityID: "EntityId",
	PrimitiveF32:      "F32",
	PrimitiveF64:      "F64",
	PrimitiveMat4:     "Mat4",
	PrimitiveQuat:     "Quat",
	PrimitiveString:   "String",
	PrimitiveU8:       "U8",
	PrimitiveU16:      "U16",
	PrimitiveU32:      "U32",
	PrimitiveU64:      "U64",
	PrimitiveI8:       "I8",
	PrimitiveI16:      "I16",
	PrimitiveI32:      "I32",
	PrimitiveI64:      "I64",
	PrimitiveVec2:     "Vec2",
	PrimitiveVec3:     "Vec3",
	PrimitiveVec4:     "Vec4",
	PrimitiveUvec2:    "Uvec2",
	PrimitiveUvec3:    "Uvec3",
	PrimitiveUvec4:    "Uvec4",
	PrimitiveIvec2:    "Ivec2",
	PrimitiveIvec3:    "Ivec3",
	PrimitiveIvec4:    "Ivec4",
	PrimitiveDuration: "Duration",
}

func (p PrimitiveType) String() string { return primitiveNames[p] }

// vectorArity returns the element count of fixed-size vector primitives, or 0.
func (p PrimitiveType) vectorArity() int {
	switch p {
	case PrimitiveVec2, PrimitiveUvec2, PrimitiveIvec2:
		return 2
	case PrimitiveVec3, PrimitiveUvec3, PrimitiveIvec3:
		return 3
	case PrimitiveVec4, PrimitiveUvec4, PrimitiveIvec4, PrimitiveQuat:
		return 4
	case PrimitiveMat4:
		return 16
	}
	return 0
}

// CheckValue reports whether a decoded TOML value is assignable to the type.
// Used for component defaults and concept suggested values.
func (t *Type) CheckValue(v any) error {
	switch t.Kind {
	case KindVec:
		list, ok := v.([]any)
		if !ok {
			return eris.Errorf("%s requires a list value", t.Path())
		}
		for _, element := range list {
			if err := t.Element.CheckValue(element); err != nil {
				return err
			}
		}
		return nil
	case KindOption:
		if v == nil {
			return nil
		}
		return t.Element.CheckValue(v)
	case KindEnum:
		member, ok := v.(string)
		if !ok {
			return eris.Errorf("enum %s requires a member name", t.Path())
		}
		if !t.Enum.HasMember(member) {
			return eris.Errorf("%q is not a member of enum %s", member, t.Path())
		}
		return nil
	}
	return t.Primitive.checkValue(v)
}

func (p PrimitiveType) checkValue(v any) error {
	if arity := p.vectorArity(); arity > 0 {
		list, ok := v.([]any)
		if !ok || len(list) != arity {
			return eris.Errorf("%s requires a list of %d numbers", p, arity)
		}
		for _, element := range list {
			if !isNumeric(element) {
				return eris.Errorf("%s requires numeric elements", p)
			}
		}
		return nil
	}

	switch p {
	case PrimitiveEmpty:
		if v == nil {
			return nil
		}
		if table, ok := v.(map[string]any); ok && len(table) == 0 {
			return nil
		}
		return eris.New("Empty takes no value")
	case PrimitiveBool:
		if _, ok := v.(bool); !ok {
			return eris.New("Bool requires a boolean value")
		}
	case PrimitiveString, PrimitiveEntityID:
		if _, ok := v.(string); !ok {
			return eris.Errorf("%s requires a string value", p)
		}
	case PrimitiveF32, PrimitiveF64:
		if !isNumeric(v) {
			return eris.Errorf("%s requires a numeric value", p)
		}
	case PrimitiveU8, PrimitiveU16, PrimitiveU32, PrimitiveU64,
		PrimitiveI8, PrimitiveI16, PrimitiveI32, PrimitiveI64:
		n, ok := v.(int64)
		if !ok {
			return eris.Errorf("%s requires an integer value", p)
		}
		if err := checkIntegerRange(p, n); err != nil {
			return err
		}
	case PrimitiveDuration:
		s, ok := v.(string)
		if !ok {
			return eris.New("Duration requires a string value such as \"250ms\"")
		}
		if _, err := time.ParseDuration(s); err != nil {
			return eris.Wrapf(err, "invalid Duration %q", s)
		}
	}
	return nil
}

func checkIntegerRange(p PrimitiveType, n int64) error {
	var lo, hi int64
	switch p {
	case PrimitiveU8:
		lo, hi = 0, 1<<8-1
	case PrimitiveU16:
		lo, hi = 0, 1<<16-1
	case PrimitiveU32:
		lo, hi = 0, 1<<32-1
	case PrimitiveU64:
		if n < 0 {
			return eris.Errorf("U64 cannot hold %d", n)
		}
		return nil
	case PrimitiveI8:
		lo, hi = -1<<7, 1<<7-1
	case PrimitiveI16:
		lo, hi = -1<<15, 1<<15-1
	case PrimitiveI32:
		lo, hi = -1<<31, 1<<31-1
	default:
		return nil
	}
	if n < lo || n > hi {
		return eris.Errorf("%s cannot hold %d", p, n)
	}
	return nil
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}
