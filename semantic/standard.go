package semantic

import (
	"github.com/aldzban/ambient/manifest"
)

// Standard attribute names. Every attribute a component may carry must be one
// of these; packages cannot declare their own.
const (
	AttributeDebuggable    = "Debuggable"
	AttributeNetworked     = "Networked"
	AttributeResource      = "Resource"
	AttributeMaybeResource = "MaybeResource"
	AttributeStore         = "Store"
)

// StandardDefinitions is the implicit root scope every package resolves
// against: the primitive types and the attribute set.
type StandardDefinitions struct {
	primitives map[string]*Type
	attributes map[string]*Attribute
}

func newStandardDefinitions() *StandardDefinitions {
	defs := &StandardDefinitions{
		primitives: make(map[string]*Type),
		attributes: make(map[string]*Attribute),
	}

	for primitive, name := range primitiveNames {
		defs.primitives[name] = &Type{
			Kind:      KindPrimitive,
			Primitive: primitive,
			path:      name,
		}
	}

	for name, description := range map[string]string{
		AttributeDebuggable:    "This component is visible to the debugger.",
		AttributeNetworked:     "This component is replicated from server to clients.",
		AttributeResource:      "This component is only attached to the resource entity.",
		AttributeMaybeResource: "This component may be attached to the resource entity.",
		AttributeStore:         "This component is persisted between sessions.",
	} {
		defs.attributes[name] = &Attribute{
			Name:        manifest.PascalIdentifier(name),
			Description: description,
		}
	}

	return defs
}

// Primitive looks up a primitive type by name.
func (d *StandardDefinitions) Primitive(name string) (*Type, bool) {
	t, ok := d.primitives[name]
	return t, ok
}

// Attribute looks up a standard attribute by name.
func (d *StandardDefinitions) Attribute(name string) (*Attribute, bool) {
	a, ok := d.attributes[name]
	return a, ok
}
