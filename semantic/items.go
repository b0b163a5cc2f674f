package semantic

import (
	"github.com/aldzban/ambient/manifest"
)

// Attribute marks a property of a component the engine acts on, such as
// whether the component is replicated or visible in the debugger.
type Attribute struct {
	Name        manifest.PascalIdentifier
	Description string
}

// Component is a resolved component declaration.
type Component struct {
	ID          manifest.Identifier
	Name        string
	Description string
	Type        *Type
	Attributes  []*Attribute
	Default     any

	path string
}

// Path returns the fully qualified path, e.g. "unit_controller::running".
func (c *Component) Path() string { return c.path }

// HasAttribute reports whether the component carries the named attribute.
func (c *Component) HasAttribute(name string) bool {
	for _, attribute := range c.Attributes {
		if attribute.Name.String() == name {
			return true
		}
	}
	return false
}

// ConceptEntry is one component slot of a resolved concept.
type ConceptEntry struct {
	Component   *Component
	Suggested   any
	Description string
}

// Concept is a resolved concept declaration. Required and Optional hold only
// the concept's own entries; FlattenedRequired and FlattenedOptional fold in
// every extended concept, base entries first, with local entries overriding
// base entries for the same component.
type Concept struct {
	ID          manifest.Identifier
	Name        string
	Description string
	Extends     []*Concept

	Required []ConceptEntry
	Optional []ConceptEntry

	FlattenedRequired []ConceptEntry
	FlattenedOptional []ConceptEntry

	path string
}

func (c *Concept) Path() string { return c.path }

// Satisfies reports whether an entity holding the given components satisfies
// the concept, i.e. every flattened required component is present.
func (c *Concept) Satisfies(held map[string]bool) bool {
	for _, entry := range c.FlattenedRequired {
		if !held[entry.Component.Path()] {
			return false
		}
	}
	return true
}

// MessageField is one typed field of a message payload.
type MessageField struct {
	Name manifest.Identifier
	Type *Type
}

// Message is a resolved event payload schema.
type Message struct {
	ID          manifest.Identifier
	Description string
	Fields      []MessageField

	path string
}

func (m *Message) Path() string { return m.path }
