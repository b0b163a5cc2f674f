package manifest

import (
	"os"
	"regexp"

	"github.com/naoina/toml"
	"github.com/rotisserie/eris"
)

// Manifest is one content package's declaration file, decoded but not yet
// resolved against its dependencies. Resolution lives in the semantic package.
type Manifest struct {
	Package      PackageDecl               `toml:"package"`
	Dependencies map[string]DependencyDecl `toml:"dependencies"`
	Components   map[string]ComponentDecl  `toml:"components"`
	Concepts     map[string]ConceptDecl    `toml:"concepts"`
	Messages     map[string]MessageDecl    `toml:"messages"`
	Enums        map[string]EnumDecl       `toml:"enums"`
}

// PackageDecl is the `[package]` metadata table.
type PackageDecl struct {
	ID            string      `toml:"id"`
	Name          string      `toml:"name"`
	Description   string      `toml:"description"`
	Version       string      `toml:"version"`
	Content       ContentDecl `toml:"content"`
	EngineVersion string      `toml:"ambient_version"`
}

// ContentDecl flags what kind of content the package carries.
type ContentDecl struct {
	Type       string `toml:"type"` // "Playable", "Asset" or "Tooling"
	Models     bool   `toml:"models"`
	Animations bool   `toml:"animations"`
	Textures   bool   `toml:"textures"`
	Audio      bool   `toml:"audio"`
	Code       bool   `toml:"code"`
}

// DependencyDecl pins another content package, by relative path, by opaque
// deployment identifier, or both. When both are present the path wins, which
// lets a local checkout override a pinned deployment during development.
type DependencyDecl struct {
	Path       string `toml:"path"`
	Deployment string `toml:"deployment"`
	Enabled    *bool  `toml:"enabled"`
}

// IsEnabled reports whether the dependency participates in resolution.
// Dependencies are enabled unless explicitly switched off.
func (d DependencyDecl) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// ComponentDecl declares a typed, named data slot attachable to an entity.
type ComponentDecl struct {
	Type        any      `toml:"type"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Attributes  []string `toml:"attributes"`
	Default     any      `toml:"default"`
}

// ConceptDecl declares a named bundle of required and optional components.
type ConceptDecl struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Extends     []string          `toml:"extends"`
	Components  ConceptComponents `toml:"components"`
}

type ConceptComponents struct {
	Required map[string]ConceptComponentRef `toml:"required"`
	Optional map[string]ConceptComponentRef `toml:"optional"`
}

// ConceptComponentRef annotates one component slot of a concept. Suggested
// carries a value an editor may prefill; it is not a default.
type ConceptComponentRef struct {
	Suggested   any    `toml:"suggested"`
	Description string `toml:"description"`
}

// MessageDecl declares a typed event payload sent between server-side and
// client-side logic. Fields map identifiers to type expressions.
type MessageDecl struct {
	Description string         `toml:"description"`
	Fields      map[string]any `toml:"fields"`

	// FieldOrder is recovered from the source text during Parse.
	FieldOrder []string `toml:"-"`
}

// OrderedFields returns the field names in declaration order.
func (m MessageDecl) OrderedFields() []string {
	return orderedKeys(m.FieldOrder, m.Fields)
}

// EnumDecl declares a closed set of PascalCase members.
type EnumDecl struct {
	Description string            `toml:"description"`
	Members     map[string]string `toml:"members"`

	// MemberOrder is recovered from the source text during Parse.
	MemberOrder []string `toml:"-"`
}

// OrderedMembers returns the member names in declaration order.
func (e EnumDecl) OrderedMembers() []string {
	return orderedKeys(e.MemberOrder, e.Members)
}

var versionRegexp = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// Parse decodes and validates a manifest. The returned manifest satisfies
// every package-local invariant; cross-package references are only checked
// once the manifest is added to a semantic.
func Parse(data []byte) (*Manifest, error) {
	m := new(Manifest)
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, eris.Wrap(err, "failed to decode manifest")
	}
	m.captureDeclarationOrder(data)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseFile reads and parses the manifest at the given path.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read manifest %q", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid manifest %q", path)
	}
	return m, nil
}

// Validate checks the package-local invariants: well-formed identifiers,
// parseable type expressions and item paths, and a sane package table.
func (m *Manifest) Validate() error {
	if err := m.validatePackage(); err != nil {
		return err
	}

	for alias, dep := range m.Dependencies {
		if _, err := NewIdentifier(alias); err != nil {
			return eris.Wrap(err, "invalid dependency alias")
		}
		if dep.Path == "" && dep.Deployment == "" {
			return eris.Errorf("dependency %q needs a path or a deployment id", alias)
		}
	}

	for id, component := range m.Components {
		if _, err := NewIdentifier(id); err != nil {
			return eris.Wrap(err, "invalid component id")
		}
		if _, err := DecodeTypeExpr(component.Type); err != nil {
			return eris.Wrapf(err, "component %q", id)
		}
		for _, attribute := range component.Attributes {
			if _, err := NewPascalIdentifier(attribute); err != nil {
				return eris.Wrapf(err, "component %q attribute", id)
			}
		}
	}

	for id, concept := range m.Concepts {
		if _, err := NewIdentifier(id); err != nil {
			return eris.Wrap(err, "invalid concept id")
		}
		if err := concept.validate(id); err != nil {
			return err
		}
	}

	for id, message := range m.Messages {
		if _, err := NewIdentifier(id); err != nil {
			return eris.Wrap(err, "invalid message id")
		}
		for field, fieldType := range message.Fields {
			if _, err := NewIdentifier(field); err != nil {
				return eris.Wrapf(err, "message %q field", id)
			}
			if _, err := DecodeTypeExpr(fieldType); err != nil {
				return eris.Wrapf(err, "message %q field %q", id, field)
			}
		}
	}

	for id, enum := range m.Enums {
		if _, err := NewPascalIdentifier(id); err != nil {
			return eris.Wrap(err, "invalid enum id")
		}
		if len(enum.Members) == 0 {
			return eris.Errorf("enum %q has no members", id)
		}
		for member := range enum.Members {
			if _, err := NewPascalIdentifier(member); err != nil {
				return eris.Wrapf(err, "enum %q member", id)
			}
		}
	}

	return nil
}

func (m *Manifest) validatePackage() error {
	if _, err := NewIdentifier(m.Package.ID); err != nil {
		return eris.Wrap(err, "invalid package id")
	}
	if m.Package.Version != "" && !versionRegexp.MatchString(m.Package.Version) {
		return eris.Errorf("package version %q is not a semantic version", m.Package.Version)
	}
	switch m.Package.Content.Type {
	case "", "Playable", "Asset", "Tooling":
	default:
		return eris.Errorf("unknown content type %q", m.Package.Content.Type)
	}
	return nil
}

func (c *ConceptDecl) validate(id string) error {
	for _, extend := range c.Extends {
		if _, err := ParseItemPath(extend); err != nil {
			return eris.Wrapf(err, "concept %q extends", id)
		}
	}
	for path := range c.Components.Required {
		if _, err := ParseItemPath(path); err != nil {
			return eris.Wrapf(err, "concept %q required component", id)
		}
	}
	for path := range c.Components.Optional {
		if _, err := ParseItemPath(path); err != nil {
			return eris.Wrapf(err, "concept %q optional component", id)
		}
		if _, required := c.Components.Required[path]; required {
			return eris.Errorf("concept %q lists %q as both required and optional", id, path)
		}
	}
	return nil
}
