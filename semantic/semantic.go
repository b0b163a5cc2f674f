package semantic

import (
	"github.com/rotisserie/eris"

	"github.com/aldzban/ambient/manifest"
)

var (
	ErrPackageNotFound = eris.New("package not found")
	ErrItemNotFound    = eris.New("item not found")
)

// Semantic holds every loaded package and the standard definitions they
// resolve against. Packages must be added dependency-first; AddPackage
// resolves the new package immediately against what is already loaded.
type Semantic struct {
	defs     *StandardDefinitions
	packages map[string]*Package
	order    []string
}

// Package is one fully resolved content package: a scope of components,
// concepts, messages and enums, wired to its resolved dependencies.
type Package struct {
	ID            manifest.Identifier
	Name          string
	Description   string
	Version       string
	EngineVersion string
	Content       manifest.ContentDecl

	Dependencies map[manifest.Identifier]*Package

	Components map[manifest.Identifier]*Component
	Concepts   map[manifest.Identifier]*Concept
	Messages   map[manifest.Identifier]*Message
	Enums      map[manifest.PascalIdentifier]*Type
}

func New() *Semantic {
	return &Semantic{
		defs:     newStandardDefinitions(),
		packages: make(map[string]*Package),
	}
}

// Definitions exposes the standard definitions, mainly for tests and tooling.
func (s *Semantic) Definitions() *StandardDefinitions { return s.defs }

// Package returns a loaded package by id.
func (s *Semantic) Package(id string) (*Package, error) {
	p, ok := s.packages[id]
	if !ok {
		return nil, eris.Wrapf(ErrPackageNotFound, "%q", id)
	}
	return p, nil
}

// Packages returns every loaded package in the order they were added, which
// is always dependency-first.
func (s *Semantic) Packages() []*Package {
	out := make([]*Package, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.packages[id])
	}
	return out
}

// AddPackage resolves a validated manifest against the packages already
// loaded and registers the result. deps maps each dependency alias of the
// manifest to the id of the already-added package that satisfies it.
func (s *Semantic) AddPackage(m *manifest.Manifest, deps map[string]string) (*Package, error) {
	id := m.Package.ID
	if _, exists := s.packages[id]; exists {
		return nil, eris.Errorf("package %q is already loaded", id)
	}

	p := &Package{
		ID:            manifest.Identifier(id),
		Name:          m.Package.Name,
		Description:   m.Package.Description,
		Version:       m.Package.Version,
		EngineVersion: m.Package.EngineVersion,
		Content:       m.Package.Content,
		Dependencies:  make(map[manifest.Identifier]*Package),
		Components:    make(map[manifest.Identifier]*Component),
		Concepts:      make(map[manifest.Identifier]*Concept),
		Messages:      make(map[manifest.Identifier]*Message),
		Enums:         make(map[manifest.PascalIdentifier]*Type),
	}

	for alias, dep := range m.Dependencies {
		if !dep.IsEnabled() {
			continue
		}
		depID, ok := deps[alias]
		if !ok {
			return nil, eris.Errorf("package %q: no loaded package supplied for dependency %q", id, alias)
		}
		depPkg, err := s.Package(depID)
		if err != nil {
			return nil, eris.Wrapf(err, "package %q dependency %q", id, alias)
		}
		p.Dependencies[manifest.Identifier(alias)] = depPkg
	}

	if err := (&resolver{defs: s.defs, pkg: p}).resolve(m); err != nil {
		return nil, eris.Wrapf(err, "failed to resolve package %q", id)
	}

	s.packages[id] = p
	s.order = append(s.order, id)
	return p, nil
}

// dependency walks a chain of dependency aliases starting from the package.
func (p *Package) dependency(scope []string) (*Package, error) {
	current := p
	for _, alias := range scope {
		next, ok := current.Dependencies[manifest.Identifier(alias)]
		if !ok {
			return nil, eris.Errorf("package %q has no dependency %q", current.ID, alias)
		}
		current = next
	}
	return current, nil
}

// Component resolves an item path to a component, walking dependency aliases
// for scoped paths.
func (p *Package) Component(path manifest.ItemPath) (*Component, error) {
	target, err := p.dependency(path.Scope())
	if err != nil {
		return nil, err
	}
	c, ok := target.Components[path.Item()]
	if !ok {
		return nil, eris.Wrapf(ErrItemNotFound, "component %q in package %q", path, target.ID)
	}
	return c, nil
}

// Concept resolves an item path to a concept.
func (p *Package) Concept(path manifest.ItemPath) (*Concept, error) {
	target, err := p.dependency(path.Scope())
	if err != nil {
		return nil, err
	}
	c, ok := target.Concepts[path.Item()]
	if !ok {
		return nil, eris.Wrapf(ErrItemNotFound, "concept %q in package %q", path, target.ID)
	}
	return c, nil
}

// Message resolves an item path to a message.
func (p *Package) Message(path manifest.ItemPath) (*Message, error) {
	target, err := p.dependency(path.Scope())
	if err != nil {
		return nil, err
	}
	m, ok := target.Messages[path.Item()]
	if !ok {
		return nil, eris.Wrapf(ErrItemNotFound, "message %q in package %q", path, target.ID)
	}
	return m, nil
}
