package semantic

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aldzban/ambient/manifest"
)

// resolver turns one validated manifest into a resolved Package. The
// package's dependencies are fully resolved before the resolver runs, so
// every scoped lookup lands on finished items.
type resolver struct {
	defs *StandardDefinitions
	pkg  *Package

	// flattening state for the local concept graph
	conceptState map[*Concept]flattenState
}

type flattenState int

const (
	flattenPending flattenState = iota
	flattenInProgress
	flattenDone
)

func (r *resolver) resolve(m *manifest.Manifest) error {
	if err := r.checkDuplicates(m); err != nil {
		return err
	}
	if err := r.resolveEnums(m); err != nil {
		return err
	}
	if err := r.resolveComponents(m); err != nil {
		return err
	}
	if err := r.resolveMessages(m); err != nil {
		return err
	}
	return r.resolveConcepts(m)
}

// checkDuplicates enforces the one-namespace rule for snake_case items:
// a component, concept and message cannot share an identifier.
func (r *resolver) checkDuplicates(m *manifest.Manifest) error {
	seen := make(map[string]string, len(m.Components)+len(m.Concepts)+len(m.Messages))
	record := func(id, kind string) error {
		if prior, ok := seen[id]; ok {
			return eris.Errorf("%s %q collides with a %s of the same name", kind, id, prior)
		}
		seen[id] = kind
		return nil
	}
	for id := range m.Components {
		if err := record(id, "component"); err != nil {
			return err
		}
	}
	for id := range m.Concepts {
		if err := record(id, "concept"); err != nil {
			return err
		}
	}
	for id := range m.Messages {
		if err := record(id, "message"); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveEnums(m *manifest.Manifest) error {
	for _, id := range sortedKeys(m.Enums) {
		decl := m.Enums[id]
		enum := &Enum{
			Name:        manifest.PascalIdentifier(id),
			Description: decl.Description,
			Members:     make([]EnumMember, 0, len(decl.Members)),
		}
		for _, member := range decl.OrderedMembers() {
			enum.Members = append(enum.Members, EnumMember{
				Name:        manifest.PascalIdentifier(member),
				Description: decl.Members[member],
			})
		}
		r.pkg.Enums[enum.Name] = &Type{
			Kind: KindEnum,
			Enum: enum,
			path: r.qualify(id),
		}
	}
	return nil
}

func (r *resolver) resolveComponents(m *manifest.Manifest) error {
	for _, id := range sortedKeys(m.Components) {
		decl := m.Components[id]

		expr, err := manifest.DecodeTypeExpr(decl.Type)
		if err != nil {
			return eris.Wrapf(err, "component %q", id)
		}
		componentType, err := r.resolveType(expr)
		if err != nil {
			return eris.Wrapf(err, "component %q", id)
		}

		attributes := make([]*Attribute, 0, len(decl.Attributes))
		for _, name := range decl.Attributes {
			attribute, ok := r.defs.Attribute(name)
			if !ok {
				return eris.Errorf("component %q: unknown attribute %q", id, name)
			}
			attributes = append(attributes, attribute)
		}

		if decl.Default != nil {
			if err := componentType.CheckValue(decl.Default); err != nil {
				return eris.Wrapf(err, "component %q default", id)
			}
		}

		r.pkg.Components[manifest.Identifier(id)] = &Component{
			ID:          manifest.Identifier(id),
			Name:        decl.Name,
			Description: decl.Description,
			Type:        componentType,
			Attributes:  attributes,
			Default:     decl.Default,
			path:        r.qualify(id),
		}
	}
	return nil
}

func (r *resolver) resolveMessages(m *manifest.Manifest) error {
	for _, id := range sortedKeys(m.Messages) {
		decl := m.Messages[id]
		message := &Message{
			ID:          manifest.Identifier(id),
			Description: decl.Description,
			Fields:      make([]MessageField, 0, len(decl.Fields)),
			path:        r.qualify(id),
		}
		for _, field := range decl.OrderedFields() {
			expr, err := manifest.DecodeTypeExpr(decl.Fields[field])
			if err != nil {
				return eris.Wrapf(err, "message %q field %q", id, field)
			}
			fieldType, err := r.resolveType(expr)
			if err != nil {
				return eris.Wrapf(err, "message %q field %q", id, field)
			}
			message.Fields = append(message.Fields, MessageField{
				Name: manifest.Identifier(field),
				Type: fieldType,
			})
		}
		r.pkg.Messages[message.ID] = message
	}
	return nil
}

func (r *resolver) resolveConcepts(m *manifest.Manifest) error {
	// Shells first so that local extends can point forward.
	for _, id := range sortedKeys(m.Concepts) {
		decl := m.Concepts[id]
		r.pkg.Concepts[manifest.Identifier(id)] = &Concept{
			ID:          manifest.Identifier(id),
			Name:        decl.Name,
			Description: decl.Description,
			path:        r.qualify(id),
		}
	}

	for _, id := range sortedKeys(m.Concepts) {
		decl := m.Concepts[id]
		concept := r.pkg.Concepts[manifest.Identifier(id)]

		for _, extend := range decl.Extends {
			path, err := manifest.ParseItemPath(extend)
			if err != nil {
				return eris.Wrapf(err, "concept %q", id)
			}
			base, err := r.pkg.Concept(path)
			if err != nil {
				return eris.Wrapf(err, "concept %q extends", id)
			}
			concept.Extends = append(concept.Extends, base)
		}

		var err error
		if concept.Required, err = r.resolveConceptEntries(decl.Components.Required); err != nil {
			return eris.Wrapf(err, "concept %q required", id)
		}
		if concept.Optional, err = r.resolveConceptEntries(decl.Components.Optional); err != nil {
			return eris.Wrapf(err, "concept %q optional", id)
		}
	}

	r.conceptState = make(map[*Concept]flattenState, len(r.pkg.Concepts))
	for _, id := range sortedKeys(m.Concepts) {
		if err := r.flatten(r.pkg.Concepts[manifest.Identifier(id)], nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveConceptEntries(refs map[string]manifest.ConceptComponentRef) ([]ConceptEntry, error) {
	entries := make([]ConceptEntry, 0, len(refs))
	for _, rawPath := range sortedKeys(refs) {
		ref := refs[rawPath]
		path, err := manifest.ParseItemPath(rawPath)
		if err != nil {
			return nil, err
		}
		component, err := r.pkg.Component(path)
		if err != nil {
			return nil, err
		}
		if ref.Suggested != nil {
			if err := component.Type.CheckValue(ref.Suggested); err != nil {
				return nil, eris.Wrapf(err, "suggested value for %q", rawPath)
			}
		}
		entries = append(entries, ConceptEntry{
			Component:   component,
			Suggested:   ref.Suggested,
			Description: ref.Description,
		})
	}
	return entries, nil
}

// flatten folds every extended concept's entries into the concept, base
// entries first, local entries overriding base entries per component.
// Concepts from dependencies are already flattened and are taken as-is.
func (r *resolver) flatten(c *Concept, stack []string) error {
	if _, local := r.pkg.Concepts[c.ID]; !local || r.pkg.Concepts[c.ID] != c {
		return nil
	}
	switch r.conceptState[c] {
	case flattenDone:
		return nil
	case flattenInProgress:
		cycle := append(stack, c.Path())
		return eris.Errorf("concept extends cycle: %s", strings.Join(cycle, " -> "))
	}
	r.conceptState[c] = flattenInProgress

	var required, optional []ConceptEntry
	for _, base := range c.Extends {
		if err := r.flatten(base, append(stack, c.Path())); err != nil {
			return err
		}
		required = mergeEntries(required, base.FlattenedRequired)
		optional = mergeEntries(optional, base.FlattenedOptional)
	}
	required = mergeEntries(required, c.Required)
	optional = mergeEntries(optional, c.Optional)

	// A component required anywhere in the chain is required, full stop.
	isRequired := make(map[string]bool, len(required))
	for _, entry := range required {
		isRequired[entry.Component.Path()] = true
	}
	pruned := optional[:0]
	for _, entry := range optional {
		if !isRequired[entry.Component.Path()] {
			pruned = append(pruned, entry)
		}
	}

	c.FlattenedRequired = required
	c.FlattenedOptional = pruned
	r.conceptState[c] = flattenDone
	return nil
}

// mergeEntries appends overlay onto base, keeping the base position of any
// component both lists mention while taking the overlay's value for it.
func mergeEntries(base, overlay []ConceptEntry) []ConceptEntry {
	out := make([]ConceptEntry, len(base), len(base)+len(overlay))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, entry := range out {
		index[entry.Component.Path()] = i
	}
	for _, entry := range overlay {
		if i, ok := index[entry.Component.Path()]; ok {
			out[i] = entry
			continue
		}
		index[entry.Component.Path()] = len(out)
		out = append(out, entry)
	}
	return out
}

func (r *resolver) resolveType(expr manifest.TypeExpr) (*Type, error) {
	switch expr.Container {
	case manifest.ContainerVec, manifest.ContainerOption:
		element, err := r.resolveType(*expr.Element)
		if err != nil {
			return nil, err
		}
		kind := KindVec
		if expr.Container == manifest.ContainerOption {
			kind = KindOption
		}
		return &Type{Kind: kind, Element: element, path: expr.String()}, nil
	}

	name := expr.Name.String()
	if len(expr.Scope) == 0 {
		if primitive, ok := r.defs.Primitive(name); ok {
			return primitive, nil
		}
		if enum, ok := r.pkg.Enums[expr.Name]; ok {
			return enum, nil
		}
		return nil, eris.Errorf("%q is not a primitive or a declared enum", name)
	}

	target, err := r.pkg.dependency(expr.Scope)
	if err != nil {
		return nil, err
	}
	enum, ok := target.Enums[expr.Name]
	if !ok {
		return nil, eris.Errorf("package %q declares no enum %q", target.ID, name)
	}
	return enum, nil
}

func (r *resolver) qualify(id string) string {
	return string(r.pkg.ID) + "::" + id
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
