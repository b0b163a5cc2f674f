package semantic

// PackageDoc is the stable, serializable form of a resolved package. Item
// lists are sorted by identifier and member/field lists keep declaration
// order, so two loads of the same content produce byte-identical JSON, which
// the diff tooling depends on.
type PackageDoc struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Description   string            `json:"description,omitempty"`
	Version       string            `json:"version,omitempty"`
	EngineVersion string            `json:"engine_version,omitempty"`
	ContentType   string            `json:"content_type,omitempty"`
	Dependencies  map[string]string `json:"dependencies,omitempty"`

	Components []ComponentDoc `json:"components,omitempty"`
	Concepts   []ConceptDoc   `json:"concepts,omitempty"`
	Messages   []MessageDoc   `json:"messages,omitempty"`
	Enums      []EnumDoc      `json:"enums,omitempty"`
}

type ComponentDoc struct {
	ID          string   `json:"id"`
	Path        string   `json:"path"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Attributes  []string `json:"attributes,omitempty"`
	Default     any      `json:"default,omitempty"`
}

type ConceptDoc struct {
	ID          string            `json:"id"`
	Path        string            `json:"path"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Extends     []string          `json:"extends,omitempty"`
	Required    []ConceptEntryDoc `json:"required,omitempty"`
	Optional    []ConceptEntryDoc `json:"optional,omitempty"`
}

type ConceptEntryDoc struct {
	Component   string `json:"component"`
	Suggested   any    `json:"suggested,omitempty"`
	Description string `json:"description,omitempty"`
}

type MessageDoc struct {
	ID          string            `json:"id"`
	Path        string            `json:"path"`
	Description string            `json:"description,omitempty"`
	Fields      []MessageFieldDoc `json:"fields,omitempty"`
}

type MessageFieldDoc struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type EnumDoc struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Members     []EnumMemberDoc `json:"members"`
}

type EnumMemberDoc struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Document renders the package with every concept flattened.
func (p *Package) Document() PackageDoc {
	doc := PackageDoc{
		ID:            string(p.ID),
		Name:          p.Name,
		Description:   p.Description,
		Version:       p.Version,
		EngineVersion: p.EngineVersion,
		ContentType:   p.Content.Type,
	}

	if len(p.Dependencies) > 0 {
		doc.Dependencies = make(map[string]string, len(p.Dependencies))
		for alias, dep := range p.Dependencies {
			doc.Dependencies[string(alias)] = string(dep.ID)
		}
	}

	for _, id := range sortedKeys(p.Components) {
		component := p.Components[id]
		attributes := make([]string, 0, len(component.Attributes))
		for _, attribute := range component.Attributes {
			attributes = append(attributes, attribute.Name.String())
		}
		doc.Components = append(doc.Components, ComponentDoc{
			ID:          component.ID.String(),
			Path:        component.Path(),
			Name:        component.Name,
			Description: component.Description,
			Type:        component.Type.Path(),
			Attributes:  attributes,
			Default:     component.Default,
		})
	}

	for _, id := range sortedKeys(p.Concepts) {
		concept := p.Concepts[id]
		extends := make([]string, 0, len(concept.Extends))
		for _, base := range concept.Extends {
			extends = append(extends, base.Path())
		}
		doc.Concepts = append(doc.Concepts, ConceptDoc{
			ID:          concept.ID.String(),
			Path:        concept.Path(),
			Name:        concept.Name,
			Description: concept.Description,
			Extends:     extends,
			Required:    entryDocs(concept.FlattenedRequired),
			Optional:    entryDocs(concept.FlattenedOptional),
		})
	}

	for _, id := range sortedKeys(p.Messages) {
		message := p.Messages[id]
		fields := make([]MessageFieldDoc, 0, len(message.Fields))
		for _, field := range message.Fields {
			fields = append(fields, MessageFieldDoc{
				Name: field.Name.String(),
				Type: field.Type.Path(),
			})
		}
		doc.Messages = append(doc.Messages, MessageDoc{
			ID:          message.ID.String(),
			Path:        message.Path(),
			Description: message.Description,
			Fields:      fields,
		})
	}

	for _, name := range sortedKeys(p.Enums) {
		enum := p.Enums[name].Enum
		members := make([]EnumMemberDoc, 0, len(enum.Members))
		for _, member := range enum.Members {
			members = append(members, EnumMemberDoc{
				Name:        member.Name.String(),
				Description: member.Description,
			})
		}
		doc.Enums = append(doc.Enums, EnumDoc{
			Name:        enum.Name.String(),
			Description: enum.Description,
			Members:     members,
		})
	}

	return doc
}

func entryDocs(entries []ConceptEntry) []ConceptEntryDoc {
	docs := make([]ConceptEntryDoc, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, ConceptEntryDoc{
			Component:   entry.Component.Path(),
			Suggested:   entry.Suggested,
			Description: entry.Description,
		})
	}
	return docs
}
