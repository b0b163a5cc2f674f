package manifest

import (
	"sort"

	"github.com/naoina/toml"
	"github.com/naoina/toml/ast"
)

// Go maps drop TOML table order, but the declaration order of enum members
// and message fields is meaningful to consumers that render or encode them.
// The order is recovered from the parsed syntax tree after decoding.
func (m *Manifest) captureDeclarationOrder(data []byte) {
	root, err := toml.Parse(data)
	if err != nil {
		return
	}
	for id, decl := range m.Enums {
		decl.MemberOrder = tableKeyOrder(root, "enums", id, "members")
		m.Enums[id] = decl
	}
	for id, decl := range m.Messages {
		decl.FieldOrder = tableKeyOrder(root, "messages", id, "fields")
		m.Messages[id] = decl
	}
}

// tableKeyOrder returns the keys of the table at the given path in source
// order, or nil when the table cannot be found.
func tableKeyOrder(root *ast.Table, path ...string) []string {
	table := root
	for _, name := range path {
		sub, ok := table.Fields[name].(*ast.Table)
		if !ok {
			return nil
		}
		table = sub
	}

	type keyPos struct {
		key string
		pos int
	}
	positions := make([]keyPos, 0, len(table.Fields))
	for key, field := range table.Fields {
		switch f := field.(type) {
		case *ast.KeyValue:
			positions = append(positions, keyPos{key, f.Value.Pos()})
		case *ast.Table:
			positions = append(positions, keyPos{key, f.Position.Begin})
		default:
			return nil
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].pos < positions[j].pos })

	keys := make([]string, 0, len(positions))
	for _, p := range positions {
		keys = append(keys, p.key)
	}
	return keys
}

// orderedKeys lists the map's keys following the recovered declaration order,
// with any stragglers appended in name order.
func orderedKeys[V any](order []string, m map[string]V) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, key := range order {
		if _, ok := m[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	rest := make([]string, 0, len(m)-len(keys))
	for key := range m {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
