package manifest

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	snakeCaseRegexp  = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	pascalCaseRegexp = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

// Identifier is a snake_case name for a component, concept, message, enum or
// message field. Identifiers are unique within the section of the package that
// declares them.
type Identifier string

func NewIdentifier(s string) (Identifier, error) {
	if !snakeCaseRegexp.MatchString(s) {
		return "", eris.Errorf("%q is not a valid snake_case identifier", s)
	}
	return Identifier(s), nil
}

func (i Identifier) String() string { return string(i) }

// PascalIdentifier is a PascalCase name, used for enum members and component
// attributes.
type PascalIdentifier string

func NewPascalIdentifier(s string) (PascalIdentifier, error) {
	if !pascalCaseRegexp.MatchString(s) {
		return "", eris.Errorf("%q is not a valid PascalCase identifier", s)
	}
	return PascalIdentifier(s), nil
}

func (i PascalIdentifier) String() string { return string(i) }

// ItemPath is a `::`-separated path to an item. A bare path names an item in
// the current package; a path whose first segment is a dependency alias names
// an item in that dependency.
type ItemPath []string

const pathSeparator = "::"

func ParseItemPath(s string) (ItemPath, error) {
	if s == "" {
		return nil, eris.New("item path must not be empty")
	}
	segments := strings.Split(s, pathSeparator)
	path := make(ItemPath, 0, len(segments))
	for _, segment := range segments {
		if !snakeCaseRegexp.MatchString(segment) {
			return nil, eris.Errorf("item path %q contains invalid segment %q", s, segment)
		}
		path = append(path, segment)
	}
	return path, nil
}

func (p ItemPath) String() string { return strings.Join(p, pathSeparator) }

// Item returns the final segment, the identifier of the item itself.
func (p ItemPath) Item() Identifier { return Identifier(p[len(p)-1]) }

// Scope returns every segment before the item identifier.
func (p ItemPath) Scope() []string { return p[:len(p)-1] }

// IsLocal reports whether the path names an item with no scope qualifier.
func (p ItemPath) IsLocal() bool { return len(p) == 1 }
