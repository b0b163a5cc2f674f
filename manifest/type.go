package manifest

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"
)

// ContainerKind is the container wrapper of a declared value type.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerVec
	ContainerOption
)

func (c ContainerKind) String() string {
	switch c {
	case ContainerNone:
		return ""
	case ContainerVec:
		return "Vec"
	case ContainerOption:
		return "Option"
	}
	panic("unsupported container kind")
}

// TypeExpr is the declared value type of a component or message field: either
// a bare type name (primitive or enum, possibly scoped through a dependency
// alias) or a Vec/Option container, nested at most one level
// ("Option<Vec<F32>>").
type TypeExpr struct {
	Container ContainerKind
	Element   *TypeExpr // set iff Container != ContainerNone

	// Scope and Name are set iff Container == ContainerNone.
	Scope []string
	Name  PascalIdentifier
}

func (t TypeExpr) String() string {
	if t.Container != ContainerNone {
		return t.Container.String() + "<" + t.Element.String() + ">"
	}
	if len(t.Scope) == 0 {
		return t.Name.String()
	}
	return strings.Join(t.Scope, pathSeparator) + pathSeparator + t.Name.String()
}

// typeExprAST is the participle grammar for type expressions, e.g. "F32",
// "Vec<F32>", "Option<Vec<F32>>" or "unit_schema::UnitKind".
type typeExprAST struct {
	Segments []string     `parser:"@Ident (':' ':' @Ident)*"`
	Arg      *typeExprAST `parser:"('<' @@ '>')?"`
}

var typeExprParser = participle.MustBuild[typeExprAST]()

// ParseTypeExpr parses the string form of a type expression.
func ParseTypeExpr(s string) (TypeExpr, error) {
	ast, err := typeExprParser.ParseString("", s)
	if err != nil {
		return TypeExpr{}, eris.Wrapf(err, "invalid type expression %q", s)
	}
	expr, err := ast.toTypeExpr()
	if err != nil {
		return TypeExpr{}, eris.Wrapf(err, "invalid type expression %q", s)
	}
	return expr, nil
}

func (ast *typeExprAST) toTypeExpr() (TypeExpr, error) {
	head := ast.Segments[len(ast.Segments)-1]
	scope := ast.Segments[:len(ast.Segments)-1]

	if ast.Arg != nil {
		var container ContainerKind
		switch head {
		case "Vec":
			container = ContainerVec
		case "Option":
			container = ContainerOption
		default:
			return TypeExpr{}, eris.Errorf("%q is not a container type", head)
		}
		if len(scope) > 0 {
			return TypeExpr{}, eris.New("container types cannot be scoped")
		}
		element, err := ast.Arg.toTypeExpr()
		if err != nil {
			return TypeExpr{}, err
		}
		// one level of nesting: the element may be a container of a plain type
		if element.Container != ContainerNone && element.Element.Container != ContainerNone {
			return TypeExpr{}, eris.New("containers nest at most one level")
		}
		return TypeExpr{Container: container, Element: &element}, nil
	}

	name, err := NewPascalIdentifier(head)
	if err != nil {
		return TypeExpr{}, err
	}
	for _, segment := range scope {
		if !snakeCaseRegexp.MatchString(segment) {
			return TypeExpr{}, eris.Errorf("invalid scope segment %q", segment)
		}
	}
	return TypeExpr{Scope: scope, Name: name}, nil
}

// DecodeTypeExpr accepts either spelling of a declared type: the string form
// handled by ParseTypeExpr, or the inline-table form
// { type = "Vec", element_type = "F32" }.
func DecodeTypeExpr(v any) (TypeExpr, error) {
	switch value := v.(type) {
	case string:
		return ParseTypeExpr(value)
	case map[string]any:
		return decodeTypeTable(value)
	case nil:
		return TypeExpr{}, eris.New("missing type")
	default:
		return TypeExpr{}, eris.Errorf("type must be a string or a table, got %T", v)
	}
}

func decodeTypeTable(table map[string]any) (TypeExpr, error) {
	rawType, ok := table["type"].(string)
	if !ok {
		return TypeExpr{}, eris.New("type table requires a string `type` key")
	}

	rawElement, hasElement := table["element_type"]
	if !hasElement {
		if len(table) != 1 {
			return TypeExpr{}, eris.New("type table without element_type must only hold `type`")
		}
		return ParseTypeExpr(rawType)
	}

	elementStr, ok := rawElement.(string)
	if !ok {
		return TypeExpr{}, eris.Errorf("element_type must be a string, got %T", rawElement)
	}
	element, err := ParseTypeExpr(elementStr)
	if err != nil {
		return TypeExpr{}, err
	}
	if element.Container != ContainerNone && element.Element.Container != ContainerNone {
		return TypeExpr{}, eris.New("containers nest at most one level")
	}

	switch rawType {
	case "Vec":
		return TypeExpr{Container: ContainerVec, Element: &element}, nil
	case "Option":
		return TypeExpr{Container: ContainerOption, Element: &element}, nil
	default:
		return TypeExpr{}, eris.Errorf("%q is not a container type", rawType)
	}
}
