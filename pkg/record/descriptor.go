package record

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strings"
)

// TypeRef is a syntactic type reference. Expr is the parsed expression and
// Text its canonical Go spelling; no alias or import resolution happens.
type TypeRef struct {
	Expr ast.Expr `json:"-" yaml:"-"`
	Text string   `json:"text" yaml:"text"`
}

// TypeRefFromExpr wraps an already parsed expression.
func TypeRefFromExpr(expr ast.Expr) TypeRef {
	if expr == nil {
		return TypeRef{}
	}
	return TypeRef{Expr: expr, Text: types.ExprString(expr)}
}

// ParseTypeRef parses a Go type expression such as "option.Option[uint8]".
func ParseTypeRef(text string) (TypeRef, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return TypeRef{}, fmt.Errorf("%w: empty type", ErrInvalidType)
	}
	expr, err := parser.ParseExpr(trimmed)
	if err != nil {
		return TypeRef{}, fmt.Errorf("%w: %q: %v", ErrInvalidType, trimmed, err)
	}
	return TypeRefFromExpr(expr), nil
}

// MustParseTypeRef panics when text is not a valid type expression. Useful
// for fixtures and tests.
func MustParseTypeRef(text string) TypeRef {
	ref, err := ParseTypeRef(text)
	if err != nil {
		panic(err)
	}
	return ref
}

// IsZero reports whether the reference is unset.
func (t TypeRef) IsZero() bool {
	return t.Expr == nil && t.Text == ""
}

func (t TypeRef) String() string {
	return t.Text
}

// MarshalYAML renders the reference as its Go spelling.
func (t TypeRef) MarshalYAML() (any, error) {
	return t.Text, nil
}

// Qualifiers returns the package names referenced by selector expressions in
// the type, in first-seen order.
func (t TypeRef) Qualifiers() []string {
	if t.Expr == nil {
		return nil
	}
	var out []string
	seen := map[string]struct{}{}
	ast.Inspect(t.Expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok {
			if _, dup := seen[ident.Name]; !dup {
				seen[ident.Name] = struct{}{}
				out = append(out, ident.Name)
			}
		}
		return false
	})
	return out
}

// Import mirrors one import spec visible to a record's field types.
type Import struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Path string `json:"path" yaml:"path"`
}

// ParseImport accepts `path` or `name path`, matching Go import spec syntax
// without quotes.
func ParseImport(spec string) (Import, error) {
	fields := strings.Fields(spec)
	switch len(fields) {
	case 1:
		return Import{Path: strings.Trim(fields[0], `"`)}, nil
	case 2:
		return Import{Name: fields[0], Path: strings.Trim(fields[1], `"`)}, nil
	default:
		return Import{}, fmt.Errorf("record: invalid import spec %q", spec)
	}
}

// LocalName returns the identifier the import is referenced by: the explicit
// name when given, otherwise a guess from the last path element.
func (i Import) LocalName() string {
	if i.Name != "" {
		return i.Name
	}
	return GuessPackageName(i.Path)
}

// GuessPackageName derives the conventional package name from an import
// path: "gopkg.in/yaml.v3" is yaml, "example.com/mod/v2" is mod,
// "github.com/google/go-cmp" is cmp.
func GuessPackageName(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	name := parts[len(parts)-1]
	if isMajorVersion(name) && len(parts) > 1 {
		name = parts[len(parts)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "-"); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, ".", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TypeParam is one type parameter of a generic record.
type TypeParam struct {
	Name       string  `json:"name" yaml:"name"`
	Constraint TypeRef `json:"constraint" yaml:"constraint"`
}

// RawField is a record field as declared, before classification.
type RawField struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeRef `json:"type" yaml:"type"`
	Tag  string  `json:"tag,omitempty" yaml:"tag,omitempty"`
	Doc  string  `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// Descriptor is the introspected shape of one record declaration. Fields
// keep declaration order; names are unique.
type Descriptor struct {
	Name       string      `json:"name" yaml:"name"`
	Package    string      `json:"package" yaml:"package"`
	TypeParams []TypeParam `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`
	Fields     []RawField  `json:"fields" yaml:"fields"`
	Imports    []Import    `json:"imports,omitempty" yaml:"imports,omitempty"`
	Doc        string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	// Declare asks the emitter to also write the record type, for sources
	// that describe a record without declaring it in Go.
	Declare  bool   `json:"declare,omitempty" yaml:"declare,omitempty"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"`
}

// TypeParamList renders "[K comparable, V any]", or "" for non-generic
// records.
func (d Descriptor) TypeParamList() string {
	if len(d.TypeParams) == 0 {
		return ""
	}
	parts := make([]string, len(d.TypeParams))
	for i, param := range d.TypeParams {
		parts[i] = param.Name + " " + param.Constraint.Text
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TypeArgList renders "[K, V]", or "" for non-generic records.
func (d Descriptor) TypeArgList() string {
	if len(d.TypeParams) == 0 {
		return ""
	}
	names := make([]string, len(d.TypeParams))
	for i, param := range d.TypeParams {
		names[i] = param.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// FieldDescriptor is a classified field. InnerType equals DeclaredType unless
// the field is optional, in which case it is the unwrapped argument.
type FieldDescriptor struct {
	Name         string  `json:"name" yaml:"name"`
	DeclaredType TypeRef `json:"declaredType" yaml:"declaredType"`
	Optional     bool    `json:"optional" yaml:"optional"`
	InnerType    TypeRef `json:"innerType" yaml:"innerType"`
	Tag          string  `json:"tag,omitempty" yaml:"tag,omitempty"`
	Doc          string  `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// BuilderField is one slot of the synthesized builder.
type BuilderField struct {
	Name      string  `json:"name" yaml:"name"`
	Storage   string  `json:"storage" yaml:"storage"`
	Setter    string  `json:"setter" yaml:"setter"`
	Optional  bool    `json:"optional" yaml:"optional"`
	InnerType TypeRef `json:"innerType" yaml:"innerType"`
	SlotType  TypeRef `json:"slotType" yaml:"slotType"`
}

// BuilderDescriptor is the synthesized builder shape. It is write-once and
// carries no reference back to the Descriptor it came from.
type BuilderDescriptor struct {
	Name        string         `json:"name" yaml:"name"`
	Constructor string         `json:"constructor" yaml:"constructor"`
	RecordName  string         `json:"recordName" yaml:"recordName"`
	TypeParams  string         `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`
	TypeArgs    string         `json:"typeArgs,omitempty" yaml:"typeArgs,omitempty"`
	Fields      []BuilderField `json:"fields" yaml:"fields"`
}

// Mandatory returns the builder fields that must be set before Build.
func (b BuilderDescriptor) Mandatory() []BuilderField {
	var out []BuilderField
	for _, field := range b.Fields {
		if !field.Optional {
			out = append(out, field)
		}
	}
	return out
}
