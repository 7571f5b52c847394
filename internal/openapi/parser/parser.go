// Package parser maps OpenAPI component schemas onto record descriptors
// using kin-openapi. Describe is shared with the JSON Schema parser, which
// hands over its $defs in the same shape.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-buildergen/internal/naming"
	pkgopenapi "github.com/goliatone/go-buildergen/pkg/openapi"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// ComponentsPrefix is the reference prefix of OpenAPI component schemas.
const ComponentsPrefix = "#/components/schemas/"

// SchemaSet is a group of named schemas addressed by one reference prefix.
// Path lists the mapping keys leading to the group in the raw document and
// recovers the order and positions the decoded maps lose. A set with an
// empty Path holds a single schema located at the document root, which Ref
// addresses as a whole.
type SchemaSet struct {
	Schemas   openapi3.Schemas
	RefPrefix string
	Path      []string
}

func (s SchemaSet) root() bool {
	return len(s.Path) == 0
}

// Parser implements record.Introspector for OpenAPI documents.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ record.Introspector = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Records returns one declared record per object schema, in document order.
// Non-object schemas are skipped unless requested by name.
func (p *Parser) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	var schemas openapi3.Schemas
	if spec.Components != nil {
		schemas = spec.Components.Schemas
	}
	return p.Describe(doc, sel, SchemaSet{
		Schemas:   schemas,
		RefPrefix: ComponentsPrefix,
		Path:      []string{"components", "schemas"},
	})
}

// Describe turns every object schema of the sets into a declared record.
// Records keep set order, then document order within a set. Explicitly
// selected names are matched against both the schema and the record name.
func (p *Parser) Describe(doc record.Document, sel record.Selection, sets ...SchemaSet) ([]record.Descriptor, error) {
	resolve, err := refResolver(sets)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %w", err)
	}

	var (
		out   []record.Descriptor
		found = map[string]bool{}
	)
	for _, set := range sets {
		lay, err := readLayout(doc.Raw(), set)
		if err != nil {
			return nil, fmt.Errorf("openapi parser: %w", err)
		}
		for _, name := range lay.schemaNames(set.Schemas) {
			ref := set.Schemas[name]
			recordName := naming.Camel(name)
			if sel.Explicit() && !sel.Wants(recordName) && !sel.Wants(name) {
				continue
			}
			found[name], found[recordName] = true, true

			position := doc.Location()
			if at, ok := lay.positions[name]; ok {
				position = fmt.Sprintf("%s:%s", doc.Location(), at)
			}

			if ref == nil || ref.Value == nil || !isObject(ref.Value) {
				if sel.Explicit() {
					return nil, &record.InputError{
						Position: position,
						Record:   recordName,
						Err:      record.ErrNotRecord,
						Detail:   "schema " + name + " is not an object",
					}
				}
				continue
			}

			desc, err := p.describe(name, ref.Value, lay.properties[name], resolve)
			if err != nil {
				return nil, &record.InputError{Position: position, Record: recordName, Err: record.ErrInvalidType, Detail: err.Error()}
			}
			desc.Position = position
			if err := desc.Validate(); err != nil {
				return nil, err
			}
			out = append(out, desc)
		}
	}

	for _, name := range sel.TypeNames {
		if !found[name] {
			return nil, &record.InputError{Position: doc.Location(), Record: name, Err: record.ErrTypeNotFound}
		}
	}
	return out, nil
}

func (p *Parser) describe(name string, schema *openapi3.Schema, order []string, resolve refFunc) (record.Descriptor, error) {
	desc := record.Descriptor{
		Name:    naming.Camel(name),
		Package: p.options.Package,
		Doc:     schemaDoc(schema),
		Declare: true,
		Imports: []record.Import{
			{Path: "time"},
			{Path: p.options.WrapperImport},
		},
	}
	if record.GuessPackageName(p.options.WrapperImport) != wrapperQualifier(p.options.Wrapper) {
		desc.Imports[1].Name = wrapperQualifier(p.options.Wrapper)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, prop := range schema.Required {
		required[prop] = true
	}

	for _, prop := range propertyOrder(schema, order) {
		propRef := schema.Properties[prop]
		goType, err := goType(propRef, resolve)
		if err != nil {
			return desc, fmt.Errorf("property %q: %w", prop, err)
		}
		tag := fmt.Sprintf(`json:"%s"`, prop)
		if !required[prop] || nullable(propRef) {
			goType = p.options.Wrapper + "[" + goType + "]"
			tag = fmt.Sprintf(`json:"%s,omitzero"`, prop)
		}
		ref, err := record.ParseTypeRef(goType)
		if err != nil {
			return desc, fmt.Errorf("property %q: %w", prop, err)
		}
		var doc string
		if propRef != nil && propRef.Value != nil {
			doc = schemaDoc(propRef.Value)
		}
		desc.Fields = append(desc.Fields, record.RawField{
			Name: naming.Camel(prop),
			Type: ref,
			Tag:  tag,
			Doc:  doc,
		})
	}
	return desc, nil
}

// propertyOrder lists the schema properties in document order, appending any
// the raw layout did not reveal (merged from allOf, for example) sorted.
func propertyOrder(schema *openapi3.Schema, order []string) []string {
	seen := make(map[string]bool, len(schema.Properties))
	out := make([]string, 0, len(schema.Properties))
	for _, prop := range order {
		if _, ok := schema.Properties[prop]; ok && !seen[prop] {
			seen[prop] = true
			out = append(out, prop)
		}
	}
	var rest []string
	for prop := range schema.Properties {
		if !seen[prop] {
			rest = append(rest, prop)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isObject(schema *openapi3.Schema) bool {
	typ, ok := baseType(schema)
	if !ok {
		return len(schema.Properties) > 0
	}
	return typ == openapi3.TypeObject
}

// baseType returns the single non-null type of schema. JSON Schema spells a
// nullable string as ["string", "null"].
func baseType(schema *openapi3.Schema) (string, bool) {
	if schema == nil || schema.Type == nil {
		return "", false
	}
	var out []string
	for _, typ := range schema.Type.Slice() {
		if typ != openapi3.TypeNull {
			out = append(out, typ)
		}
	}
	if len(out) != 1 {
		return "", false
	}
	return out[0], true
}

// nullable reports whether a property admits null, through the OpenAPI 3.0
// keyword or a "null" member of its type list. Such properties are optional
// even when required.
func nullable(ref *openapi3.SchemaRef) bool {
	if ref == nil || ref.Value == nil {
		return false
	}
	if ref.Value.Nullable {
		return true
	}
	return ref.Value.Type != nil && ref.Value.Type.Includes(openapi3.TypeNull)
}

// refFunc maps a local reference onto the record name it denotes.
type refFunc func(ref string) (string, bool)

func refResolver(sets []SchemaSet) (refFunc, error) {
	var (
		prefixes []string
		roots    = map[string]string{}
	)
	for _, set := range sets {
		if set.root() {
			if len(set.Schemas) != 1 {
				return nil, errors.New("root schema set must hold exactly one schema")
			}
			for name := range set.Schemas {
				roots[set.RefPrefix] = naming.Camel(name)
			}
			continue
		}
		prefixes = append(prefixes, set.RefPrefix)
	}
	return func(ref string) (string, bool) {
		if name, ok := roots[ref]; ok {
			return name, true
		}
		for _, prefix := range prefixes {
			if rest, ok := strings.CutPrefix(ref, prefix); ok && rest != "" && !strings.Contains(rest, "/") {
				return naming.Camel(rest), true
			}
		}
		return "", false
	}, nil
}

// goType maps a property schema onto a Go type expression.
func goType(ref *openapi3.SchemaRef, resolve refFunc) (string, error) {
	if ref == nil {
		return "any", nil
	}
	if ref.Ref != "" {
		name, ok := resolve(ref.Ref)
		if !ok {
			return "", fmt.Errorf("unsupported reference %q", ref.Ref)
		}
		return name, nil
	}
	schema := ref.Value
	typ, ok := baseType(schema)
	if !ok {
		return "any", nil
	}

	switch typ {
	case openapi3.TypeString:
		switch schema.Format {
		case "date-time", "date":
			return "time.Time", nil
		case "byte", "binary":
			return "[]byte", nil
		}
		return "string", nil
	case openapi3.TypeInteger:
		if schema.Format == "int32" {
			return "int32", nil
		}
		return "int64", nil
	case openapi3.TypeNumber:
		if schema.Format == "float" {
			return "float32", nil
		}
		return "float64", nil
	case openapi3.TypeBoolean:
		return "bool", nil
	case openapi3.TypeArray:
		elem, err := goType(schema.Items, resolve)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case openapi3.TypeObject:
		additional := schema.AdditionalProperties.Schema
		if additional == nil {
			return "map[string]any", nil
		}
		elem, err := goType(additional, resolve)
		if err != nil {
			return "", err
		}
		return "map[string]" + elem, nil
	}
	return "any", nil
}

func wrapperQualifier(wrapper string) string {
	if i := strings.LastIndex(wrapper, "."); i >= 0 {
		return wrapper[:i]
	}
	return ""
}
