// Package parser maps JSON Schema definitions onto record descriptors. The
// document is decoded into kin-openapi schemas, whose object mapping it
// shares with the OpenAPI parser.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	openapiparser "github.com/goliatone/go-buildergen/internal/openapi/parser"
	pkgjsonschema "github.com/goliatone/go-buildergen/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-buildergen/pkg/openapi"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// Parser implements record.Introspector for JSON Schema documents.
type Parser struct {
	schemas *openapiparser.Parser
}

var _ record.Introspector = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgjsonschema.ParserOptions) *Parser {
	return &Parser{
		schemas: openapiparser.New(pkgopenapi.ParserOptions{
			Package:       options.Package,
			Wrapper:       options.Wrapper,
			WrapperImport: options.WrapperImport,
		}),
	}
}

type document struct {
	Title       string           `json:"title"`
	Properties  map[string]any   `json:"properties"`
	Defs        openapi3.Schemas `json:"$defs"`
	Definitions openapi3.Schemas `json:"definitions"`
}

// Records returns one declared record per object schema: the titled root
// first, then $defs, then definitions, each in document order.
func (p *Parser) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := decode(doc.Raw())
	if err != nil {
		return nil, err
	}

	var parsed document
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("jsonschema parser: decode definitions: %w", err)
	}

	var sets []openapiparser.SchemaSet
	if title := strings.TrimSpace(parsed.Title); title != "" && len(parsed.Properties) > 0 {
		var root openapi3.Schema
		if err := json.Unmarshal(payload, &root); err != nil {
			return nil, fmt.Errorf("jsonschema parser: decode root schema: %w", err)
		}
		sets = append(sets, openapiparser.SchemaSet{
			Schemas:   openapi3.Schemas{title: &openapi3.SchemaRef{Value: &root}},
			RefPrefix: "#",
		})
	}
	sets = append(sets,
		openapiparser.SchemaSet{Schemas: parsed.Defs, RefPrefix: "#/$defs/", Path: []string{"$defs"}},
		openapiparser.SchemaSet{Schemas: parsed.Definitions, RefPrefix: "#/definitions/", Path: []string{"definitions"}},
	)

	return p.schemas.Describe(doc, sel, sets...)
}

// decode reads JSON or YAML into canonical JSON, dropping the keywords whose
// JSON Schema form kin-openapi cannot represent.
func decode(raw []byte) ([]byte, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("jsonschema parser: document payload is empty")
	}
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("jsonschema parser: parse document: %w", err)
	}
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, errors.New("jsonschema parser: document is not an object")
	}
	out, err := json.Marshal(normalize(root))
	if err != nil {
		return nil, fmt.Errorf("jsonschema parser: %w", err)
	}
	return out, nil
}

// normalize rewrites draft 2019+ keywords into the OpenAPI 3.0 shape the
// schema decoder expects. Numeric exclusive bounds carry no type
// information and are dropped.
func normalize(node any) any {
	switch value := node.(type) {
	case map[string]any:
		for key, child := range value {
			switch key {
			case "exclusiveMinimum", "exclusiveMaximum":
				if _, isBool := child.(bool); !isBool {
					delete(value, key)
					continue
				}
			case "const", "default", "examples", "enum":
				continue
			}
			value[key] = normalize(child)
		}
		return value
	case []any:
		for i, child := range value {
			value[i] = normalize(child)
		}
		return value
	default:
		return node
	}
}
