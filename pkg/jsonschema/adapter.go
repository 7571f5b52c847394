package jsonschema

import (
	"context"
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/record"
)

const DefaultAdapterName = "jsonschema"

// Adapter wraps the JSON Schema introspector behind record.Adapter.
type Adapter struct {
	parser record.Introspector
}

var _ record.Adapter = (*Adapter)(nil)

// NewAdapter constructs a JSON Schema adapter with the supplied parser.
func NewAdapter(parser record.Introspector) *Adapter {
	return &Adapter{parser: parser}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be JSON Schema.
func (a *Adapter) Detect(_ record.Source, raw []byte) bool {
	return detectJSONSchema(raw)
}

// Records introspects the schemas of the document.
func (a *Adapter) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("jsonschema adapter: parser is nil")
	}
	return a.parser.Records(ctx, doc, sel)
}

// detectJSONSchema accepts JSON and YAML documents declaring a JSON Schema
// dialect or schema definitions, and rejects OpenAPI documents.
func detectJSONSchema(raw []byte) bool {
	var payload map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &payload); err != nil || payload == nil {
		return false
	}
	for _, key := range []string{"openapi", "swagger", "records"} {
		if _, ok := payload[key]; ok {
			return false
		}
	}
	for _, key := range []string{"$schema", "$defs", "definitions"} {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}
