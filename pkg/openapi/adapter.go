package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/goliatone/go-buildergen/pkg/record"
)

const DefaultAdapterName = "openapi"

// Adapter wraps the OpenAPI introspector behind record.Adapter.
type Adapter struct {
	parser record.Introspector
}

var _ record.Adapter = (*Adapter)(nil)

// NewAdapter constructs an OpenAPI adapter with the supplied parser.
func NewAdapter(parser record.Introspector) *Adapter {
	return &Adapter{parser: parser}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be OpenAPI.
func (a *Adapter) Detect(_ record.Source, raw []byte) bool {
	return detectOpenAPI(raw)
}

// Records introspects the component schemas of the document.
func (a *Adapter) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("openapi adapter: parser is nil")
	}
	return a.parser.Records(ctx, doc, sel)
}

func detectOpenAPI(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var probe struct {
			OpenAPI string `json:"openapi"`
			Swagger string `json:"swagger"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return false
		}
		return probe.OpenAPI != "" || probe.Swagger != ""
	}
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("openapi:")) || bytes.HasPrefix(line, []byte("swagger:")) {
			return true
		}
	}
	return false
}
