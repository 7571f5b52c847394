package buildergen

import (
	internalgoast "github.com/goliatone/go-buildergen/internal/goast/parser"
	internaljsonschema "github.com/goliatone/go-buildergen/internal/jsonschema/parser"
	internalopenapi "github.com/goliatone/go-buildergen/internal/openapi/parser"
	internalloader "github.com/goliatone/go-buildergen/internal/source/loader"
	"github.com/goliatone/go-buildergen/pkg/goast"
	"github.com/goliatone/go-buildergen/pkg/jsonschema"
	"github.com/goliatone/go-buildergen/pkg/openapi"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...record.LoaderOption) record.Loader {
	cfg := record.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// NewGoParser constructs the Go source introspector.
func NewGoParser(options ...goast.ParserOption) record.Introspector {
	cfg := goast.NewParserOptions(options...)
	return internalgoast.New(cfg)
}

// NewOpenAPIParser constructs the OpenAPI schema introspector.
func NewOpenAPIParser(options ...openapi.ParserOption) record.Introspector {
	cfg := openapi.NewParserOptions(options...)
	return internalopenapi.New(cfg)
}

// NewJSONSchemaParser constructs the JSON Schema introspector.
func NewJSONSchemaParser(options ...jsonschema.ParserOption) record.Introspector {
	return internaljsonschema.New(jsonschema.NewParserOptions(options...))
}
