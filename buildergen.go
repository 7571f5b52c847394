// Package buildergen generates validated builders for Go record types.
//
// The root package is a thin facade over pkg/generator for callers that want
// a single entry point:
//
//	src, err := buildergen.Generate(ctx, record.SourceFromFile("user.go"))
package buildergen

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/generator"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// Generate loads src, builds every directive-marked record, and returns the
// formatted builder file.
func Generate(ctx context.Context, src record.Source, options ...generator.Option) ([]byte, error) {
	res, err := generator.New(options...).Generate(ctx, generator.Request{Source: src})
	if err != nil {
		return nil, err
	}
	return res.Source, nil
}

// GenerateTypes is Generate restricted to the named records, which need no
// directive.
func GenerateTypes(ctx context.Context, src record.Source, typeNames []string, options ...generator.Option) ([]byte, error) {
	res, err := generator.New(options...).Generate(ctx, generator.Request{
		Source:    src,
		TypeNames: typeNames,
	})
	if err != nil {
		return nil, err
	}
	return res.Source, nil
}

// GenerateFromDocument generates from a pre-loaded document, bypassing the
// loader stage.
func GenerateFromDocument(ctx context.Context, doc record.Document, options ...generator.Option) ([]byte, error) {
	res, err := generator.New(options...).Generate(ctx, generator.Request{Document: &doc})
	if err != nil {
		return nil, err
	}
	return res.Source, nil
}
