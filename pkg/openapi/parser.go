package openapi

import (
	"strings"

	"github.com/goliatone/go-buildergen/pkg/option"
)

const (
	DefaultPackage = "models"
	DefaultWrapper = "option.Option"
)

// ParserOptions configures how component schemas map onto Go records.
type ParserOptions struct {
	// Package names the Go package the records are declared in. OpenAPI
	// documents carry no package of their own.
	Package string

	// Wrapper and WrapperImport spell the optional-value type used for
	// properties outside "required". The wrapper must match the classifier
	// configuration for those fields to be recognised as optional.
	Wrapper       string
	WrapperImport string

	// Validate runs kin-openapi document validation before introspection.
	Validate bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithPackage sets the Go package of the declared records.
func WithPackage(name string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Package = strings.TrimSpace(name)
	}
}

// WithWrapper overrides the optional-value spelling and its import path.
func WithWrapper(wrapper, importPath string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Wrapper = strings.TrimSpace(wrapper)
		opts.WrapperImport = strings.TrimSpace(importPath)
	}
}

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
// Implementations under internal/openapi call this helper to stay consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Package:       DefaultPackage,
		Wrapper:       DefaultWrapper,
		WrapperImport: option.ImportPath,
		Validate:      true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Package == "" {
		cfg.Package = DefaultPackage
	}
	if cfg.Wrapper == "" {
		cfg.Wrapper = DefaultWrapper
	}
	if cfg.WrapperImport == "" {
		cfg.WrapperImport = option.ImportPath
	}
	return cfg
}
