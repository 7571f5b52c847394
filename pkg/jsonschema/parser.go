package jsonschema

import (
	"strings"

	"github.com/goliatone/go-buildergen/pkg/option"
)

const (
	DefaultPackage = "models"
	DefaultWrapper = "option.Option"
)

// ParserOptions configures how schemas map onto Go records.
type ParserOptions struct {
	// Package names the Go package the records are declared in.
	Package string

	// Wrapper and WrapperImport spell the optional-value type.
	Wrapper       string
	WrapperImport string
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

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Package:       DefaultPackage,
		Wrapper:       DefaultWrapper,
		WrapperImport: option.ImportPath,
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
