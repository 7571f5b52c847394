package goast

import (
	"strings"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// ParserOptions configures how Go source is introspected.
type ParserOptions struct {
	// Directive marks type declarations for generation, without the leading
	// "//". Defaults to record.DefaultDirective.
	Directive string

	// SkipDocs drops field and record doc comments from descriptors.
	SkipDocs bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDirective overrides the marker comment.
func WithDirective(directive string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Directive = strings.TrimPrefix(strings.TrimSpace(directive), "//")
	}
}

// WithoutDocs drops doc comments while introspecting.
func WithoutDocs() ParserOption {
	return func(opts *ParserOptions) {
		opts.SkipDocs = true
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Directive: record.DefaultDirective}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Directive == "" {
		cfg.Directive = record.DefaultDirective
	}
	return cfg
}
