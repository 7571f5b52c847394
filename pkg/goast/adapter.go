package goast

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/record"
)

const DefaultAdapterName = "go"

// Adapter wraps a Go source introspector behind record.Adapter.
type Adapter struct {
	parser record.Introspector
}

var (
	_ record.Adapter = (*Adapter)(nil)
	_ record.Lister  = (*Adapter)(nil)
)

// NewAdapter constructs the Go source adapter around parser.
func NewAdapter(parser record.Introspector) *Adapter {
	return &Adapter{parser: parser}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the payload looks like a Go source file.
func (a *Adapter) Detect(src record.Source, raw []byte) bool {
	if src != nil && strings.EqualFold(path.Ext(src.Location()), ".go") {
		return true
	}
	return detectGo(raw)
}

// Records introspects the selected struct declarations.
func (a *Adapter) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("goast adapter: parser is nil")
	}
	return a.parser.Records(ctx, doc, sel)
}

// Candidates lists every struct type of the document when the parser can
// enumerate them.
func (a *Adapter) Candidates(ctx context.Context, doc record.Document) ([]string, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("goast adapter: parser is nil")
	}
	lister, ok := a.parser.(record.Lister)
	if !ok {
		return nil, errors.New("goast adapter: parser cannot list candidates")
	}
	return lister.Candidates(ctx, doc)
}

// detectGo looks for a package clause as the first non-comment token.
func detectGo(raw []byte) bool {
	inBlock := false
	for _, line := range bytes.Split(raw, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if inBlock {
			if i := bytes.Index(trimmed, []byte("*/")); i >= 0 {
				inBlock = false
				trimmed = bytes.TrimSpace(trimmed[i+2:])
			} else {
				continue
			}
		}
		switch {
		case len(trimmed) == 0, bytes.HasPrefix(trimmed, []byte("//")):
			continue
		case bytes.HasPrefix(trimmed, []byte("/*")):
			if !bytes.Contains(trimmed[2:], []byte("*/")) {
				inBlock = true
			}
			continue
		}
		return bytes.HasPrefix(trimmed, []byte("package "))
	}
	return false
}
