package record

import "context"

// DefaultDirective marks a Go type declaration for builder generation.
const DefaultDirective = "buildergen:builder"

// Selection narrows which records an adapter introspects. With no TypeNames
// the adapter picks records marked by its directive (Go source) or every
// record the document describes (descriptor formats).
type Selection struct {
	TypeNames []string
}

// Wants reports whether name was requested explicitly.
func (s Selection) Wants(name string) bool {
	for _, candidate := range s.TypeNames {
		if candidate == name {
			return true
		}
	}
	return false
}

// Explicit reports whether the caller named the records to introspect.
func (s Selection) Explicit() bool {
	return len(s.TypeNames) > 0
}

// Introspector turns a document into record descriptors, rejecting inputs
// that are not records with named fields.
type Introspector interface {
	Records(ctx context.Context, doc Document, sel Selection) ([]Descriptor, error)
}

// Adapter is an Introspector for one structural-description format.
type Adapter interface {
	Introspector
	Name() string
	Detect(src Source, raw []byte) bool
}

// Lister enumerates every record a document could describe, marked or not,
// so callers can offer them for selection.
type Lister interface {
	Candidates(ctx context.Context, doc Document) ([]string, error)
}
