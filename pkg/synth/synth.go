// Package synth derives the builder shape from a classified record.
package synth

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/goliatone/go-buildergen/internal/naming"
	"github.com/goliatone/go-buildergen/pkg/record"
)

const (
	DefaultSuffix            = "Builder"
	DefaultConstructorPrefix = "New"
	DefaultRuntimeName       = "option"
)

// Options tune the names the synthesizer produces.
type Options struct {
	// Suffix is appended to the record name to name the builder type.
	Suffix string
	// ConstructorPrefix precedes the builder name in the constructor.
	ConstructorPrefix string
	// RuntimeName is the package name the generated file imports the runtime
	// Option type under. Every builder slot is declared as
	// RuntimeName.Option[Inner].
	RuntimeName string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Suffix) == "" {
		o.Suffix = DefaultSuffix
	}
	if strings.TrimSpace(o.ConstructorPrefix) == "" {
		o.ConstructorPrefix = DefaultConstructorPrefix
	}
	if strings.TrimSpace(o.RuntimeName) == "" {
		o.RuntimeName = DefaultRuntimeName
	}
	return o
}

// Synthesizer turns classified fields into a BuilderDescriptor.
type Synthesizer struct {
	opts Options
}

// New constructs a Synthesizer.
func New(options Options) *Synthesizer {
	return &Synthesizer{opts: options.withDefaults()}
}

// Options returns the effective options.
func (s *Synthesizer) Options() Options {
	return s.opts
}

// Builder derives the builder for desc. Slots keep the record's field order
// and are always the runtime wrapper of the classified inner type, so a field
// that was optional in the record is not wrapped twice.
func (s *Synthesizer) Builder(desc record.Descriptor, fields []record.FieldDescriptor) record.BuilderDescriptor {
	name := desc.Name + s.opts.Suffix
	out := record.BuilderDescriptor{
		Name:        name,
		Constructor: naming.Constructor(s.opts.ConstructorPrefix, name),
		RecordName:  desc.Name,
		TypeParams:  desc.TypeParamList(),
		TypeArgs:    desc.TypeArgList(),
		Fields:      make([]record.BuilderField, 0, len(fields)),
	}
	for _, field := range fields {
		out.Fields = append(out.Fields, record.BuilderField{
			Name:      field.Name,
			Storage:   naming.Unexported(field.Name),
			Setter:    naming.Exported(field.Name),
			Optional:  field.Optional,
			InnerType: field.InnerType,
			SlotType:  s.wrap(field.InnerType),
		})
	}
	return out
}

func (s *Synthesizer) wrap(inner record.TypeRef) record.TypeRef {
	return record.TypeRefFromExpr(&ast.IndexExpr{
		X: &ast.SelectorExpr{
			X:   ast.NewIdent(s.opts.RuntimeName),
			Sel: ast.NewIdent("Option"),
		},
		Lbrack: token.NoPos,
		Index:  inner.Expr,
	})
}
