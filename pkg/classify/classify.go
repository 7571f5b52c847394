// Package classify decides which record fields are optional.
//
// A field is optional when its declared type is spelled exactly as the
// configured wrapper (option.Option by default) applied to a single type
// argument. The check is purely syntactic: type aliases, renamed imports, and
// dot imports hide the wrapper, and such fields classify as mandatory.
package classify

import (
	"go/ast"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// DefaultWrapper is the wrapper spelling recognised when none is configured.
const DefaultWrapper = "option.Option"

// Classifier recognises one wrapper spelling, either "Name" or "pkg.Name".
type Classifier struct {
	qualifier string
	name      string
}

// New returns a Classifier for the given wrapper spelling. An empty spelling
// selects DefaultWrapper.
func New(wrapper string) *Classifier {
	wrapper = strings.TrimSpace(wrapper)
	if wrapper == "" {
		wrapper = DefaultWrapper
	}
	c := &Classifier{name: wrapper}
	if i := strings.LastIndex(wrapper, "."); i >= 0 {
		c.qualifier, c.name = wrapper[:i], wrapper[i+1:]
	}
	return c
}

// Wrapper returns the recognised spelling.
func (c *Classifier) Wrapper() string {
	if c.qualifier == "" {
		return c.name
	}
	return c.qualifier + "." + c.name
}

// Unwrap returns the wrapped argument when expr is the wrapper applied to
// exactly one type argument.
func (c *Classifier) Unwrap(expr ast.Expr) (ast.Expr, bool) {
	if paren, ok := expr.(*ast.ParenExpr); ok {
		expr = paren.X
	}
	index, ok := expr.(*ast.IndexExpr)
	if !ok {
		// *ast.IndexListExpr carries two or more arguments.
		return nil, false
	}
	if !c.matches(index.X) {
		return nil, false
	}
	return index.Index, true
}

func (c *Classifier) matches(expr ast.Expr) bool {
	switch x := expr.(type) {
	case *ast.Ident:
		return c.qualifier == "" && x.Name == c.name
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		return ok && c.qualifier != "" && pkg.Name == c.qualifier && x.Sel.Name == c.name
	default:
		return false
	}
}

// Field classifies one raw field.
func (c *Classifier) Field(raw record.RawField) record.FieldDescriptor {
	out := record.FieldDescriptor{
		Name:         raw.Name,
		DeclaredType: raw.Type,
		InnerType:    raw.Type,
		Tag:          raw.Tag,
		Doc:          raw.Doc,
	}
	if inner, ok := c.Unwrap(raw.Type.Expr); ok {
		out.Optional = true
		out.InnerType = record.TypeRefFromExpr(inner)
	}
	return out
}

// Fields classifies every field of a record, preserving order.
func (c *Classifier) Fields(desc record.Descriptor) []record.FieldDescriptor {
	out := make([]record.FieldDescriptor, len(desc.Fields))
	for i, raw := range desc.Fields {
		out[i] = c.Field(raw)
	}
	return out
}
