package record

import (
	"fmt"
	"go/token"

	"github.com/goliatone/go-buildergen/internal/naming"
)

// BuildMethod is the name of the generated construction method.
const BuildMethod = "Build"

// Validate checks the structural requirements every introspector enforces:
// a valid record name, named fields, unique names, and no collisions with
// the members generated on the builder.
func (d Descriptor) Validate() error {
	fail := func(field string, err error, detail string) error {
		return &InputError{Position: d.Position, Record: d.Name, Field: field, Err: err, Detail: detail}
	}
	if !token.IsIdentifier(d.Name) || d.Name == "_" {
		return fail("", ErrNotRecord, fmt.Sprintf("invalid record name %q", d.Name))
	}

	names := make(map[string]struct{}, len(d.Fields))
	setters := make(map[string]string, len(d.Fields))
	storage := make(map[string]string, len(d.Fields))
	for i, field := range d.Fields {
		if field.Name == "" || field.Name == "_" {
			return fail("", ErrUnnamedField, fmt.Sprintf("field #%d", i+1))
		}
		if !token.IsIdentifier(field.Name) {
			return fail(field.Name, ErrInvalidType, "field name is not a Go identifier")
		}
		if field.Type.Expr == nil {
			return fail(field.Name, ErrInvalidType, "missing type")
		}
		if _, dup := names[field.Name]; dup {
			return fail(field.Name, ErrDuplicateField, "")
		}
		names[field.Name] = struct{}{}

		setter := naming.Exported(field.Name)
		if !token.IsExported(setter) {
			// _a or 名字: no upper-case form, so setter and slot would share a name.
			return fail(field.Name, ErrReservedName, fmt.Sprintf("no exported setter name can be derived from %q", field.Name))
		}
		if setter == BuildMethod {
			return fail(field.Name, ErrReservedName, "setter would shadow "+BuildMethod)
		}
		if other, clash := setters[setter]; clash {
			return fail(field.Name, ErrReservedName, fmt.Sprintf("setter %s also generated for %q", setter, other))
		}
		setters[setter] = field.Name

		slot := naming.Unexported(field.Name)
		if other, clash := storage[slot]; clash {
			return fail(field.Name, ErrReservedName, fmt.Sprintf("builder slot %s also used by %q", slot, other))
		}
		storage[slot] = field.Name
		if _, clash := setters[slot]; clash {
			return fail(field.Name, ErrReservedName, fmt.Sprintf("builder slot %s collides with a setter", slot))
		}
		if _, clash := storage[setter]; clash {
			return fail(field.Name, ErrReservedName, fmt.Sprintf("setter %s collides with a builder slot", setter))
		}
	}
	return nil
}
