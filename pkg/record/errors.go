package record

import (
	"errors"
	"fmt"
	"strings"
)

// Generation-time failures. They halt generation of the document that
// produced them; nothing is emitted.
var (
	ErrNotRecord      = errors.New("not a record with named fields")
	ErrUnnamedField   = errors.New("field has no name")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrReservedName   = errors.New("field name collides with a generated member")
	ErrTypeNotFound   = errors.New("type not found")
	ErrInvalidType    = errors.New("invalid type expression")
)

// InputError locates a structural requirement violated by the input.
type InputError struct {
	Position string
	Record   string
	Field    string
	Err      error
	Detail   string
}

func (e *InputError) Error() string {
	var b strings.Builder
	if e.Position != "" {
		b.WriteString(e.Position)
		b.WriteString(": ")
	}
	if e.Record != "" {
		fmt.Fprintf(&b, "record %s: ", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "field %q: ", e.Field)
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

func (e *InputError) Unwrap() error {
	return e.Err
}
