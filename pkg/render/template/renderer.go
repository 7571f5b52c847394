package template

import "io"

// TemplateRenderer renders a named template against data. The result is
// returned and mirrored to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// Filter transforms a rendered value. Filters operate on text because every
// value reaching a Go-source template is already an identifier, a type
// expression, or a literal.
type Filter func(in string) string
