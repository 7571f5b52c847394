// Package parser implements the Go source introspector on top of go/parser.
// It is purely syntactic: no type checking happens and imports are carried
// through verbatim for the emitter to resolve.
package parser

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/goast"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// Parser implements record.Introspector for Go source files.
type Parser struct {
	options goast.ParserOptions
}

var (
	_ record.Introspector = (*Parser)(nil)
	_ record.Lister       = (*Parser)(nil)
)

// New constructs a Parser with the given options.
func New(options goast.ParserOptions) *Parser {
	if options.Directive == "" {
		options.Directive = record.DefaultDirective
	}
	return &Parser{options: options}
}

// Records returns a descriptor for every selected type declaration, in file
// order. Without explicit type names the directive selects.
func (p *Parser) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("goast parser: document payload is empty")
	}

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, doc.Location(), raw, goparser.ParseComments|goparser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("goast parser: %w", err)
	}

	imports, err := fileImports(file)
	if err != nil {
		return nil, fmt.Errorf("goast parser: %s: %w", doc.Location(), err)
	}

	var (
		out   []record.Descriptor
		found = map[string]bool{}
	)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		groupMarked := hasDirective(gen.Doc, p.options.Directive)
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			name := ts.Name.Name
			selected := groupMarked || hasDirective(ts.Doc, p.options.Directive)
			if sel.Explicit() {
				selected = sel.Wants(name)
			}
			if !selected {
				continue
			}
			found[name] = true

			docs := ts.Doc
			if docs == nil && len(gen.Specs) == 1 {
				docs = gen.Doc
			}
			desc, err := p.describe(fset, ts, docs)
			if err != nil {
				return nil, err
			}
			desc.Package = file.Name.Name
			desc.Imports = imports
			if err := desc.Validate(); err != nil {
				return nil, err
			}
			out = append(out, desc)
		}
	}

	for _, name := range sel.TypeNames {
		if !found[name] {
			return nil, &record.InputError{
				Position: doc.Location(),
				Record:   name,
				Err:      record.ErrTypeNotFound,
			}
		}
	}
	return out, nil
}

// Candidates lists every struct type declared in the document, in file
// order.
func (p *Parser) Candidates(ctx context.Context, doc record.Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := goparser.ParseFile(token.NewFileSet(), doc.Location(), doc.Raw(), goparser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("goast parser: %w", err)
	}
	var names []string
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Assign.IsValid() {
				continue
			}
			if _, ok := ts.Type.(*ast.StructType); ok {
				names = append(names, ts.Name.Name)
			}
		}
	}
	return names, nil
}

func (p *Parser) describe(fset *token.FileSet, ts *ast.TypeSpec, docs *ast.CommentGroup) (record.Descriptor, error) {
	desc := record.Descriptor{
		Name:     ts.Name.Name,
		Position: fset.Position(ts.Pos()).String(),
	}
	if !p.options.SkipDocs {
		desc.Doc = docs.Text()
	}
	fail := func(field string, err error, detail string) error {
		return &record.InputError{Position: desc.Position, Record: desc.Name, Field: field, Err: err, Detail: detail}
	}

	if ts.Assign.IsValid() {
		return desc, fail("", record.ErrNotRecord, "type alias")
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return desc, fail("", record.ErrNotRecord, describeKind(ts.Type))
	}

	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			constraint := record.TypeRefFromExpr(field.Type)
			for _, ident := range field.Names {
				desc.TypeParams = append(desc.TypeParams, record.TypeParam{Name: ident.Name, Constraint: constraint})
			}
		}
	}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return desc, fail("", record.ErrUnnamedField, "embedded "+record.TypeRefFromExpr(field.Type).Text)
		}
		tag, err := fieldTag(field)
		if err != nil {
			return desc, fail(field.Names[0].Name, record.ErrInvalidType, err.Error())
		}
		var text string
		if !p.options.SkipDocs {
			text = field.Doc.Text()
			if text == "" {
				text = field.Comment.Text()
			}
		}
		for _, ident := range field.Names {
			if ident.Name == "_" {
				return desc, &record.InputError{
					Position: fset.Position(ident.Pos()).String(),
					Record:   desc.Name,
					Err:      record.ErrUnnamedField,
					Detail:   "blank field",
				}
			}
			desc.Fields = append(desc.Fields, record.RawField{
				Name: ident.Name,
				Type: record.TypeRefFromExpr(field.Type),
				Tag:  tag,
				Doc:  text,
			})
		}
	}
	return desc, nil
}

// hasDirective reports whether group holds the marker line. Directive
// comments have no space after the slashes, so CommentGroup.Text skips them.
func hasDirective(group *ast.CommentGroup, directive string) bool {
	if group == nil {
		return false
	}
	for _, comment := range group.List {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		if text == directive || strings.HasPrefix(text, directive+" ") {
			return true
		}
	}
	return false
}

func fieldTag(field *ast.Field) (string, error) {
	if field.Tag == nil {
		return "", nil
	}
	tag, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", fmt.Errorf("malformed tag %s", field.Tag.Value)
	}
	return tag, nil
}

func fileImports(file *ast.File) ([]record.Import, error) {
	out := make([]record.Import, 0, len(file.Imports))
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("malformed import path %s", spec.Path.Value)
		}
		imp := record.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		out = append(out, imp)
	}
	return out, nil
}

func describeKind(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.InterfaceType:
		return "interface type"
	case *ast.FuncType:
		return "function type"
	case *ast.MapType:
		return "map type"
	case *ast.ArrayType:
		return "array or slice type"
	case *ast.ChanType:
		return "channel type"
	case *ast.StarExpr:
		return "pointer type"
	default:
		return "defined type over " + record.TypeRefFromExpr(expr).Text
	}
}
