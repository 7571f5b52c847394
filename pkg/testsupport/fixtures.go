// Package testsupport holds fixture and generated-source helpers shared by
// adapter, emitter, and engine tests.
package testsupport

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// LoadDocument reads a fixture and builds a record.Document using a file
// source. It fails the test immediately to keep contract tests concise.
func LoadDocument(t *testing.T, path string) record.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	doc, err := record.NewDocument(record.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("load document %s: %v", path, err)
	}
	return doc
}

// InlineDocument wraps literal source text in a Document whose location is
// name, so adapters can detect the format from the extension.
func InlineDocument(t *testing.T, name, content string) record.Document {
	t.Helper()

	doc, err := record.NewDocument(record.SourceFromFile(name), []byte(content))
	if err != nil {
		t.Fatalf("inline document: %v", err)
	}
	return doc
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// ParseGo parses generated Go source, failing the test when it is not valid
// Go. Assertions then inspect declarations instead of comparing raw text.
func ParseGo(t *testing.T, src []byte) *ast.File {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse generated source: %v\n%s", err, src)
	}
	return file
}

// FindFunc returns the function or method named name. Pass an empty receiver
// for package-level functions and the bare receiver type name (without
// pointer or type arguments) for methods.
func FindFunc(file *ast.File, receiver, name string) *ast.FuncDecl {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name.Name != name {
			continue
		}
		if receiver == "" && fn.Recv == nil {
			return fn
		}
		if receiver != "" && fn.Recv != nil && len(fn.Recv.List) == 1 && receiverName(fn.Recv.List[0].Type) == receiver {
			return fn
		}
	}
	return nil
}

// FindType returns the type spec named name.
func FindType(file *ast.File, name string) *ast.TypeSpec {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}

// ImportPaths lists the import paths of file in order.
func ImportPaths(file *ast.File) []string {
	out := make([]string, 0, len(file.Imports))
	for _, spec := range file.Imports {
		out = append(out, spec.Path.Value[1:len(spec.Path.Value)-1])
	}
	return out
}

func receiverName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.StarExpr:
		return receiverName(x.X)
	case *ast.IndexExpr:
		return receiverName(x.X)
	case *ast.IndexListExpr:
		return receiverName(x.X)
	case *ast.Ident:
		return x.Name
	default:
		return ""
	}
}
