package descriptor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/record"
)

const DefaultAdapterName = "descriptor"

// Adapter introspects YAML record descriptors.
type Adapter struct{}

var _ record.Adapter = (*Adapter)(nil)

// NewAdapter constructs the YAML descriptor adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether raw is a YAML document with a top-level records key
// and no OpenAPI marker.
func (a *Adapter) Detect(_ record.Source, raw []byte) bool {
	var hasRecords bool
	for _, line := range bytes.Split(raw, []byte("\n")) {
		switch {
		case bytes.HasPrefix(line, []byte("records:")):
			hasRecords = true
		case bytes.HasPrefix(line, []byte("openapi:")), bytes.HasPrefix(line, []byte("swagger:")):
			return false
		}
	}
	return hasRecords
}

// Records decodes the descriptor and returns the selected records in
// document order. Every record is declared by the generated file.
func (a *Adapter) Records(ctx context.Context, doc record.Document, sel record.Selection) ([]record.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(doc.Raw(), &root); err != nil {
		return nil, fmt.Errorf("descriptor: decode %s: %w", doc.Location(), err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("descriptor: %s: top level must be a mapping", doc.Location())
	}

	file, err := decodeFile(root.Content[0])
	if err != nil {
		return nil, fmt.Errorf("descriptor: %s: %w", doc.Location(), err)
	}
	pos := func(n *yaml.Node) string {
		return fmt.Sprintf("%s:%d:%d", doc.Location(), n.Line, n.Column)
	}

	var (
		out   []record.Descriptor
		found = map[string]bool{}
	)
	for i := 0; i+1 < len(file.records.Content); i += 2 {
		key, value := file.records.Content[i], file.records.Content[i+1]
		desc, err := describe(key, value, pos)
		if err != nil {
			return nil, err
		}
		if sel.Explicit() && !sel.Wants(desc.Name) {
			continue
		}
		found[desc.Name] = true
		desc.Package = file.pkg
		desc.Imports = file.imports
		if err := desc.Validate(); err != nil {
			return nil, err
		}
		out = append(out, desc)
	}

	for _, name := range sel.TypeNames {
		if !found[name] {
			return nil, &record.InputError{Position: doc.Location(), Record: name, Err: record.ErrTypeNotFound}
		}
	}
	return out, nil
}

type descriptorFile struct {
	pkg     string
	imports []record.Import
	records *yaml.Node
}

func decodeFile(top *yaml.Node) (descriptorFile, error) {
	var file descriptorFile
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "package":
			if err := value.Decode(&file.pkg); err != nil {
				return file, fmt.Errorf("package: %w", err)
			}
		case "imports":
			var specs []string
			if err := value.Decode(&specs); err != nil {
				return file, fmt.Errorf("imports: %w", err)
			}
			for _, spec := range specs {
				imp, err := record.ParseImport(spec)
				if err != nil {
					return file, err
				}
				file.imports = append(file.imports, imp)
			}
		case "records":
			if value.Kind != yaml.MappingNode {
				return file, fmt.Errorf("records must be a mapping (line %d)", value.Line)
			}
			file.records = value
		default:
			return file, fmt.Errorf("unknown key %q (line %d)", key.Value, key.Line)
		}
	}
	if !token.IsIdentifier(file.pkg) {
		return file, fmt.Errorf("package %q is not a valid package name", file.pkg)
	}
	if file.records == nil {
		return file, errors.New("records mapping is required")
	}
	return file, nil
}

func describe(key, value *yaml.Node, pos func(*yaml.Node) string) (record.Descriptor, error) {
	desc := record.Descriptor{Position: pos(key), Declare: true, Doc: commentText(key.HeadComment)}

	name, params, err := parseRecordHead(key.Value)
	if err != nil {
		return desc, &record.InputError{Position: desc.Position, Record: key.Value, Err: record.ErrNotRecord, Detail: err.Error()}
	}
	desc.Name = name
	desc.TypeParams = params

	switch value.Kind {
	case yaml.MappingNode:
	case yaml.SequenceNode:
		return desc, &record.InputError{Position: desc.Position, Record: name, Err: record.ErrNotRecord, Detail: "tuple-style record has no field names"}
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return desc, nil
		}
		return desc, &record.InputError{Position: desc.Position, Record: name, Err: record.ErrNotRecord, Detail: fmt.Sprintf("scalar %q", value.Value)}
	default:
		return desc, &record.InputError{Position: desc.Position, Record: name, Err: record.ErrNotRecord}
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		fkey, fvalue := value.Content[i], value.Content[i+1]
		field, err := describeField(fkey, fvalue)
		if err != nil {
			return desc, &record.InputError{Position: pos(fkey), Record: name, Field: fkey.Value, Err: errKind(err), Detail: err.Error()}
		}
		desc.Fields = append(desc.Fields, field)
	}
	return desc, nil
}

type fieldSpec struct {
	Type string `yaml:"type"`
	Tag  string `yaml:"tag"`
	Doc  string `yaml:"doc"`
}

var errUnnamed = errors.New("empty field name")

func describeField(key, value *yaml.Node) (record.RawField, error) {
	field := record.RawField{Name: strings.TrimSpace(key.Value)}
	if field.Name == "" {
		return field, errUnnamed
	}

	var spec fieldSpec
	switch value.Kind {
	case yaml.ScalarNode:
		spec.Type = value.Value
		spec.Doc = commentText(key.HeadComment, key.LineComment, value.LineComment)
	case yaml.MappingNode:
		if err := value.Decode(&spec); err != nil {
			return field, err
		}
		if spec.Doc == "" {
			spec.Doc = commentText(key.HeadComment, key.LineComment)
		}
	default:
		return field, errors.New("field type must be a type expression or a mapping with a type key")
	}

	ref, err := record.ParseTypeRef(spec.Type)
	if err != nil {
		return field, err
	}
	field.Type = ref
	field.Tag = spec.Tag
	field.Doc = spec.Doc
	return field, nil
}

func errKind(err error) error {
	if errors.Is(err, errUnnamed) {
		return record.ErrUnnamedField
	}
	return record.ErrInvalidType
}

// parseRecordHead splits "Pair[K comparable, V any]" into the record name
// and its type parameters by parsing it as a type declaration.
func parseRecordHead(head string) (string, []record.TypeParam, error) {
	head = strings.TrimSpace(head)
	if head == "" {
		return "", nil, errors.New("empty record name")
	}
	if !strings.Contains(head, "[") {
		if !token.IsIdentifier(head) {
			return "", nil, fmt.Errorf("invalid record name %q", head)
		}
		return head, nil, nil
	}

	src := "package p\ntype " + head + " struct{}\n"
	file, err := goparser.ParseFile(token.NewFileSet(), "", src, goparser.SkipObjectResolution)
	if err != nil || len(file.Decls) != 1 {
		return "", nil, fmt.Errorf("invalid record head %q", head)
	}
	gen := file.Decls[0].(*ast.GenDecl)
	if len(gen.Specs) != 1 {
		return "", nil, fmt.Errorf("invalid record head %q", head)
	}
	ts := gen.Specs[0].(*ast.TypeSpec)

	var params []record.TypeParam
	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			constraint := record.TypeRefFromExpr(field.Type)
			for _, ident := range field.Names {
				params = append(params, record.TypeParam{Name: ident.Name, Constraint: constraint})
			}
		}
	}
	return ts.Name.Name, params, nil
}

// commentText turns YAML comments into doc text, dropping the leading "#".
func commentText(parts ...string) string {
	var lines []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		for _, line := range strings.Split(part, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			lines = append(lines, line)
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
