// Package emit renders synthesized builders into Go source. Setters and the
// validated Build method are described as record.Procedures first, then
// rendered through the template engine and formatted with go/format.
package emit

import (
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/option"
	"github.com/goliatone/go-buildergen/pkg/record"
	"github.com/goliatone/go-buildergen/pkg/render/template"
	"github.com/goliatone/go-buildergen/pkg/render/template/gotemplate"
)

const (
	DefaultRuntimeName   = "option"
	DefaultRuntimeImport = option.ImportPath
	DefaultHeader        = "Code generated by buildergen. DO NOT EDIT."

	fileTemplate    = "file"
	builderTemplate = "builder"
)

// Options configures an Emitter.
type Options struct {
	// RuntimeName and RuntimeImport locate the package providing Option,
	// Some, None, and NotSet to the generated code.
	RuntimeName   string
	RuntimeImport string
	// Header lines are written as line comments above the package clause.
	Header []string
	// Templates overrides the embedded templates. It must provide file.tpl
	// and builder.tpl.
	Templates fs.FS
	// Engine overrides the template engine entirely.
	Engine template.TemplateRenderer
}

// Unit is everything the emitter needs for one record.
type Unit struct {
	Record  record.Descriptor
	Fields  []record.FieldDescriptor
	Builder record.BuilderDescriptor
}

// Emitter renders builder units into Go source.
type Emitter struct {
	engine        template.TemplateRenderer
	runtimeName   string
	runtimeImport string
	header        []string
}

// New constructs an Emitter.
func New(options Options) (*Emitter, error) {
	e := &Emitter{
		engine:        options.Engine,
		runtimeName:   strings.TrimSpace(options.RuntimeName),
		runtimeImport: strings.TrimSpace(options.RuntimeImport),
		header:        options.Header,
	}
	if e.runtimeName == "" {
		e.runtimeName = DefaultRuntimeName
	}
	if e.runtimeImport == "" {
		e.runtimeImport = DefaultRuntimeImport
	}
	if e.header == nil {
		e.header = []string{DefaultHeader}
	}
	if e.engine == nil {
		templates := options.Templates
		if templates == nil {
			templates = TemplatesFS()
		}
		engine, err := gotemplate.New(gotemplate.WithFS(templates))
		if err != nil {
			return nil, fmt.Errorf("emit: template engine: %w", err)
		}
		e.engine = engine
	}
	return e, nil
}

// Procedures derives the setters and the build procedure for a builder.
// Build steps follow declaration order; local identifiers are picked so they
// cannot shadow the record type, its type parameters, or the runtime package.
func (e *Emitter) Procedures(unit Unit) record.Procedures {
	reserved := map[string]struct{}{
		unit.Record.Name:  {},
		unit.Builder.Name: {},
		e.runtimeName:     {},
	}
	for _, param := range unit.Record.TypeParams {
		reserved[param.Name] = struct{}{}
	}

	build := record.BuildProcedure{
		Method:   record.BuildMethod,
		Receiver: pick(reserved, "b", "bld", "builder"),
		Steps:    make([]record.BuildStep, 0, len(unit.Builder.Fields)),
	}
	build.Local = pick(reserved, "out", "rec", "result")
	build.Value = pick(reserved, "value", "val", "v")
	build.OK = pick(reserved, "ok", "present", "isSet")

	setters := make([]record.Setter, 0, len(unit.Builder.Fields))
	for _, field := range unit.Builder.Fields {
		setters = append(setters, record.Setter{
			Method:    field.Setter,
			Field:     field.Name,
			Storage:   field.Storage,
			ParamType: field.InnerType,
		})
		step := record.BuildStep{
			Field:    field.Name,
			Storage:  field.Storage,
			Optional: field.Optional,
		}
		if !field.Optional {
			step.Message = field.Name + " not set"
		}
		build.Steps = append(build.Steps, step)
	}
	return record.Procedures{Setters: setters, Build: build}
}

func pick(reserved map[string]struct{}, candidates ...string) string {
	for _, candidate := range candidates {
		if _, taken := reserved[candidate]; !taken {
			reserved[candidate] = struct{}{}
			return candidate
		}
	}
	// Candidates are distinct lower-case words; exhausting them needs a
	// record and type parameters named after every one.
	name := candidates[0]
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if _, taken := reserved[candidate]; !taken {
			reserved[candidate] = struct{}{}
			return candidate
		}
	}
}

// Record renders the declarations generated for one unit, unformatted.
func (e *Emitter) Record(unit Unit) (string, error) {
	procs := e.Procedures(unit)
	view := newRecordView(unit, procs, e.runtimeName)
	out, err := e.engine.RenderTemplate(builderTemplate, view)
	if err != nil {
		return "", fmt.Errorf("emit: record %s: %w", unit.Record.Name, err)
	}
	return out, nil
}

// File renders a complete, gofmt-formatted Go file holding the builders of
// units, which must all belong to pkg.
func (e *Emitter) File(pkg string, units []Unit) ([]byte, error) {
	if strings.TrimSpace(pkg) == "" {
		return nil, errors.New("emit: package name is required")
	}
	if len(units) == 0 {
		return nil, errors.New("emit: no records to emit")
	}

	imports, err := e.imports(pkg, units)
	if err != nil {
		return nil, err
	}

	bodies := make([]string, 0, len(units))
	for _, unit := range units {
		if unit.Record.Package != "" && unit.Record.Package != pkg {
			return nil, fmt.Errorf("emit: record %s belongs to package %s, not %s", unit.Record.Name, unit.Record.Package, pkg)
		}
		body, err := e.Record(unit)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}

	raw, err := e.engine.RenderTemplate(fileTemplate, fileView{
		Header:  nonNil(e.header),
		Package: pkg,
		Imports: imports,
		Bodies:  bodies,
	})
	if err != nil {
		return nil, fmt.Errorf("emit: file: %w", err)
	}

	formatted, err := format.Source([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("emit: format generated source: %w\n%s", err, raw)
	}
	return formatted, nil
}

// imports resolves every package qualifier used by the emitted code against
// the imports visible to the records, plus the runtime package.
func (e *Emitter) imports(pkg string, units []Unit) ([]importView, error) {
	byName := map[string]string{e.runtimeName: e.runtimeImport}
	explicit := map[string]bool{}

	for _, unit := range units {
		for _, qualifier := range usedQualifiers(unit) {
			if qualifier == pkg {
				continue
			}
			path, ok := resolveImport(unit.Record.Imports, qualifier)
			if !ok {
				if qualifier == e.runtimeName {
					continue
				}
				return nil, &record.InputError{
					Position: unit.Record.Position,
					Record:   unit.Record.Name,
					Err:      record.ErrInvalidType,
					Detail:   fmt.Sprintf("no import found for package qualifier %q", qualifier),
				}
			}
			if existing, seen := byName[qualifier]; seen && existing != path {
				return nil, fmt.Errorf("emit: record %s: package name %q refers to both %q and %q", unit.Record.Name, qualifier, existing, path)
			}
			byName[qualifier] = path
			if record.GuessPackageName(path) != qualifier {
				explicit[qualifier] = true
			}
		}
	}
	if record.GuessPackageName(e.runtimeImport) != e.runtimeName {
		explicit[e.runtimeName] = true
	}

	out := make([]importView, 0, len(byName))
	for name, path := range byName {
		view := importView{Path: path}
		if explicit[name] {
			view.Name = name
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func usedQualifiers(unit Unit) []string {
	var refs []record.TypeRef
	for _, param := range unit.Record.TypeParams {
		refs = append(refs, param.Constraint)
	}
	for _, field := range unit.Fields {
		if unit.Record.Declare {
			refs = append(refs, field.DeclaredType)
		}
		refs = append(refs, field.InnerType)
	}

	var out []string
	seen := map[string]struct{}{}
	for _, ref := range refs {
		for _, qualifier := range ref.Qualifiers() {
			if _, dup := seen[qualifier]; dup {
				continue
			}
			seen[qualifier] = struct{}{}
			out = append(out, qualifier)
		}
	}
	return out
}

func resolveImport(imports []record.Import, qualifier string) (string, bool) {
	for _, imp := range imports {
		if imp.Name == "_" || imp.Name == "." {
			continue
		}
		if imp.LocalName() == qualifier {
			return imp.Path, true
		}
	}
	return "", false
}
