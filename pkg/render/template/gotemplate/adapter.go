// Package gotemplate renders Go source from pongo2 templates.
package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-buildergen/internal/naming"
	"github.com/goliatone/go-buildergen/pkg/render/template"
)

// DefaultExtension is appended to template names given without one.
const DefaultExtension = ".tpl"

var builtinFilters = map[string]template.Filter{
	"gostring":   strconv.Quote,
	"exported":   naming.Exported,
	"unexported": naming.Unexported,
	"camel":      naming.Camel,
	"comment":    commentLines,
}

var registerBuiltins sync.Once

// Option configures an Engine.
type Option func(*options)

type options struct {
	baseDir   string
	files     fs.FS
	extension string
	globals   pongo2.Context
	filters   map[string]template.Filter
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithBaseDir loads templates from a directory on disk. Templates found
// there shadow those of WithFS.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = strings.TrimSpace(dir)
	}
}

// WithExtension changes the extension appended to bare template names.
func WithExtension(ext string) Option {
	return func(o *options) {
		ext = strings.TrimSpace(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext != "" {
			o.extension = ext
		}
	}
}

// WithGlobals makes values available to every template.
func WithGlobals(globals map[string]any) Option {
	return func(o *options) {
		for key, value := range globals {
			o.globals[key] = value
		}
	}
}

// WithFilter registers a text filter. pongo2 keeps filters process wide, so
// a name can only be registered once.
func WithFilter(name string, fn template.Filter) Option {
	return func(o *options) {
		o.filters[strings.TrimSpace(name)] = fn
	}
}

// Engine renders templates through a pongo2 template set. Parsed templates
// are cached by name. Templates emitting Go source wrap their body in
// {% autoescape off %}, since pongo2 escapes HTML by default.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. At least one of WithFS and WithBaseDir is required.
func New(opts ...Option) (*Engine, error) {
	o := options{
		extension: DefaultExtension,
		globals:   pongo2.Context{},
		filters:   map[string]template.Filter{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var loaders []pongo2.TemplateLoader
	if o.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(o.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %s: %w", o.baseDir, err)
		}
		loaders = append(loaders, local)
	}
	if o.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(o.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: a template FS or directory is required")
	}

	registerBuiltins.Do(func() {
		for name, fn := range builtinFilters {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, adaptFilter(fn))
			}
		}
	})
	for name, fn := range o.filters {
		if err := RegisterFilter(name, fn); err != nil {
			return nil, err
		}
	}

	set := pongo2.NewSet("buildergen", loaders...)
	if set.Globals == nil {
		set.Globals = pongo2.Context{}
	}
	set.Globals.Update(o.globals)
	return &Engine{
		set:       set,
		extension: o.extension,
		cache:     map[string]*pongo2.Template{},
	}, nil
}

// RegisterFilter adds a text filter to pongo2.
func RegisterFilter(name string, fn template.Filter) error {
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function are required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, adaptFilter(fn))
}

// RenderTemplate renders the template called name, adding the engine
// extension when name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.extension) {
		name += e.extension
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: %w", name, err)
	}
	rendered, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", name, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

// toContext turns data into a pongo2 context. Structs go through JSON so
// their json tags become the names templates use.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode context: %w", err)
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("context must encode to an object: %w", err)
	}
	return ctx, nil
}

func adaptFilter(fn template.Filter) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsSafeValue(fn(in.String())), nil
	}
}

// commentLines prefixes every line with "// ", leaving blank lines as "//".
func commentLines(in string) string {
	lines := strings.Split(strings.TrimRight(in, "\n"), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "//"
			continue
		}
		lines[i] = "// " + line
	}
	return strings.Join(lines, "\n")
}
