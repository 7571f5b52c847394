package generator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	internalgoast "github.com/goliatone/go-buildergen/internal/goast/parser"
	internaljsonschema "github.com/goliatone/go-buildergen/internal/jsonschema/parser"
	internalopenapi "github.com/goliatone/go-buildergen/internal/openapi/parser"
	internalloader "github.com/goliatone/go-buildergen/internal/source/loader"
	"github.com/goliatone/go-buildergen/pkg/classify"
	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/descriptor"
	"github.com/goliatone/go-buildergen/pkg/emit"
	"github.com/goliatone/go-buildergen/pkg/goast"
	"github.com/goliatone/go-buildergen/pkg/jsonschema"
	"github.com/goliatone/go-buildergen/pkg/logger"
	"github.com/goliatone/go-buildergen/pkg/openapi"
	"github.com/goliatone/go-buildergen/pkg/record"
	"github.com/goliatone/go-buildergen/pkg/synth"
)

// ErrNoRecords reports a document with nothing selected for generation.
var ErrNoRecords = errors.New("generator: no records selected")

// Option customises the generator configuration.
type Option func(*Generator)

// WithConfig replaces the default configuration. Stages injected through
// other options take precedence over the ones derived from it.
func WithConfig(cfg config.Config) Option {
	return func(g *Generator) {
		g.cfg = cfg
	}
}

// WithLogger injects a logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithLoader injects a custom document loader.
func WithLoader(loader record.Loader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithAdapterRegistry replaces the adapter registry, dropping the built-in
// adapters.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(g *Generator) {
		g.adapters = registry
	}
}

// WithAdapters registers extra adapters next to the built-in ones.
func WithAdapters(adapters ...record.Adapter) Option {
	return func(g *Generator) {
		g.extraAdapters = append(g.extraAdapters, adapters...)
	}
}

// WithDefaultAdapter names the adapter used when detection is inconclusive.
func WithDefaultAdapter(name string) Option {
	return func(g *Generator) {
		g.defaultAdapter = name
	}
}

// WithClassifier injects a custom optionality classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(g *Generator) {
		g.classifier = c
	}
}

// WithSynthesizer injects a custom shape synthesizer.
func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(g *Generator) {
		g.synth = s
	}
}

// WithEmitter injects a custom procedure emitter.
func WithEmitter(e *emit.Emitter) Option {
	return func(g *Generator) {
		g.emitter = e
	}
}

// WithTransformers registers descriptor transformers, run in order.
func WithTransformers(transformers ...Transformer) Option {
	return func(g *Generator) {
		g.transformers = append(g.transformers, transformers...)
	}
}

// WithSelector enables interactive record selection for requests that set
// Interactive.
func WithSelector(s Selector) Option {
	return func(g *Generator) {
		g.selector = s
	}
}

// Generator coordinates the pipeline from structural description to Go
// source.
type Generator struct {
	cfg            config.Config
	logger         logger.Logger
	loader         record.Loader
	adapters       *AdapterRegistry
	extraAdapters  []record.Adapter
	defaultAdapter string
	classifier     *classify.Classifier
	synth          *synth.Synthesizer
	emitter        *emit.Emitter
	transformers   []Transformer
	selector       Selector
	initialiseErr  error
}

// New constructs a Generator applying any provided options. Missing stages
// are initialised from the configuration (config.Default unless WithConfig
// is given).
func New(options ...Option) *Generator {
	g := &Generator{cfg: config.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request describes one document to generate builders for.
type Request struct {
	// Source identifies where the description lives. Optional when Document
	// is supplied.
	Source record.Source

	// Document bypasses the loader.
	Document *record.Document

	// Adapter names the adapter to use. Empty means detect.
	Adapter string

	// TypeNames restricts generation to the named records. Empty means the
	// adapter's default selection.
	TypeNames []string

	// Interactive asks the configured Selector to pick records when
	// TypeNames is empty.
	Interactive bool
}

// Result is the generated file for one document.
type Result struct {
	Package string
	// FileName is the base name of the generated file and Path its location
	// next to the source, when the source is a local file.
	FileName string
	Path     string
	Units    []emit.Unit
	Source   []byte
}

// Generate runs the full pipeline and returns one formatted Go file holding
// the builders of every selected record.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	doc, units, err := g.run(ctx, req)
	if err != nil {
		return Result{}, err
	}

	pkg := units[0].Record.Package
	src, err := g.emitter.File(pkg, units)
	if err != nil {
		return Result{}, fmt.Errorf("generator: %s: %w", doc.Location(), err)
	}

	name, dir := OutputName(doc, g.cfg.Output.Suffix)
	res := Result{
		Package:  pkg,
		FileName: name,
		Units:    units,
		Source:   src,
	}
	if dir != "" {
		res.Path = filepath.Join(dir, name)
	}
	g.logger.Info("generated builders", "source", doc.Location(), "records", len(units), "file", name)
	return res, nil
}

// Inspect runs introspection, classification, and synthesis without
// emitting code.
func (g *Generator) Inspect(ctx context.Context, req Request) ([]emit.Unit, error) {
	_, units, err := g.run(ctx, req)
	return units, err
}

// Adapters lists the registered adapter names.
func (g *Generator) Adapters() []string {
	if g.adapters == nil {
		return nil
	}
	return g.adapters.List()
}

func (g *Generator) run(ctx context.Context, req Request) (record.Document, []emit.Unit, error) {
	if ctx == nil {
		return record.Document{}, nil, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return record.Document{}, nil, err
	}
	if err := g.initialiseErr; err != nil {
		return record.Document{}, nil, err
	}

	doc, err := g.resolveDocument(ctx, req)
	if err != nil {
		return record.Document{}, nil, err
	}
	adapter, err := g.resolveAdapter(req, doc)
	if err != nil {
		return doc, nil, err
	}
	g.logger.Debug("resolved adapter", "source", doc.Location(), "adapter", adapter.Name())

	sel := record.Selection{TypeNames: req.TypeNames}
	if req.Interactive && !sel.Explicit() {
		if sel, err = g.interactiveSelection(ctx, adapter, doc); err != nil {
			return doc, nil, err
		}
	}

	descs, err := adapter.Records(ctx, doc, sel)
	if err != nil {
		return doc, nil, fmt.Errorf("generator: %w", err)
	}
	if len(descs) == 0 {
		return doc, nil, fmt.Errorf("%w in %s", ErrNoRecords, doc.Location())
	}

	units := make([]emit.Unit, 0, len(descs))
	for i := range descs {
		desc := descs[i]
		if err := g.applyTransformers(ctx, &desc); err != nil {
			return doc, nil, err
		}
		fields := g.classifier.Fields(desc)
		builder := g.synth.Builder(desc, fields)
		g.logger.Debug("synthesized builder",
			"record", desc.Name,
			"builder", builder.Name,
			"fields", len(fields),
			"mandatory", len(builder.Mandatory()),
		)
		units = append(units, emit.Unit{Record: desc, Fields: fields, Builder: builder})
	}
	return doc, units, nil
}

func (g *Generator) interactiveSelection(ctx context.Context, adapter record.Adapter, doc record.Document) (record.Selection, error) {
	if g.selector == nil {
		return record.Selection{}, errors.New("generator: interactive selection requires a selector")
	}
	names, err := candidates(ctx, adapter, doc)
	if err != nil {
		return record.Selection{}, fmt.Errorf("generator: list records: %w", err)
	}
	if len(names) == 0 {
		return record.Selection{}, fmt.Errorf("%w in %s", ErrNoRecords, doc.Location())
	}
	chosen, err := g.selector.Select(ctx, doc.Location(), names)
	if err != nil {
		return record.Selection{}, fmt.Errorf("generator: select records: %w", err)
	}
	if len(chosen) == 0 {
		return record.Selection{}, fmt.Errorf("%w in %s", ErrNoRecords, doc.Location())
	}
	return record.Selection{TypeNames: chosen}, nil
}

// OutputName derives the generated file name from the document location:
// models/user.go becomes user_builder.go and catalog.schema.json becomes
// catalog_builder.go. dir is the directory of local
// file sources and empty otherwise.
func OutputName(doc record.Document, suffix string) (name, dir string) {
	if suffix == "" {
		suffix = config.Default().Output.Suffix
	}
	loc := doc.Location()
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	base := path.Base(filepath.ToSlash(loc))
	base, _, _ = strings.Cut(base, ".")
	if base == "" || base == "." || base == "/" {
		base = "records"
	}
	if src := doc.Source(); src != nil && src.Kind() == record.SourceKindFile {
		dir = filepath.Dir(loc)
	}
	return base + suffix, dir
}

func (g *Generator) applyDefaults() {
	cfg := g.cfg
	if g.logger == nil {
		g.logger = logger.Nop()
	}
	if g.loader == nil {
		g.loader = internalloader.New(record.NewLoaderOptions())
	}
	if g.defaultAdapter == "" {
		g.defaultAdapter = cfg.Adapter
	}
	if g.adapters == nil {
		g.adapters = NewAdapterRegistry()
		g.adapters.MustRegister(goast.NewAdapter(internalgoast.New(goast.NewParserOptions(
			goast.WithDirective(cfg.Directive),
		))))
		g.adapters.MustRegister(descriptor.NewAdapter())
		g.adapters.MustRegister(openapi.NewAdapter(internalopenapi.New(openapi.NewParserOptions(
			openapi.WithPackage(cfg.OpenAPI.Package),
			openapi.WithWrapper(cfg.Wrapper, cfg.Runtime.Import),
			openapi.WithValidation(cfg.OpenAPI.Validate),
		))))
		g.adapters.MustRegister(jsonschema.NewAdapter(internaljsonschema.New(jsonschema.NewParserOptions(
			jsonschema.WithPackage(cfg.OpenAPI.Package),
			jsonschema.WithWrapper(cfg.Wrapper, cfg.Runtime.Import),
		))))
	}
	for _, adapter := range g.extraAdapters {
		if err := g.adapters.Register(adapter); err != nil {
			g.initialiseErr = err
			return
		}
	}
	if g.classifier == nil {
		g.classifier = classify.New(cfg.Wrapper)
	}
	if g.synth == nil {
		g.synth = synth.New(synth.Options{
			Suffix:            cfg.Builder.Suffix,
			ConstructorPrefix: cfg.Builder.ConstructorPrefix,
			RuntimeName:       cfg.Runtime.Name,
		})
	}
	if g.emitter == nil {
		e, err := emit.New(emit.Options{
			RuntimeName:   cfg.Runtime.Name,
			RuntimeImport: cfg.Runtime.Import,
			Header:        cfg.Output.Header,
		})
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: default emitter: %w", err)
			return
		}
		g.emitter = e
	}
}
