package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"

	golangparser "github.com/goliatone/go-buildergen/internal/golang"
	internalloader "github.com/goliatone/go-buildergen/internal/loader"
	openapiparser "github.com/goliatone/go-buildergen/internal/openapi/parser"
	"github.com/goliatone/go-buildergen/internal/yamlschema"
	"github.com/goliatone/go-buildergen/pkg/logger"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/renderers/manifest"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const defaultRendererName = golang.Name

// ErrNoStructs is returned by Generate when the selection is empty, e.g. a Go
// file without marked structs. Package mode treats it as "nothing to do".
var ErrNoStructs = errors.New("orchestrator: no structs selected")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLoaderOptions configures the built-in loader. Ignored when WithLoader
// is used.
func WithLoaderOptions(options ...schema.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = append(o.loaderOptions, options...)
	}
}

// WithParser registers a parser for format, replacing the built-in one.
func WithParser(format schema.Format, parser schema.Parser) Option {
	return func(o *Orchestrator) {
		if o.parserOverrides == nil {
			o.parserOverrides = make(map[schema.Format]schema.Parser)
		}
		o.parserOverrides[format] = parser
	}
}

// WithParserOptions configures the built-in frontends.
func WithParserOptions(options ...schema.ParserOption) Option {
	return func(o *Orchestrator) {
		o.parserOptions = append(o.parserOptions, options...)
	}
}

// WithModelBuilder injects a custom plan builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithBuilderOptions configures the built-in plan builder. Ignored when
// WithModelBuilder is used.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, options...)
	}
}

// WithRendererOptions configures the built-in Go renderer. Ignored when
// WithRegistry supplies the renderers.
func WithRendererOptions(options ...golang.Option) Option {
	return func(o *Orchestrator) {
		o.rendererOptions = append(o.rendererOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that rewrites the parsed schema
// before structs are selected and planned.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the planned builders
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger injects the logger used for pipeline diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// Orchestrator coordinates the pipeline from schema source to rendered
// output. It is safe for concurrent use once New returns.
type Orchestrator struct {
	loader          schema.Loader
	loaderOptions   []schema.LoaderOption
	parsers         *ParserRegistry
	parserOverrides map[schema.Format]schema.Parser
	parserOptions   []schema.ParserOption
	builder         model.Builder
	builderOptions  []model.BuilderOption
	registry        *render.Registry
	rendererOptions []golang.Option
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	logger          logger.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document or File is supplied.
	Source schema.Source

	// Document bypasses the loader.
	Document *schema.Document

	// File bypasses loader and parser.
	File *schema.File

	// Format selects the frontend. Empty detects it from the document.
	Format schema.Format

	// Types names the structs to generate. Empty selects the marked ones.
	Types []string

	// SkipUnknownTypes drops the Types the document does not declare instead
	// of failing. When none remain the selection is empty.
	SkipUnknownTypes bool

	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	RenderOptions render.RenderOptions
}

// Parse resolves the request down to the schema file, after the transformer
// ran but before selection.
func (o *Orchestrator) Parse(ctx context.Context, req Request) (schema.File, error) {
	if err := o.ready(ctx); err != nil {
		return schema.File{}, err
	}
	return o.parse(ctx, req)
}

// Plan returns the decorated builder plans for the selected structs.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (model.File, error) {
	if err := o.ready(ctx); err != nil {
		return model.File{}, err
	}

	file, err := o.parse(ctx, req)
	if err != nil {
		return model.File{}, err
	}

	types := req.Types
	if req.SkipUnknownTypes && len(types) > 0 {
		types = slices.DeleteFunc(slices.Clone(types), func(name string) bool {
			_, ok := file.Lookup(name)
			return !ok
		})
		if len(types) == 0 {
			o.logger.Debug("requested structs not declared", "location", file.Path, "types", req.Types)
			return model.File{Package: file.Package, Source: file.Path}, nil
		}
	}

	selected, err := file.Select(types...)
	if err != nil {
		return model.File{}, fmt.Errorf("orchestrator: select structs: %w", err)
	}
	o.logger.Debug("selected structs", "location", file.Path, "structs", selected.Names())

	plans, err := o.builder.BuildFile(selected)
	if err != nil {
		return model.File{}, fmt.Errorf("orchestrator: build plans: %w", err)
	}
	if err := o.applyDecorators(&plans); err != nil {
		return model.File{}, err
	}
	return plans, nil
}

// Generate executes loader, parser, plan builder and renderer in sequence and
// returns the rendered bytes (Go source for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	plans, err := o.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(plans.Builders) == 0 {
		return nil, ErrNoStructs
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, plans, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("rendered builders", "renderer", renderer.Name(), "builders", len(plans.Builders), "bytes", len(output))
	return output, nil
}

// Renderer resolves a renderer the way Generate does, so callers can pick
// output file extensions before rendering.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.rendererFor(name)
}

// RendererForPath picks the renderer claiming the extension of path.
func (o *Orchestrator) RendererForPath(path string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	return o.registry.ForPath(path)
}

// Renderers describes the registered renderers.
func (o *Orchestrator) Renderers() []render.Info {
	if o.registry == nil {
		return nil
	}
	return o.registry.Describe()
}

// Formats lists the formats with a registered parser.
func (o *Orchestrator) Formats() []string {
	return o.parsers.List()
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) parse(ctx context.Context, req Request) (schema.File, error) {
	var file schema.File
	if req.File != nil {
		file = *req.File
	} else {
		doc, err := o.resolveDocument(ctx, req)
		if err != nil {
			return schema.File{}, err
		}

		format := req.Format
		if format == "" {
			format, err = doc.DetectFormat()
			if err != nil {
				return schema.File{}, fmt.Errorf("orchestrator: %w", err)
			}
		}

		parser, err := o.parsers.Get(format)
		if err != nil {
			return schema.File{}, err
		}

		file, err = parser.Parse(ctx, doc)
		if err != nil {
			return schema.File{}, fmt.Errorf("orchestrator: parse %s: %w", doc.Location(), err)
		}
		o.logger.Debug("parsed document", "location", doc.Location(), "format", string(format), "structs", len(file.Structs))
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &file); err != nil {
			return schema.File{}, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
	}
	return file, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(file *model.File) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(file); err != nil {
			return fmt.Errorf("orchestrator: decorate plans: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	if o.loader == nil {
		o.loader = internalloader.New(schema.NewLoaderOptions(o.loaderOptions...))
	}

	o.parsers = NewParserRegistry()
	parserOptions := schema.NewParserOptions(o.parserOptions...)
	defaults := map[schema.Format]schema.Parser{
		schema.FormatGo:      golangparser.New(parserOptions),
		schema.FormatYAML:    yamlschema.New(parserOptions),
		schema.FormatOpenAPI: openapiparser.New(parserOptions),
	}
	for format, parser := range defaults {
		if override, ok := o.parserOverrides[format]; ok {
			parser = override
		}
		if err := o.parsers.Register(format, parser); err != nil {
			o.initialiseErr = err
			return
		}
	}
	for format, parser := range o.parserOverrides {
		if o.parsers.Has(format) {
			continue
		}
		if err := o.parsers.Register(format, parser); err != nil {
			o.initialiseErr = err
			return
		}
	}

	if o.builder == nil {
		o.builder = model.NewBuilder(o.builderOptions...)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := golang.New(o.rendererOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(manifest.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
