// Package orchestrator coordinates the full pipeline from annotated model
// source to rendered output: load, extract, build the form model, decorate,
// resolve the theme, render.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	internalExtractor "github.com/goliatone/go-customizer/internal/scad/extractor"
	internalLoader "github.com/goliatone/go-customizer/internal/scad/loader"
	"github.com/goliatone/go-customizer/pkg/model"
	"github.com/goliatone/go-customizer/pkg/render"
	"github.com/goliatone/go-customizer/pkg/renderers/vanilla"
	"github.com/goliatone/go-customizer/pkg/scad"
	"github.com/goliatone/go-customizer/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = vanilla.Name

// ModelBuilder converts an extracted schema into a form model.
type ModelBuilder interface {
	Build(schema scad.Schema, title string) (model.FormModel, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader scad.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithExtractor injects a custom schema extractor.
func WithExtractor(extractor scad.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder ModelBuilder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
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

// WithDecorators registers decorators that run against the generated form
// model before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgetRegistry replaces the widget registry used to resolve field
// controls. Pass nil to disable widget resolution entirely.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
		o.widgetsSpecified = true
	}
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request does not
// name one.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the pipeline. Missing dependencies are filled in
// with the built-in implementations so callers can start with a single
// constructor call.
type Orchestrator struct {
	loader           scad.Loader
	extractor        scad.Extractor
	builder          ModelBuilder
	registry         *render.Registry
	defaultRenderer  string
	decorators       []model.Decorator
	widgets          *widgets.Registry
	widgetsSpecified bool

	themeSelector  theme.ThemeSelector
	themeFallbacks map[string]string
	defaultTheme   string
	defaultVariant string

	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
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

// Request describes the inputs required to render a customizer form from an
// annotated model file.
type Request struct {
	// Source identifies where the model source lives. Optional when Document
	// is supplied.
	Source scad.Source

	// Document allows callers to bypass the loader when they already have the
	// source bytes.
	Document *scad.Document

	// Title labels the rendered form. Defaults to the document's file name.
	Title string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is wired in.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values, validation errors, or a
	// pre-resolved theme.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → extractor → model builder → renderer
// sequence and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	schema, err := o.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: extract schema: %w", err)
	}

	form, err := o.builder.Build(schema, titleFor(req, doc))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyDecorators(&form); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		options.Theme, err = o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Schema runs only the load and extract stages.
func (o *Orchestrator) Schema(ctx context.Context, req Request) (scad.Schema, error) {
	if ctx == nil {
		return scad.Schema{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return scad.Schema{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return scad.Schema{}, err
	}
	schema, err := o.extractor.Extract(ctx, doc)
	if err != nil {
		return scad.Schema{}, fmt.Errorf("orchestrator: extract schema: %w", err)
	}
	return schema, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (scad.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return scad.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return scad.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
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
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(scad.NewLoaderOptions())
	}
	if o.extractor == nil {
		o.extractor = internalExtractor.New(scad.NewExtractorOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if !o.widgetsSpecified {
		o.widgets = widgets.NewRegistry()
	}
	if o.widgets != nil {
		// Widget resolution runs before caller-supplied decorators.
		o.decorators = append([]model.Decorator{o.widgets}, o.decorators...)
	}

	o.defaultsApplied = true
}

func titleFor(req Request, doc scad.Document) string {
	if req.Title != "" {
		return req.Title
	}
	location := doc.Location()
	if location == "" {
		return ""
	}
	base := path.Base(strings.ReplaceAll(location, "\\", "/"))
	return model.Humanize(strings.TrimSuffix(base, path.Ext(base)))
}
