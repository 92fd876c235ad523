// Package customizer turns annotated parametric model files into structured
// parameter schemas and rendered customizer forms. The root package exposes
// the common entry points; pkg/ holds the composable pieces.
package customizer

import (
	"context"

	internalExtractor "github.com/goliatone/go-customizer/internal/scad/extractor"
	internalLoader "github.com/goliatone/go-customizer/internal/scad/loader"
	"github.com/goliatone/go-customizer/pkg/orchestrator"
	"github.com/goliatone/go-customizer/pkg/render"
	"github.com/goliatone/go-customizer/pkg/scad"
	theme "github.com/goliatone/go-theme"
)

// Schema is the structured description extracted from a model file.
type Schema = scad.Schema

// Parameter is one extracted parameter.
type Parameter = scad.Parameter

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...scad.LoaderOption) scad.Loader {
	return internalLoader.New(scad.NewLoaderOptions(options...))
}

// NewExtractor constructs a schema extractor backed by the internal
// implementation.
func NewExtractor(options ...scad.ExtractorOption) scad.Extractor {
	return internalExtractor.New(scad.NewExtractorOptions(options...))
}

// ExtractSchema parses annotated model source text directly. It never fails:
// malformed constructs degrade to plain parameters or are skipped, with
// warnings recorded on the schema.
func ExtractSchema(source string, options ...scad.ExtractorOption) Schema {
	return internalExtractor.New(scad.NewExtractorOptions(options...)).ExtractText(source)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers wiring custom pipelines.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the model source, extracts its schema, builds the form
// model and renders it using the named renderer. It is the simplest entry
// point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, source scad.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a form from a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc scad.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
