// Package vanilla renders a form model as dependency-free HTML. Output is a
// single <form> element meant to be embedded by a host page; visibility
// rules surface as data attributes a small runtime script can honor.
package vanilla

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-customizer/pkg/model"
	"github.com/goliatone/go-customizer/pkg/render"
	"github.com/goliatone/go-customizer/pkg/render/template"
	"github.com/goliatone/go-customizer/pkg/render/template/pongo"
)

//go:embed templates
var templatesFS embed.FS

// Name identifies this renderer inside a render.Registry.
const Name = "vanilla"

// Renderer renders HTML through a template engine. The default engine loads
// the embedded templates; hosts can swap in their own.
type Renderer struct {
	engine       template.Renderer
	templateName string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplateRenderer replaces the embedded template engine.
func WithTemplateRenderer(engine template.Renderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplateName overrides the entry template, "form" by default.
func WithTemplateName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.templateName = name
		}
	}
}

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{templateName: "form"}
	for _, opt := range options {
		opt(r)
	}

	if r.engine == nil {
		sub, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("vanilla: embedded templates: %w", err)
		}
		engine, err := pongo.New(pongo.WithFS(sub))
		if err != nil {
			return nil, fmt.Errorf("vanilla: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := buildContext(form, options)
	if err != nil {
		return nil, err
	}

	out, err := r.engine.Render(r.templateName, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla: render form: %w", err)
	}
	return []byte(out), nil
}

// buildContext projects the form through JSON so templates address fields by
// their wire names, then folds request values and validation errors into
// each field.
func buildContext(form model.FormModel, options render.RenderOptions) (map[string]any, error) {
	raw, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("vanilla: encode form: %w", err)
	}
	var view map[string]any
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("vanilla: decode form: %w", err)
	}

	groups, _ := view["groups"].([]any)
	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		fields, _ := group["fields"].([]any)
		for _, f := range fields {
			field, ok := f.(map[string]any)
			if !ok {
				continue
			}
			decorateField(field, options)
		}
	}

	data := map[string]any{
		"form": view,
	}
	if options.Theme != nil {
		data["theme"] = map[string]any{
			"name":     options.Theme.Theme,
			"variant":  options.Theme.Variant,
			"tokens":   options.Theme.Tokens,
			"css_vars": options.Theme.CSSVars,
		}
		data["asset"] = options.Theme.Asset
	}
	return data, nil
}

func decorateField(field map[string]any, options render.RenderOptions) {
	name, _ := field["name"].(string)

	value := field["default"]
	if override, ok := options.Values[name]; ok {
		value = override
	}
	field["value"] = value

	if messages, ok := options.Errors[name]; ok && len(messages) > 0 {
		field["errors"] = messages
	}

	if _, ok := field["step"]; !ok {
		field["step"] = "any"
	}

	if exts, ok := field["acceptedExtensions"].([]any); ok && len(exts) > 0 {
		parts := make([]string, 0, len(exts))
		for _, ext := range exts {
			if s, ok := ext.(string); ok && s != "" {
				parts = append(parts, "."+strings.TrimPrefix(s, "."))
			}
		}
		field["accept"] = strings.Join(parts, ",")
	}
}
