package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-customizer/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// defaultThemeFallbacks maps logical form partial slots to the built-in
// templates. Theme manifests override entries per slot.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.input":    "forms/input.tmpl",
		"forms.slider":   "forms/slider.tmpl",
		"forms.select":   "forms/select.tmpl",
		"forms.checkbox": "forms/checkbox.tmpl",
		"forms.color":    "forms/color.tmpl",
		"forms.file":     "forms/file.tmpl",
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*render.ThemeConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	return themeConfigFromSelection(selection, fallbacks), nil
}

// themeConfigFromSelection flattens a manifest plus the selected variant into
// the renderer-facing ThemeConfig. Variant entries win over the base
// manifest; fallback partials fill slots neither provides.
func themeConfigFromSelection(selection *theme.Selection, fallbacks map[string]string) *render.ThemeConfig {
	cfg := &render.ThemeConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   make(map[string]string),
		CSSVars:  make(map[string]string),
		Partials: make(map[string]string),
	}
	for slot, partial := range fallbacks {
		cfg.Partials[slot] = partial
	}

	assetPrefix := ""
	assetFiles := make(map[string]string)

	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
		for slot, partial := range manifest.Templates {
			cfg.Partials[slot] = partial
		}
		assetPrefix = manifest.Assets.Prefix
		for name, file := range manifest.Assets.Files {
			assetFiles[name] = file
		}

		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				cfg.Tokens[key] = value
			}
			for slot, partial := range variant.Templates {
				cfg.Partials[slot] = partial
			}
			if variant.Assets.Prefix != "" {
				assetPrefix = variant.Assets.Prefix
			}
			for name, file := range variant.Assets.Files {
				assetFiles[name] = file
			}
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = func(name string) string {
		file, ok := assetFiles[name]
		if !ok {
			return ""
		}
		if assetPrefix == "" {
			return file
		}
		return strings.TrimSuffix(assetPrefix, "/") + "/" + file
	}
	return cfg
}
