package render

// ThemeConfig is the renderer-facing projection of a theme selection. The
// orchestrator resolves manifests and variants into this flat shape so
// renderers never depend on the theme registry directly.
type ThemeConfig struct {
	// Theme and Variant echo the resolved selection.
	Theme   string
	Variant string
	// Tokens are the merged design tokens (base manifest plus variant
	// overrides).
	Tokens map[string]string
	// CSSVars mirrors Tokens with each key prefixed by "--" so templates can
	// emit a :root block directly.
	CSSVars map[string]string
	// Partials maps logical template slots to theme-provided template paths.
	Partials map[string]string
	// AssetURL resolves a logical asset name to a servable URL.
	AssetURL func(name string) string
}

// Asset resolves an asset name, returning "" when the theme does not provide
// a resolver.
func (c *ThemeConfig) Asset(name string) string {
	if c == nil || c.AssetURL == nil {
		return ""
	}
	return c.AssetURL(name)
}
