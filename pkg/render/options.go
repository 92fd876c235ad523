package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by parameter name,
	// overriding the defaults extracted from the model file.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by parameter
	// name, rendered as inline messages next to the offending control.
	Errors map[string][]string
	// Theme carries the resolved theme configuration, when a theme selector
	// is wired into the pipeline.
	Theme *ThemeConfig
}
