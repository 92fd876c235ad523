package tui

import "github.com/goliatone/go-customizer/pkg/visibility"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits an application/json parameter payload.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly "name = value" summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithVisibilityEvaluator replaces the evaluator used to decide whether a
// conditional field should be prompted at all.
func WithVisibilityEvaluator(eval visibility.Evaluator) Option {
	return func(r *Renderer) {
		if eval != nil {
			r.visibility = eval
		}
	}
}
