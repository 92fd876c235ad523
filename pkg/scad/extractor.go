package scad

import "context"

// Extractor recovers a parameter Schema from an annotated model document. The
// scan tolerates arbitrarily malformed input; implementations only return an
// error for cancelled contexts.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (Schema, error)
}

// LibraryDetector reports which known geometry libraries a model source
// references through include/use directives.
type LibraryDetector interface {
	Detect(source string) []string
}

// LibraryDetectorFunc adapts a function into a LibraryDetector.
type LibraryDetectorFunc func(source string) []string

// Detect delegates to the underlying function.
func (fn LibraryDetectorFunc) Detect(source string) []string {
	return fn(source)
}

// WarningHandler receives soft-failure notices as the scan encounters them.
// The same warnings are also collected on the returned Schema.
type WarningHandler func(Warning)

// ExtractorOptions configures schema extraction.
type ExtractorOptions struct {
	// Libraries overrides the library detector. Nil selects the built-in
	// detector with the default registry.
	Libraries LibraryDetector

	// OnWarning, when set, is invoked for every warning during the scan.
	OnWarning WarningHandler
}

// ExtractorOption mutates ExtractorOptions during construction.
type ExtractorOption func(*ExtractorOptions)

// WithLibraryDetector injects a custom library detector.
func WithLibraryDetector(detector LibraryDetector) ExtractorOption {
	return func(opts *ExtractorOptions) {
		opts.Libraries = detector
	}
}

// WithWarningHandler registers a callback for scan warnings.
func WithWarningHandler(handler WarningHandler) ExtractorOption {
	return func(opts *ExtractorOptions) {
		opts.OnWarning = handler
	}
}

// NewExtractorOptions applies ExtractorOption functions and returns the
// resulting configuration.
func NewExtractorOptions(options ...ExtractorOption) ExtractorOptions {
	cfg := ExtractorOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
