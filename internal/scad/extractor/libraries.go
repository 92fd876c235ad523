package extractor

import (
	"regexp"
	"sort"

	"github.com/goliatone/go-customizer/pkg/scad"
)

// DefaultLibraryRegistry lists the geometry libraries the detector knows
// about, keyed by the identifier used in include/use directives.
var DefaultLibraryRegistry = []string{
	"BOSL",
	"BOSL2",
	"MCAD",
	"NopSCADlib",
	"Round-Anything",
	"dotSCAD",
	"threads",
}

var includePattern = regexp.MustCompile(`(?m)^\s*(?:include|use)\s*<([^>/]+)/[^>]*>`)

// LibraryDetector scans include/use directives against a fixed registry and
// returns the referenced subset.
type LibraryDetector struct {
	registry map[string]struct{}
}

var _ scad.LibraryDetector = (*LibraryDetector)(nil)

// NewLibraryDetector builds a detector for the given registry; an empty call
// selects the defaults.
func NewLibraryDetector(registry ...string) *LibraryDetector {
	if len(registry) == 0 {
		registry = DefaultLibraryRegistry
	}
	known := make(map[string]struct{}, len(registry))
	for _, id := range registry {
		known[id] = struct{}{}
	}
	return &LibraryDetector{registry: known}
}

// Detect returns the known library identifiers referenced by the source,
// sorted for deterministic output.
func (d *LibraryDetector) Detect(source string) []string {
	seen := make(map[string]struct{})
	for _, match := range includePattern.FindAllStringSubmatch(source, -1) {
		id := match[1]
		if _, known := d.registry[id]; known {
			seen[id] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
