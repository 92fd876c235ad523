package extractor

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-customizer/pkg/scad"
)

var dependsPattern = regexp.MustCompile(`(?i)@depends\(\s*(\$?[A-Za-z_][A-Za-z0-9_]*)\s*(==|!=)\s*(\S+?)\s*\)`)

// extractDependency scans comment text for a visibility directive of the form
// `@depends(name == value)`. The value token is preserved verbatim; coercion
// and comparison semantics belong to the consuming UI.
func extractDependency(comment string) *scad.Dependency {
	match := dependsPattern.FindStringSubmatch(comment)
	if match == nil {
		return nil
	}
	return &scad.Dependency{
		Parameter: match[1],
		Operator:  match[2],
		Value:     match[3],
	}
}

// stripDependencyDirective removes the directive from description text so UI
// labels do not repeat it.
func stripDependencyDirective(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(dependsPattern.ReplaceAllString(text, ""))
}
