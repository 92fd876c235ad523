package extractor

import (
	"regexp"

	"github.com/goliatone/go-customizer/pkg/scad"
)

// unitRule pairs a compiled pattern with the unit it implies. Rules are
// evaluated in order; the first match wins.
type unitRule struct {
	pattern *regexp.Regexp
	unit    string
}

var descriptionUnitRules = []unitRule{
	{regexp.MustCompile(`(?i)\bmm\b|\bmillimeters?\b`), "mm"},
	{regexp.MustCompile(`(?i)\bcm\b|\bcentimeters?\b`), "cm"},
	{regexp.MustCompile(`(?i)\bdeg\b|\bdegrees?\b|°`), "°"},
	{regexp.MustCompile(`(?i)\bin\b|\binch(es)?\b`), "in"},
	{regexp.MustCompile(`(?i)%|\bpercent\b`), "%"},
}

var (
	angleNamePattern = regexp.MustCompile(`(?i)angle|rotation|twist|tilt`)
	lengthSuffixes   = regexp.MustCompile(`(?i)(_width|_height|_depth|_thickness|_diameter|_radius|_length|_size)$`)
	// "size" on its own says nothing about dimension, so it only counts as a
	// suffix, never as an exact name.
	lengthExactNames = regexp.MustCompile(`(?i)^(width|height|depth|thickness|diameter|radius|length)$`)
)

// inferUnit tags numeric parameters with a measurement unit. Description text
// takes precedence over name heuristics; an empty result means no unit.
func inferUnit(param scad.Parameter) string {
	if param.Type != scad.ParamTypeInteger && param.Type != scad.ParamTypeNumber {
		return ""
	}
	if param.Description != "" {
		for _, rule := range descriptionUnitRules {
			if rule.pattern.MatchString(param.Description) {
				return rule.unit
			}
		}
	}
	if angleNamePattern.MatchString(param.Name) {
		return "°"
	}
	if lengthSuffixes.MatchString(param.Name) || lengthExactNames.MatchString(param.Name) {
		return "mm"
	}
	return ""
}
