package extractor

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-customizer/pkg/scad"
)

// classifyDefault infers a parameter's type from the literal text on the
// right-hand side of its assignment. Anything unrecognised falls back to the
// raw trimmed token as a string, so malformed values never fail the scan.
func classifyDefault(raw string) (scad.ParamType, any) {
	trimmed := strings.TrimSpace(raw)

	if inner, ok := unquote(trimmed); ok {
		return scad.ParamTypeString, inner
	}
	if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if !strings.Contains(trimmed, ".") && value == float64(int64(value)) {
			return scad.ParamTypeInteger, int64(value)
		}
		return scad.ParamTypeNumber, value
	}
	switch trimmed {
	case "true":
		return scad.ParamTypeBoolean, true
	case "false":
		return scad.ParamTypeBoolean, false
	}
	return scad.ParamTypeString, trimmed
}

// unquote reports whether text is fully wrapped in one matching pair of
// single or double quotes, returning the unescaped content when it is. A
// quote that closes before the end of the text does not count as a wrapper.
func unquote(text string) (string, bool) {
	if len(text) < 2 {
		return "", false
	}
	quote := text[0]
	if quote != '"' && quote != '\'' {
		return "", false
	}
	if text[len(text)-1] != quote {
		return "", false
	}

	var out strings.Builder
	escaped := false
	for i := 1; i < len(text); i++ {
		c := text[i]
		if escaped {
			out.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == quote {
			return out.String(), i == len(text)-1
		}
		out.WriteByte(c)
	}
	return "", false
}
