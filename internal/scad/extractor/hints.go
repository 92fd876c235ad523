package extractor

import (
	"strconv"
	"strings"
)

type hintKind int

const (
	hintColor hintKind = iota
	hintFile
	hintRange
	hintEnum
)

// hint is the tagged result of interpreting a bracketed annotation.
type hint struct {
	kind       hintKind
	extensions []string
	minimum    float64
	maximum    float64
	step       *float64
	stepText   string
	options    []string
}

// hintMatchers lists the interpretation rules in precedence order. The
// enumeration matcher accepts any input, so malformed range hints fall
// through to it instead of erroring.
var hintMatchers = []struct {
	name  string
	match func(text string) (hint, bool)
}{
	{"color", matchColorHint},
	{"file", matchFileHint},
	{"range", matchRangeHint},
	{"enum", matchEnumHint},
}

func parseHint(text string) hint {
	for _, matcher := range hintMatchers {
		if h, ok := matcher.match(text); ok {
			return h
		}
	}
	return hint{kind: hintEnum}
}

func matchColorHint(text string) (hint, bool) {
	if strings.EqualFold(strings.TrimSpace(text), "color") {
		return hint{kind: hintColor}, true
	}
	return hint{}, false
}

func matchFileHint(text string) (hint, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 4 || !strings.EqualFold(trimmed[:4], "file") {
		return hint{}, false
	}
	h := hint{kind: hintFile}
	if idx := strings.Index(trimmed, ":"); idx >= 0 {
		for _, ext := range strings.Split(trimmed[idx+1:], ",") {
			ext = strings.TrimSpace(ext)
			if ext != "" {
				h.extensions = append(h.extensions, ext)
			}
		}
	}
	return h, true
}

func matchRangeHint(text string) (hint, bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return hint{}, false
	}
	values := make([]float64, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return hint{}, false
		}
		values[i] = value
	}

	h := hint{kind: hintRange, minimum: values[0]}
	if len(parts) == 2 {
		h.maximum = values[1]
		return h, true
	}
	step := values[1]
	h.step = &step
	h.stepText = strings.TrimSpace(parts[1])
	h.maximum = values[2]
	return h, true
}

func matchEnumHint(text string) (hint, bool) {
	return hint{kind: hintEnum, options: splitEnumOptions(text)}, true
}

// splitEnumOptions splits on commas outside quoted substrings. Quotes are
// escape-aware and must match to close; quoted tokens are unwrapped after the
// split so `"a, b", c` yields exactly ["a, b", "c"].
func splitEnumOptions(text string) []string {
	var options []string
	var current strings.Builder
	var quote byte
	escaped := false

	flush := func() {
		token := strings.TrimSpace(current.String())
		current.Reset()
		if token == "" {
			return
		}
		if inner, ok := unquote(token); ok {
			token = inner
		}
		if token != "" {
			options = append(options, token)
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			current.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			current.WriteByte(c)
		case ',':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return options
}

func isIntegerLiteral(text string) bool {
	if strings.Contains(text, ".") {
		return false
	}
	_, err := strconv.ParseInt(text, 10, 64)
	return err == nil
}

func isYesNoToggle(options []string) bool {
	if len(options) != 2 {
		return false
	}
	a := strings.ToLower(options[0])
	b := strings.ToLower(options[1])
	return (a == "yes" && b == "no") || (a == "no" && b == "yes")
}
