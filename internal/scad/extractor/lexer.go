package extractor

import "strings"

// stripLine blanks string-literal and comment content from a raw line so
// downstream brace counting and pattern matching cannot be confused by braces
// inside strings or comments. It returns the stripped text and whether
// block-comment state carries into the next line.
//
// Strings are single or double quoted and backslash-escapable; they do not
// span lines in this grammar, so an unterminated string simply blanks the
// remainder of the line.
func stripLine(line string, inBlock bool) (string, bool) {
	i := 0
	if inBlock {
		idx := strings.Index(line, "*/")
		if idx < 0 {
			return "", true
		}
		i = idx + 2
	}

	var out strings.Builder
	var quote byte
	escaped := false

	for ; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
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
		switch {
		case c == '\'' || c == '"':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return out.String(), false
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			idx := strings.Index(line[i+2:], "*/")
			if idx < 0 {
				return out.String(), true
			}
			i += 2 + idx + 1
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), false
}

// braceDelta applies the scope transitions found on a stripped line. depth is
// the value at line entry; the result is clamped at zero, with underflow
// reported so the assembler can surface a warning instead of going negative.
func braceDelta(stripped string, depth int) (int, bool) {
	underflow := false
	for i := 0; i < len(stripped); i++ {
		switch stripped[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				underflow = true
				continue
			}
			depth--
		}
	}
	return depth, underflow
}
