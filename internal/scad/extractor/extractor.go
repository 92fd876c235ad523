package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-customizer/pkg/scad"
)

// DefaultGroup is the synthetic group id used when the source attributes
// parameters to no section of its own.
const DefaultGroup = "General"

// Extractor implements scad.Extractor with a single left-to-right pass over
// the source text. Instances hold no mutable state between calls and are safe
// for concurrent use.
type Extractor struct {
	options scad.ExtractorOptions
}

var _ scad.Extractor = (*Extractor)(nil)

// New constructs an Extractor from pre-resolved options.
func New(options scad.ExtractorOptions) *Extractor {
	if options.Libraries == nil {
		options.Libraries = NewLibraryDetector()
	}
	return &Extractor{options: options}
}

// Extract recovers the parameter schema from a document. Malformed input
// never fails the scan; the only error path is context cancellation.
func (e *Extractor) Extract(ctx context.Context, doc scad.Document) (scad.Schema, error) {
	if err := ctx.Err(); err != nil {
		return scad.Schema{}, err
	}
	return e.ExtractText(doc.Text()), nil
}

// ExtractText is the pure-function entry point over raw source text.
func (e *Extractor) ExtractText(source string) scad.Schema {
	return e.scan(source)
}

// pass is the accumulator threaded through the line scan. Keeping every
// counter here makes the extractor reentrant: nothing escapes the call.
type pass struct {
	inBlockComment bool
	scopeDepth     int
	group          string
	hidden         bool
	comment        []string
	groupOrder     int
	paramOrder     int
	groups         []scad.Group
	registered     map[string]bool
	params         map[string]scad.Parameter
	warnings       []scad.Warning
}

var (
	groupHeaderPattern = regexp.MustCompile(`^\s*/\*\s*\[(.*?)\]\s*\*/\s*$`)
	lineCommentPattern = regexp.MustCompile(`^\s*//\s?(.*)$`)
	assignHeadPattern  = regexp.MustCompile(`^\s*(\$?[A-Za-z_][A-Za-z0-9_]*)\s*=\s*`)

	trailingHintPattern    = regexp.MustCompile(`//\s*\[(.+?)\](.*)$`)
	trailingCommentPattern = regexp.MustCompile(`//\s*(.*)$`)
)

func (e *Extractor) scan(source string) scad.Schema {
	p := &pass{
		registered: make(map[string]bool),
		params:     make(map[string]scad.Parameter),
	}

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNo := i + 1
		top := p.scopeDepth == 0 && !p.inBlockComment

		switch {
		case top && groupHeaderPattern.MatchString(line):
			e.applyGroupHeader(p, line)
		case top && lineCommentPattern.MatchString(line):
			captureComment(p, line)
		case top && e.tryAssignment(p, line, lineNo):
			// parameter emitted, or swallowed by the Hidden section
		default:
			// anything else interrupts a pending description, unless the
			// line is the continuation of a carried block comment
			if !p.inBlockComment {
				p.comment = nil
			}
		}

		stripped, inBlock := stripLine(line, p.inBlockComment)
		p.inBlockComment = inBlock
		depth, underflow := braceDelta(stripped, p.scopeDepth)
		p.scopeDepth = depth
		if underflow {
			e.warn(p, scad.Warning{
				Kind:    scad.WarningUnbalancedBrace,
				Line:    lineNo,
				Message: "closing brace without matching open; depth clamped at zero",
			})
		}
	}

	if p.inBlockComment {
		e.warn(p, scad.Warning{
			Kind:    scad.WarningUnterminatedBlock,
			Message: "block comment still open at end of input",
		})
	}

	return e.assemble(p, source)
}

func (e *Extractor) applyGroupHeader(p *pass, line string) {
	label := strings.TrimSpace(groupHeaderPattern.FindStringSubmatch(line)[1])
	p.comment = nil

	if strings.EqualFold(label, scad.HiddenGroup) {
		p.hidden = true
		p.group = ""
		return
	}

	p.hidden = false
	p.group = label
	if !p.registered[label] {
		p.registered[label] = true
		p.groups = append(p.groups, scad.Group{ID: label, Label: label, Order: p.groupOrder})
		p.groupOrder++
	}
}

func captureComment(p *pass, line string) {
	text := strings.TrimSpace(lineCommentPattern.FindStringSubmatch(line)[1])
	if text == "" {
		return
	}
	// hint-bearing comment lines never feed a description
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return
	}
	p.comment = append(p.comment, text)
}

// tryAssignment recognises `identifier = value;` at top level, classifies the
// value, applies the trailing hint plus unit/dependency heuristics, and
// records the parameter. It reports whether the line was consumed.
func (e *Extractor) tryAssignment(p *pass, line string, lineNo int) bool {
	head := assignHeadPattern.FindStringSubmatch(line)
	if head == nil {
		return false
	}
	rest := line[len(head[0]):]
	if strings.HasPrefix(rest, "=") {
		// comparison, not an assignment
		return false
	}
	valueText, trailing, ok := splitValue(rest)
	if !ok {
		return false
	}

	pending := strings.Join(p.comment, " ")
	p.comment = nil

	if p.hidden {
		return true
	}

	name := head[1]
	paramType, defaultValue := classifyDefault(valueText)

	param := scad.Parameter{
		Name:    name,
		Type:    paramType,
		Default: defaultValue,
		Group:   p.group,
		Order:   p.paramOrder,
		UIType:  scad.UITypeInput,
	}
	p.paramOrder++

	if pending != "" {
		param.Description = pending
	}

	trailingText := applyTrailingComment(&param, trailing)

	if dep := extractDependency(pending + " " + trailingText); dep != nil {
		param.Dependency = dep
	}
	param.Description = stripDependencyDirective(param.Description)

	if unit := inferUnit(param); unit != "" {
		param.Unit = unit
	}

	if _, exists := p.params[name]; exists {
		e.warn(p, scad.Warning{
			Kind:    scad.WarningDuplicateParameter,
			Line:    lineNo,
			Message: fmt.Sprintf("parameter %q redeclared; the later assignment wins", name),
		})
	}
	p.params[name] = param
	return true
}

// splitValue scans for the terminating semicolon, skipping quoted content,
// and returns the value text plus whatever follows the semicolon. A comment
// opening before the terminator means the line is not a complete assignment.
func splitValue(rest string) (value, trailing string, ok bool) {
	var quote byte
	escaped := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
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
		switch c {
		case '"', '\'':
			quote = c
		case ';':
			return rest[:i], rest[i+1:], true
		case '/':
			if i+1 < len(rest) && (rest[i+1] == '/' || rest[i+1] == '*') {
				return "", "", false
			}
		}
	}
	return "", "", false
}

// applyTrailingComment interprets the annotation after the assignment's
// semicolon: a bracketed hint, a plain descriptive comment, or nothing. It
// returns the raw comment text so the dependency scan can see it too.
func applyTrailingComment(param *scad.Parameter, trailing string) string {
	if match := trailingHintPattern.FindStringSubmatch(trailing); match != nil {
		applyHint(param, parseHint(match[1]), strings.TrimSpace(match[2]))
		return strings.TrimSpace(match[2])
	}
	if match := trailingCommentPattern.FindStringSubmatch(trailing); match != nil {
		text := strings.TrimSpace(match[1])
		if text != "" {
			param.Description = text
		}
		return text
	}
	return ""
}

func applyHint(param *scad.Parameter, h hint, afterText string) {
	switch h.kind {
	case hintColor:
		param.Type = scad.ParamTypeColor
		param.UIType = scad.UITypeColor
	case hintFile:
		param.Type = scad.ParamTypeFile
		param.UIType = scad.UITypeFile
		param.AcceptedExtensions = h.extensions
	case hintRange:
		param.UIType = scad.UITypeSlider
		minimum, maximum := h.minimum, h.maximum
		param.Minimum = &minimum
		param.Maximum = &maximum
		if h.step != nil {
			step := *h.step
			param.Step = &step
			if isIntegerLiteral(h.stepText) {
				param.Type = scad.ParamTypeInteger
			} else {
				param.Type = scad.ParamTypeNumber
			}
		}
		if afterText != "" {
			param.Description = afterText
		}
	case hintEnum:
		param.Type = scad.ParamTypeString
		param.Enum = h.options
		if isYesNoToggle(h.options) {
			param.UIType = scad.UITypeToggle
		} else {
			param.UIType = scad.UITypeSelect
		}
		if afterText != "" {
			param.Description = afterText
		}
	}
}

// assemble finalises the accumulator into an immutable schema: parameters
// declared before any section header are attributed to the synthetic General
// group, which then occupies the first-appearance slot.
func (e *Extractor) assemble(p *pass, source string) scad.Schema {
	needsDefault := len(p.groups) == 0
	for _, param := range p.params {
		if param.Group == "" {
			needsDefault = true
			break
		}
	}

	groups := p.groups
	if needsDefault {
		groups = append([]scad.Group{{ID: DefaultGroup, Label: DefaultGroup}}, groups...)
		for i := range groups {
			groups[i].Order = i
		}
		for name, param := range p.params {
			if param.Group == "" {
				param.Group = DefaultGroup
				p.params[name] = param
			}
		}
	}

	return scad.Schema{
		Groups:     groups,
		Parameters: p.params,
		Libraries:  e.options.Libraries.Detect(source),
		Warnings:   p.warnings,
	}
}

func (e *Extractor) warn(p *pass, w scad.Warning) {
	p.warnings = append(p.warnings, w)
	if e.options.OnWarning != nil {
		e.options.OnWarning(w)
	}
}
