package scad

import "sort"

// ParamType enumerates the value types the extractor can infer for a
// customizer parameter.
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeInteger ParamType = "integer"
	ParamTypeNumber  ParamType = "number"
	ParamTypeBoolean ParamType = "boolean"
	ParamTypeColor   ParamType = "color"
	ParamTypeFile    ParamType = "file"
)

// UIType enumerates the widget kinds an annotation hint can select.
type UIType string

const (
	UITypeInput  UIType = "input"
	UITypeSlider UIType = "slider"
	UITypeSelect UIType = "select"
	UITypeToggle UIType = "toggle"
	UITypeColor  UIType = "color"
	UITypeFile   UIType = "file"
)

// HiddenGroup is the reserved section label. Parameters declared under it are
// parsed for scope tracking but excluded from the schema, and the group itself
// is never registered. Matching is case-insensitive.
const HiddenGroup = "Hidden"

// Group is a named, ordered section of parameters corresponding to a
// `/* [Label] */` header in the source.
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Dependency captures a `@depends(name == value)` visibility directive. Value
// is stored as the raw token; comparison semantics belong to the consuming UI.
type Dependency struct {
	Parameter string `json:"parameter"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// Parameter describes a single customizable value recovered from a top-level
// assignment and its surrounding annotations.
type Parameter struct {
	Name               string      `json:"name"`
	Type               ParamType   `json:"type"`
	Default            any         `json:"default"`
	Group              string      `json:"group"`
	Order              int         `json:"order"`
	Description        string      `json:"description,omitempty"`
	UIType             UIType      `json:"uiType"`
	Unit               string      `json:"unit,omitempty"`
	Minimum            *float64    `json:"minimum,omitempty"`
	Maximum            *float64    `json:"maximum,omitempty"`
	Step               *float64    `json:"step,omitempty"`
	Enum               []string    `json:"enum,omitempty"`
	AcceptedExtensions []string    `json:"acceptedExtensions,omitempty"`
	Dependency         *Dependency `json:"dependency,omitempty"`
}

// WarningKind tags the soft-failure conditions worth surfacing to callers.
// None of them ever aborts extraction.
type WarningKind string

const (
	WarningDuplicateParameter WarningKind = "duplicate-parameter"
	WarningUnbalancedBrace    WarningKind = "unbalanced-brace"
	WarningUnterminatedBlock  WarningKind = "unterminated-block-comment"
)

// Warning records a tolerated irregularity in the source text. Line numbers
// are 1-based; 0 means end-of-input.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Line    int         `json:"line"`
	Message string      `json:"message"`
}

// Schema is the complete extraction result: ordered groups, the parameter
// table keyed by name, the referenced library identifiers, and any warnings
// gathered during the scan. A Schema is produced once per extraction call and
// never mutated afterwards.
type Schema struct {
	Groups     []Group              `json:"groups"`
	Parameters map[string]Parameter `json:"parameters"`
	Libraries  []string             `json:"libraries,omitempty"`
	Warnings   []Warning            `json:"warnings,omitempty"`
}

// Group returns the registered group with the given id.
func (s Schema) Group(id string) (Group, bool) {
	for _, group := range s.Groups {
		if group.ID == id {
			return group, true
		}
	}
	return Group{}, false
}

// Ordered returns the parameters sorted by their source order.
func (s Schema) Ordered() []Parameter {
	out := make([]Parameter, 0, len(s.Parameters))
	for _, param := range s.Parameters {
		out = append(out, param)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// GroupParameters returns the parameters attributed to the given group id,
// sorted by source order.
func (s Schema) GroupParameters(id string) []Parameter {
	var out []Parameter
	for _, param := range s.Ordered() {
		if param.Group == id {
			out = append(out, param)
		}
	}
	return out
}
