package model

import "github.com/goliatone/go-customizer/pkg/scad"

// Field models an individual form control generated for one customizer
// parameter. Struct fields carry JSON tags so renderers can serialise them
// directly.
type Field struct {
	Name               string            `json:"name"`
	Type               scad.ParamType    `json:"type"`
	Label              string            `json:"label,omitempty"`
	Description        string            `json:"description,omitempty"`
	Default            any               `json:"default,omitempty"`
	Widget             string            `json:"widget"`
	Unit               string            `json:"unit,omitempty"`
	Minimum            *float64          `json:"minimum,omitempty"`
	Maximum            *float64          `json:"maximum,omitempty"`
	Step               *float64          `json:"step,omitempty"`
	Options            []string          `json:"options,omitempty"`
	AcceptedExtensions []string          `json:"acceptedExtensions,omitempty"`
	Dependency         *scad.Dependency  `json:"dependency,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// FieldGroup is a rendered section of controls matching one schema group.
type FieldGroup struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	Model     string            `json:"model,omitempty"`
	Title     string            `json:"title,omitempty"`
	Groups    []FieldGroup      `json:"groups"`
	Libraries []string          `json:"libraries,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Fields returns every field in group order. Handy for renderers that do not
// care about sections.
func (m FormModel) Fields() []Field {
	var out []Field
	for _, group := range m.Groups {
		out = append(out, group.Fields...)
	}
	return out
}

// Field looks up a field by parameter name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, group := range m.Groups {
		for _, field := range group.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// Values returns the default parameter payload for a render job.
func (m FormModel) Values() map[string]any {
	out := make(map[string]any)
	for _, field := range m.Fields() {
		out[field.Name] = field.Default
	}
	return out
}

// Decorator mutates a form model after building but before rendering.
type Decorator interface {
	Decorate(form *FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(form *FormModel) error

// Decorate delegates to the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}
