package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-customizer/pkg/scad"
	"github.com/microcosm-cc/bluemonday"
)

// Labeler turns a parameter name into a human facing label.
type Labeler func(name string) string

// Builder converts an extracted schema into a FormModel.
type Builder struct {
	labeler  Labeler
	sanitize *bluemonday.Policy
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLabeler replaces the default name humanizer.
func WithLabeler(labeler Labeler) BuilderOption {
	return func(b *Builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// WithSanitizer replaces the policy applied to parameter descriptions.
// Descriptions come from untrusted model files and end up in HTML output,
// so the default policy strips all markup.
func WithSanitizer(policy *bluemonday.Policy) BuilderOption {
	return func(b *Builder) {
		if policy != nil {
			b.sanitize = policy
		}
	}
}

// NewBuilder creates a builder with the default labeler and a strict
// sanitization policy.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{
		labeler:  Humanize,
		sanitize: bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Build produces a FormModel from a schema. Groups keep their declared
// order and each group lists its fields in declaration order.
func (b *Builder) Build(schema scad.Schema, title string) (FormModel, error) {
	form := FormModel{
		Title:     title,
		Libraries: append([]string(nil), schema.Libraries...),
	}

	for _, group := range schema.Groups {
		fg := FieldGroup{ID: group.ID, Label: group.Label}
		for _, param := range schema.GroupParameters(group.ID) {
			field, err := b.buildField(param)
			if err != nil {
				return FormModel{}, err
			}
			fg.Fields = append(fg.Fields, field)
		}
		form.Groups = append(form.Groups, fg)
	}

	if len(schema.Warnings) > 0 {
		form.Metadata = map[string]string{
			"warnings": fmt.Sprintf("%d", len(schema.Warnings)),
		}
	}
	return form, nil
}

func (b *Builder) buildField(param scad.Parameter) (Field, error) {
	if param.Name == "" {
		return Field{}, fmt.Errorf("form model: parameter without a name")
	}

	field := Field{
		Name:               param.Name,
		Type:               param.Type,
		Label:              b.labeler(param.Name),
		Description:        b.sanitize.Sanitize(param.Description),
		Default:            param.Default,
		Widget:             string(param.UIType),
		Unit:               param.Unit,
		Minimum:            param.Minimum,
		Maximum:            param.Maximum,
		Step:               param.Step,
		Options:            append([]string(nil), param.Enum...),
		AcceptedExtensions: append([]string(nil), param.AcceptedExtensions...),
	}
	if param.Dependency != nil {
		dep := *param.Dependency
		field.Dependency = &dep
	}
	return field, nil
}

// Humanize is the default labeler: it drops the special-variable prefix,
// replaces underscores with spaces and upper-cases the first rune of each
// word.
func Humanize(name string) string {
	trimmed := strings.TrimPrefix(name, "$")
	words := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
