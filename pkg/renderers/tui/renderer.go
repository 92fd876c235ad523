// Package tui walks a form model as a sequence of terminal prompts and
// serializes the collected parameter values. Conditional fields are skipped
// when their controlling value hides them.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-customizer/pkg/model"
	"github.com/goliatone/go-customizer/pkg/render"
	"github.com/goliatone/go-customizer/pkg/scad"
	"github.com/goliatone/go-customizer/pkg/visibility"
)

// Name identifies this renderer inside a render.Registry.
const Name = "tui"

// Renderer prompts for every visible field and emits the resulting values.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	visibility   visibility.Evaluator
}

// New constructs a renderer backed by a survey prompt driver unless
// WithPromptDriver overrides it.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		visibility:   visibility.New(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render implements render.Renderer. Fields are prompted in declaration
// order; values answered earlier drive the visibility of later fields.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	values := form.Values()
	for name, value := range options.Values {
		values[name] = value
	}

	for _, group := range form.Groups {
		for _, field := range group.Fields {
			if !r.visibility.Visible(field.Dependency, values) {
				continue
			}
			answer, err := r.prompt(ctx, field, values[field.Name])
			if err != nil {
				return nil, err
			}
			values[field.Name] = answer
		}
	}

	return r.serialize(form, values)
}

func (r *Renderer) prompt(ctx context.Context, field model.Field, current any) (any, error) {
	message := field.Label
	if message == "" {
		message = field.Name
	}
	if field.Unit != "" {
		message += " (" + field.Unit + ")"
	}

	switch {
	case field.Type == scad.ParamTypeBoolean || field.Widget == "toggle" || field.Widget == "checkbox":
		def, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: def,
			Help:    field.Description,
		})

	case len(field.Options) > 0:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, formatValue(current)),
			Help:         field.Description,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return current, nil
		}
		return coerceOption(field, field.Options[idx]), nil

	case field.Type == scad.ParamTypeInteger || field.Type == scad.ParamTypeNumber:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   formatValue(current),
			Help:      field.Description,
			Validator: numericValidator(field),
		})
		if err != nil {
			return nil, err
		}
		return parseNumeric(field, answer)

	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: formatValue(current),
			Help:    field.Description,
		})
	}
}

func (r *Renderer) serialize(form model.FormModel, values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		var b strings.Builder
		for _, group := range form.Groups {
			fmt.Fprintf(&b, "[%s]\n", group.Label)
			for _, field := range group.Fields {
				fmt.Fprintf(&b, "%s = %s\n", field.Name, formatValue(values[field.Name]))
			}
		}
		return []byte(b.String()), nil
	}

	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode values: %w", err)
	}
	return payload, nil
}

// numericValidator enforces slider bounds when the annotation declared them.
func numericValidator(field model.Field) func(string) error {
	return func(input string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", input)
		}
		if field.Type == scad.ParamTypeInteger && v != float64(int64(v)) {
			return fmt.Errorf("%q is not an integer", input)
		}
		if field.Minimum != nil && v < *field.Minimum {
			return fmt.Errorf("must be at least %s", formatFloat(*field.Minimum))
		}
		if field.Maximum != nil && v > *field.Maximum {
			return fmt.Errorf("must be at most %s", formatFloat(*field.Maximum))
		}
		return nil
	}
}

func parseNumeric(field model.Field, input string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return nil, fmt.Errorf("tui: parse %q: %w", input, err)
	}
	if field.Type == scad.ParamTypeInteger {
		return int64(v), nil
	}
	return v, nil
}

// coerceOption maps a chosen option string back to the field's value type so
// the payload round-trips numeric enums as numbers.
func coerceOption(field model.Field, option string) any {
	switch field.Type {
	case scad.ParamTypeInteger:
		if v, err := strconv.ParseInt(option, 10, 64); err == nil {
			return v
		}
	case scad.ParamTypeNumber:
		if v, err := strconv.ParseFloat(option, 64); err == nil {
			return v
		}
	}
	return option
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatFloat(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
