// Package visibility evaluates conditional display rules declared with
// @depends annotations against the current form values.
package visibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-customizer/pkg/model"
	"github.com/goliatone/go-customizer/pkg/scad"
)

// Evaluator decides whether a dependency holds for a set of values.
type Evaluator interface {
	Visible(dep *scad.Dependency, values map[string]any) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(dep *scad.Dependency, values map[string]any) bool

// Visible delegates to the underlying function.
func (fn EvaluatorFunc) Visible(dep *scad.Dependency, values map[string]any) bool {
	return fn(dep, values)
}

type evaluator struct{}

// New returns the default evaluator. Fields without a dependency, or whose
// controlling parameter is absent from the values, stay visible.
func New() Evaluator {
	return evaluator{}
}

func (evaluator) Visible(dep *scad.Dependency, values map[string]any) bool {
	if dep == nil {
		return true
	}
	current, ok := values[dep.Parameter]
	if !ok {
		return true
	}

	equal := equalLiteral(current, dep.Value)
	switch dep.Operator {
	case "==":
		return equal
	case "!=":
		return !equal
	default:
		return true
	}
}

// equalLiteral compares a runtime value against the annotation literal.
// Numbers compare numerically so 4 matches "4.0"; everything else compares
// as trimmed text with surrounding quotes removed from the literal.
func equalLiteral(current any, literal string) bool {
	literal = strings.TrimSpace(literal)
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		literal = literal[1 : len(literal)-1]
	}

	switch v := current.(type) {
	case float64:
		if want, err := strconv.ParseFloat(literal, 64); err == nil {
			return v == want
		}
	case int64:
		if want, err := strconv.ParseFloat(literal, 64); err == nil {
			return float64(v) == want
		}
	case int:
		if want, err := strconv.ParseFloat(literal, 64); err == nil {
			return float64(v) == want
		}
	case bool:
		if want, err := strconv.ParseBool(literal); err == nil {
			return v == want
		}
	}
	return fmt.Sprintf("%v", current) == literal
}

// Filter returns a copy of the form with hidden fields removed. Values
// should include a value for every parameter; FormModel.Values provides the
// defaults.
func Filter(form model.FormModel, values map[string]any, eval Evaluator) model.FormModel {
	if eval == nil {
		eval = New()
	}

	out := form
	out.Groups = nil
	for _, group := range form.Groups {
		kept := group
		kept.Fields = nil
		for _, field := range group.Fields {
			if eval.Visible(field.Dependency, values) {
				kept.Fields = append(kept.Fields, field)
			}
		}
		if len(kept.Fields) > 0 {
			out.Groups = append(out.Groups, kept)
		}
	}
	return out
}
