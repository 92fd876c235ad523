// Package widgets resolves the concrete control used to edit a field.
// Annotation hints decide the widget whenever the model file provides one;
// matchers only pick a control for plain assignments.
package widgets

import (
	"sort"
	"sync"

	"github.com/goliatone/go-customizer/pkg/model"
	"github.com/goliatone/go-customizer/pkg/scad"
)

// Well-known widget names shared by renderers.
const (
	Input  = string(scad.UITypeInput)
	Slider = string(scad.UITypeSlider)
	Select = string(scad.UITypeSelect)
	Toggle = string(scad.UITypeToggle)
	Color  = string(scad.UITypeColor)
	File   = string(scad.UITypeFile)

	Textarea = "textarea"
	Checkbox = "checkbox"
)

// Matcher reports whether a widget applies to a field.
type Matcher func(field model.Field) bool

type rule struct {
	widget   string
	priority int
	match    Matcher
}

// Registry maps fields to widgets. Rules are consulted in priority order,
// highest first; registration order breaks ties.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry returns a registry preloaded with the default rules.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(Checkbox, 10, func(field model.Field) bool {
		return field.Type == scad.ParamTypeBoolean
	})
	return r
}

// Register adds a rule. Nil matchers and empty widget names are ignored.
func (r *Registry) Register(widget string, priority int, match Matcher) {
	if widget == "" || match == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{widget: widget, priority: priority, match: match})
	sort.SliceStable(r.rules, func(i, j int) bool {
		return r.rules[i].priority > r.rules[j].priority
	})
}

// Resolve returns the widget for a field. A widget already set by an
// annotation hint (anything but the plain input default) wins over rules.
func (r *Registry) Resolve(field model.Field) string {
	if field.Widget != "" && field.Widget != Input {
		return field.Widget
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.match(field) {
			return rule.widget
		}
	}
	return Input
}

// Decorate rewrites every field's widget using Resolve. It satisfies
// model.Decorator so it can run inside an orchestrator pipeline.
func (r *Registry) Decorate(form *model.FormModel) error {
	for gi := range form.Groups {
		for fi := range form.Groups[gi].Fields {
			field := &form.Groups[gi].Fields[fi]
			field.Widget = r.Resolve(*field)
		}
	}
	return nil
}
