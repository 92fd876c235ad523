package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customizer/pkg/scad"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuilder_Build(t *testing.T) {
	schema := scad.Schema{
		Groups: []scad.Group{
			{ID: "Body", Label: "Body", Order: 0},
			{ID: "Lid", Label: "Lid", Order: 1},
		},
		Parameters: map[string]scad.Parameter{
			"wall_thickness": {
				Name:        "wall_thickness",
				Type:        scad.ParamTypeNumber,
				Default:     float64(2.4),
				Group:       "Body",
				Order:       0,
				Description: "Wall thickness",
				UIType:      scad.UITypeSlider,
				Unit:        "mm",
				Minimum:     floatPtr(0.8),
				Maximum:     floatPtr(5),
				Step:        floatPtr(0.4),
			},
			"lid_style": {
				Name:    "lid_style",
				Type:    scad.ParamTypeString,
				Default: "snap",
				Group:   "Lid",
				Order:   1,
				UIType:  scad.UITypeSelect,
				Enum:    []string{"snap", "screw"},
			},
		},
		Libraries: []string{"BOSL2"},
	}

	form, err := NewBuilder().Build(schema, "Box")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Title != "Box" {
		t.Fatalf("unexpected title %q", form.Title)
	}
	if diff := cmp.Diff([]string{"BOSL2"}, form.Libraries); diff != "" {
		t.Fatalf("libraries mismatch (-want +got):\n%s", diff)
	}
	if len(form.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(form.Groups))
	}

	field, ok := form.Field("wall_thickness")
	if !ok {
		t.Fatalf("missing wall_thickness field")
	}
	if field.Label != "Wall Thickness" {
		t.Fatalf("unexpected label %q", field.Label)
	}
	if field.Widget != string(scad.UITypeSlider) || field.Unit != "mm" {
		t.Fatalf("slider metadata not carried over: %+v", field)
	}

	lid, ok := form.Field("lid_style")
	if !ok {
		t.Fatalf("missing lid_style field")
	}
	if diff := cmp.Diff([]string{"snap", "screw"}, lid.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_SanitizesDescriptions(t *testing.T) {
	schema := scad.Schema{
		Groups: []scad.Group{{ID: "General", Label: "General"}},
		Parameters: map[string]scad.Parameter{
			"label_text": {
				Name:        "label_text",
				Type:        scad.ParamTypeString,
				Default:     "hi",
				Group:       "General",
				Description: `Engraved text <script>alert("x")</script>`,
				UIType:      scad.UITypeInput,
			},
		},
	}

	form, err := NewBuilder().Build(schema, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, _ := form.Field("label_text")
	if field.Description != "Engraved text " {
		t.Fatalf("description not sanitized: %q", field.Description)
	}
}

func TestBuilder_CopiesDependency(t *testing.T) {
	dep := &scad.Dependency{Parameter: "has_lid", Operator: "==", Value: "true"}
	schema := scad.Schema{
		Groups: []scad.Group{{ID: "Lid", Label: "Lid"}},
		Parameters: map[string]scad.Parameter{
			"lid_height": {
				Name:       "lid_height",
				Type:       scad.ParamTypeNumber,
				Default:    float64(4),
				Group:      "Lid",
				UIType:     scad.UITypeInput,
				Dependency: dep,
			},
		},
	}

	form, err := NewBuilder().Build(schema, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, _ := form.Field("lid_height")
	if field.Dependency == nil || field.Dependency == dep {
		t.Fatalf("dependency must be copied, got %v", field.Dependency)
	}
	if diff := cmp.Diff(*dep, *field.Dependency); diff != "" {
		t.Fatalf("dependency mismatch (-want +got):\n%s", diff)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"wall_thickness": "Wall Thickness",
		"$fn":            "Fn",
		"width":          "Width",
		"outer__radius":  "Outer Radius",
	}
	for in, want := range cases {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormModel_Values(t *testing.T) {
	form := FormModel{
		Groups: []FieldGroup{
			{ID: "General", Fields: []Field{
				{Name: "width", Default: float64(10)},
				{Name: "engrave", Default: true},
			}},
		},
	}
	values := form.Values()
	if values["width"] != float64(10) || values["engrave"] != true {
		t.Fatalf("unexpected values: %v", values)
	}
}
