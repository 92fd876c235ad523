package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customizer/pkg/scad"
)

func extract(t *testing.T, source string) scad.Schema {
	t.Helper()
	return New(scad.NewExtractorOptions()).ExtractText(source)
}

func TestExtract_GroupsAndParameters(t *testing.T) {
	source := `
// Overall cube width in mm
width = 30;

/* [Dimensions] */
height = 25.5; // [10:50] Height of the body
wall_thickness = 1.2;

/* [Appearance] */
body_color = "FF0000"; // [color]
style = "round"; // [round, square, "fancy, ornate"]
`
	schema := extract(t, source)

	wantGroups := []scad.Group{
		{ID: "General", Label: "General", Order: 0},
		{ID: "Dimensions", Label: "Dimensions", Order: 1},
		{ID: "Appearance", Label: "Appearance", Order: 2},
	}
	if diff := cmp.Diff(wantGroups, schema.Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}

	width := schema.Parameters["width"]
	if width.Type != scad.ParamTypeInteger || width.Default != int64(30) {
		t.Fatalf("unexpected width: %+v", width)
	}
	if width.Group != "General" {
		t.Fatalf("width should land in the synthetic group, got %q", width.Group)
	}
	if width.Description != "Overall cube width in mm" {
		t.Fatalf("unexpected width description: %q", width.Description)
	}
	if width.Unit != "mm" {
		t.Fatalf("expected mm unit from description, got %q", width.Unit)
	}

	height := schema.Parameters["height"]
	if height.Group != "Dimensions" || height.UIType != scad.UITypeSlider {
		t.Fatalf("unexpected height: %+v", height)
	}
	if height.Minimum == nil || *height.Minimum != 10 || height.Maximum == nil || *height.Maximum != 50 {
		t.Fatalf("unexpected height bounds: %+v", height)
	}
	// a two-part range leaves the classifier's type untouched
	if height.Type != scad.ParamTypeNumber {
		t.Fatalf("expected number type, got %q", height.Type)
	}
	if height.Description != "Height of the body" {
		t.Fatalf("unexpected height description: %q", height.Description)
	}

	style := schema.Parameters["style"]
	if style.UIType != scad.UITypeSelect {
		t.Fatalf("expected select, got %q", style.UIType)
	}
	if diff := cmp.Diff([]string{"round", "square", "fancy, ornate"}, style.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	bodyColor := schema.Parameters["body_color"]
	if bodyColor.Type != scad.ParamTypeColor || bodyColor.UIType != scad.UITypeColor {
		t.Fatalf("unexpected color parameter: %+v", bodyColor)
	}

	// orders are strictly increasing in source order
	var prev = -1
	for _, param := range schema.Ordered() {
		if param.Order <= prev {
			t.Fatalf("orders not strictly increasing: %+v", schema.Parameters)
		}
		prev = param.Order
	}
}

func TestExtract_HiddenSectionIsExcluded(t *testing.T) {
	source := `
/* [Hidden] */
secret = 42; // [0:100]
$fn = 64;

/* [Visible] */
shown = 1;
`
	schema := extract(t, source)

	if _, ok := schema.Parameters["secret"]; ok {
		t.Fatalf("hidden parameter leaked into the schema")
	}
	if _, ok := schema.Parameters["$fn"]; ok {
		t.Fatalf("hidden special variable leaked into the schema")
	}
	for _, group := range schema.Groups {
		if strings.EqualFold(group.ID, "hidden") {
			t.Fatalf("hidden sentinel must not be registered as a group")
		}
	}
	shown := schema.Parameters["shown"]
	if shown.Group != "Visible" {
		t.Fatalf("expected group Visible, got %q", shown.Group)
	}
}

func TestExtract_AssignmentsInsideBlocksAreIgnored(t *testing.T) {
	source := `
top = 1;
module thing() {
    inner = 2;
    if (true) {
        deeper = 3;
    }
}
after = 4;
`
	schema := extract(t, source)

	if _, ok := schema.Parameters["inner"]; ok {
		t.Fatalf("nested assignment leaked into the schema")
	}
	if _, ok := schema.Parameters["deeper"]; ok {
		t.Fatalf("deeply nested assignment leaked into the schema")
	}
	if _, ok := schema.Parameters["top"]; !ok {
		t.Fatalf("top-level assignment missing")
	}
	if _, ok := schema.Parameters["after"]; !ok {
		t.Fatalf("assignment after balanced block missing; scope depth did not return to zero")
	}
	if len(schema.Warnings) != 0 {
		t.Fatalf("balanced input should not warn: %+v", schema.Warnings)
	}
}

func TestExtract_BracesInStringsAndCommentsDoNotCount(t *testing.T) {
	source := `
label = "curly { not a scope";
// a comment with } braces {
decor = 1; /* { */
final = 2;
`
	schema := extract(t, source)

	for _, name := range []string{"label", "decor", "final"} {
		if _, ok := schema.Parameters[name]; !ok {
			t.Fatalf("parameter %q missing; brace counting was confused", name)
		}
	}
}

func TestExtract_ThreePartRangeOverridesType(t *testing.T) {
	schema := extract(t, "steps = 4; // [0:2:10]\n")

	param := schema.Parameters["steps"]
	if param.UIType != scad.UITypeSlider {
		t.Fatalf("expected slider, got %q", param.UIType)
	}
	if param.Type != scad.ParamTypeInteger {
		t.Fatalf("integer step literal must force integer type, got %q", param.Type)
	}
	if param.Minimum == nil || *param.Minimum != 0 {
		t.Fatalf("unexpected minimum: %+v", param.Minimum)
	}
	if param.Step == nil || *param.Step != 2 {
		t.Fatalf("unexpected step: %+v", param.Step)
	}
	if param.Maximum == nil || *param.Maximum != 10 {
		t.Fatalf("unexpected maximum: %+v", param.Maximum)
	}
}

func TestExtract_FractionalStepForcesNumber(t *testing.T) {
	schema := extract(t, "offset = 4; // [0:0.5:10]\n")

	param := schema.Parameters["offset"]
	if param.Type != scad.ParamTypeNumber {
		t.Fatalf("fractional step literal must force number type, got %q", param.Type)
	}
}

func TestExtract_YesNoToggle(t *testing.T) {
	schema := extract(t, "show_base = "+`"yes"`+"; // [Yes, No]\n")

	param := schema.Parameters["show_base"]
	if param.UIType != scad.UITypeToggle {
		t.Fatalf("expected toggle, got %q", param.UIType)
	}
	if param.Type != scad.ParamTypeString {
		t.Fatalf("enum hints produce string parameters, got %q", param.Type)
	}
}

func TestExtract_FileHintExtensions(t *testing.T) {
	schema := extract(t, "logo = \"logo.svg\"; // [file:svg,png]\n")

	param := schema.Parameters["logo"]
	if param.Type != scad.ParamTypeFile || param.UIType != scad.UITypeFile {
		t.Fatalf("unexpected file parameter: %+v", param)
	}
	if diff := cmp.Diff([]string{"svg", "png"}, param.AcceptedExtensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_DependencyFromPrecedingComment(t *testing.T) {
	source := `
show_base = "yes"; // [yes,no]
// Diameter of the base @depends(show_base==yes)
base_diameter = 40;
`
	schema := extract(t, source)

	param := schema.Parameters["base_diameter"]
	want := &scad.Dependency{Parameter: "show_base", Operator: "==", Value: "yes"}
	if diff := cmp.Diff(want, param.Dependency); diff != "" {
		t.Fatalf("dependency mismatch (-want +got):\n%s", diff)
	}
	if param.Description != "Diameter of the base" {
		t.Fatalf("directive should be stripped from the description, got %q", param.Description)
	}
	if param.Unit != "mm" {
		t.Fatalf("expected mm from the _diameter suffix, got %q", param.Unit)
	}
}

func TestExtract_DuplicateNameLastWins(t *testing.T) {
	source := `
width = 10; // first
width = 20; // second
`
	schema := extract(t, source)

	param := schema.Parameters["width"]
	if param.Default != int64(20) {
		t.Fatalf("expected the later assignment to win, got %v", param.Default)
	}
	if param.Description != "second" {
		t.Fatalf("every field must come from the later assignment, got %q", param.Description)
	}
	if param.Order != 1 {
		t.Fatalf("expected the later order kept, got %d", param.Order)
	}

	var found bool
	for _, warning := range schema.Warnings {
		if warning.Kind == scad.WarningDuplicateParameter {
			found = true
		}
	}
	if !found {
		t.Fatalf("duplicate declaration should warn: %+v", schema.Warnings)
	}
}

func TestExtract_DuplicateGroupRegisteredOnce(t *testing.T) {
	source := `
/* [Shape] */
a = 1;
/* [Other] */
b = 2;
/* [Shape] */
c = 3;
`
	schema := extract(t, source)

	var shapes int
	for _, group := range schema.Groups {
		if group.ID == "Shape" {
			shapes++
			if group.Order != 0 {
				t.Fatalf("re-declared group must keep its first order, got %d", group.Order)
			}
		}
	}
	if shapes != 1 {
		t.Fatalf("expected one Shape group, got %d", shapes)
	}
	if got := schema.Parameters["c"].Group; got != "Shape" {
		t.Fatalf("later section should reuse the group, got %q", got)
	}
}

func TestExtract_UnterminatedBlockCommentWarns(t *testing.T) {
	source := `
a = 1;
/* never closed
b = 2;
`
	schema := extract(t, source)

	if _, ok := schema.Parameters["b"]; ok {
		t.Fatalf("assignments inside an open block comment must not be recognised")
	}
	var found bool
	for _, warning := range schema.Warnings {
		if warning.Kind == scad.WarningUnterminatedBlock {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unterminated block warning: %+v", schema.Warnings)
	}
}

func TestExtract_UnbalancedBraceWarnsAndClamps(t *testing.T) {
	source := `
}
a = 1;
`
	schema := extract(t, source)

	if _, ok := schema.Parameters["a"]; !ok {
		t.Fatalf("depth must clamp at zero so later assignments are recognised")
	}
	var found bool
	for _, warning := range schema.Warnings {
		if warning.Kind == scad.WarningUnbalancedBrace {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unbalanced brace warning: %+v", schema.Warnings)
	}
}

func TestExtract_SyntheticGroupOnlyWhenNeeded(t *testing.T) {
	schema := extract(t, "/* [Only] */\nx = 1;\n")

	want := []scad.Group{{ID: "Only", Label: "Only", Order: 0}}
	if diff := cmp.Diff(want, schema.Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	schema := extract(t, "")

	if len(schema.Parameters) != 0 {
		t.Fatalf("expected no parameters, got %d", len(schema.Parameters))
	}
	want := []scad.Group{{ID: "General", Label: "General", Order: 0}}
	if diff := cmp.Diff(want, schema.Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_LibrariesDetected(t *testing.T) {
	source := `
include <BOSL2/std.scad>
d = 5;
`
	schema := extract(t, source)

	if diff := cmp.Diff([]string{"BOSL2"}, schema.Libraries); diff != "" {
		t.Fatalf("libraries mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	source := `
/* [A] */
x = 1; // [0:10]
/* [B] */
y = "two"; // [two, three]
`
	first := extract(t, source)
	second := extract(t, source)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("identical input must yield identical schemas (-first +second):\n%s", diff)
	}
}

func TestExtract_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := New(scad.NewExtractorOptions())
	doc := scad.MustNewDocument(scad.SourceFromFile("model.scad"), []byte("a = 1;"))
	if _, err := ex.Extract(ctx, doc); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestExtract_WarningHandlerInvoked(t *testing.T) {
	var seen []scad.Warning
	ex := New(scad.NewExtractorOptions(
		scad.WithWarningHandler(func(w scad.Warning) { seen = append(seen, w) }),
	))

	schema := ex.ExtractText("x = 1;\nx = 2;\n")
	if len(seen) != len(schema.Warnings) || len(seen) == 0 {
		t.Fatalf("handler saw %d warnings, schema carries %d", len(seen), len(schema.Warnings))
	}
}
