package export

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-customizer/pkg/scad"
)

func floatPtr(v float64) *float64 { return &v }

func testSchema() scad.Schema {
	return scad.Schema{
		Groups: []scad.Group{{ID: "Body", Label: "Body"}},
		Parameters: map[string]scad.Parameter{
			"wall_thickness": {
				Name:        "wall_thickness",
				Type:        scad.ParamTypeNumber,
				Default:     2.4,
				Group:       "Body",
				Order:       0,
				Description: "Wall thickness",
				UIType:      scad.UITypeSlider,
				Unit:        "mm",
				Minimum:     floatPtr(0.8),
				Maximum:     floatPtr(5),
			},
			"teeth": {
				Name:    "teeth",
				Type:    scad.ParamTypeInteger,
				Default: int64(12),
				Group:   "Body",
				Order:   1,
				UIType:  scad.UITypeSelect,
				Enum:    []string{"8", "12", "16"},
			},
			"engrave": {
				Name:       "engrave",
				Type:       scad.ParamTypeBoolean,
				Default:    true,
				Group:      "Body",
				Order:      2,
				UIType:     scad.UITypeToggle,
				Dependency: &scad.Dependency{Parameter: "teeth", Operator: "!=", Value: "8"},
			},
		},
		Libraries: []string{"BOSL2"},
	}
}

func TestDocument(t *testing.T) {
	doc, err := Document(testSchema(), Options{Title: "Box API"})
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	if doc.Info.Title != "Box API" || doc.Info.Version != "1.0.0" {
		t.Fatalf("unexpected info: %+v", doc.Info)
	}

	item := doc.Paths.Value("/render")
	if item == nil || item.Post == nil {
		t.Fatalf("missing POST /render")
	}
	if item.Post.OperationID != "renderModel" {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}

	body := item.Post.RequestBody.Value.Content.Get("application/json")
	if body == nil || body.Schema == nil || body.Schema.Value == nil {
		t.Fatalf("missing json request body schema")
	}
	props := body.Schema.Value.Properties

	wall := props["wall_thickness"]
	if wall == nil || wall.Value == nil {
		t.Fatalf("missing wall_thickness property")
	}
	if wall.Value.Min == nil || *wall.Value.Min != 0.8 {
		t.Fatalf("minimum not exported: %+v", wall.Value.Min)
	}
	if wall.Value.Extensions["x-unit"] != "mm" {
		t.Fatalf("unit extension missing: %v", wall.Value.Extensions)
	}

	teeth := props["teeth"]
	if teeth == nil || len(teeth.Value.Enum) != 3 {
		t.Fatalf("enum not exported: %+v", teeth)
	}
	if teeth.Value.Enum[0] != int64(8) {
		t.Fatalf("integer enum not typed: %T %v", teeth.Value.Enum[0], teeth.Value.Enum[0])
	}

	engrave := props["engrave"]
	depends, ok := engrave.Value.Extensions["x-depends"].(map[string]any)
	if !ok || depends["parameter"] != "teeth" || depends["operator"] != "!=" {
		t.Fatalf("dependency extension missing: %v", engrave.Value.Extensions)
	}

	if doc.Info.Extensions["x-libraries"] == nil {
		t.Fatalf("libraries extension missing")
	}
}

func TestDocument_MarshalsToJSON(t *testing.T) {
	doc, err := Document(testSchema(), Options{})
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version: %v", decoded["openapi"])
	}
	paths, _ := decoded["paths"].(map[string]any)
	if paths["/render"] == nil {
		t.Fatalf("paths missing /render: %v", paths)
	}
}

func TestDocument_BadNumericEnum(t *testing.T) {
	schema := scad.Schema{
		Groups: []scad.Group{{ID: "General", Label: "General"}},
		Parameters: map[string]scad.Parameter{
			"teeth": {
				Name:    "teeth",
				Type:    scad.ParamTypeInteger,
				Default: int64(8),
				Group:   "General",
				Enum:    []string{"8", "many"},
			},
		},
	}
	if _, err := Document(schema, Options{}); err == nil {
		t.Fatalf("expected error for non numeric enum option")
	}
}
