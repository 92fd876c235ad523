package extractor

import (
	"testing"

	"github.com/goliatone/go-customizer/pkg/scad"
)

func TestInferUnit(t *testing.T) {
	cases := []struct {
		name        string
		param       scad.Parameter
		want        string
		description string
	}{
		{
			description: "description mentions millimeters",
			param:       scad.Parameter{Name: "gap", Type: scad.ParamTypeNumber, Description: "Gap in mm between walls"},
			want:        "mm",
		},
		{
			description: "description wins over name heuristics",
			param:       scad.Parameter{Name: "twist_angle", Type: scad.ParamTypeNumber, Description: "Twist in percent"},
			// the standalone word "in" outranks "percent" in the rule order
			want: "in",
		},
		{
			description: "percent without an earlier unit word",
			param:       scad.Parameter{Name: "infill", Type: scad.ParamTypeNumber, Description: "Infill percent"},
			want:        "%",
		},
		{
			description: "degree symbol in description",
			param:       scad.Parameter{Name: "x", Type: scad.ParamTypeNumber, Description: "Rotation (°)"},
			want:        "°",
		},
		{
			description: "inches spelled out",
			param:       scad.Parameter{Name: "x", Type: scad.ParamTypeNumber, Description: "Board width in inches"},
			want:        "in",
		},
		{
			description: "angle-like name",
			param:       scad.Parameter{Name: "base_rotation", Type: scad.ParamTypeInteger},
			want:        "°",
		},
		{
			description: "length-like suffix",
			param:       scad.Parameter{Name: "wall_thickness", Type: scad.ParamTypeNumber},
			want:        "mm",
		},
		{
			description: "exact length name",
			param:       scad.Parameter{Name: "radius", Type: scad.ParamTypeNumber},
			want:        "mm",
		},
		{
			description: "size alone is not a length name",
			param:       scad.Parameter{Name: "size", Type: scad.ParamTypeInteger},
			want:        "",
		},
		{
			description: "size as suffix is a length name",
			param:       scad.Parameter{Name: "grid_size", Type: scad.ParamTypeInteger},
			want:        "mm",
		},
		{
			description: "non-numeric types are never tagged",
			param:       scad.Parameter{Name: "wall_thickness", Type: scad.ParamTypeString},
			want:        "",
		},
		{
			description: "a word merely containing 'in' does not match",
			param:       scad.Parameter{Name: "x", Type: scad.ParamTypeNumber, Description: "minimum spacing value"},
			want:        "",
		},
	}

	for _, tc := range cases {
		if got := inferUnit(tc.param); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.description, got, tc.want)
		}
	}
}
