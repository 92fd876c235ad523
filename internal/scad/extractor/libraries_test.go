package extractor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLibraryDetector_Detect(t *testing.T) {
	source := `
include <BOSL2/std.scad>
use <MCAD/gears.scad>
include <mylib/helpers.scad>
include <dotSCAD/src/bend.scad>
`
	got := NewLibraryDetector().Detect(source)
	want := []string{"BOSL2", "MCAD", "dotSCAD"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("libraries mismatch (-want +got):\n%s", diff)
	}
}

func TestLibraryDetector_NoDirectives(t *testing.T) {
	if got := NewLibraryDetector().Detect("cube(1);"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestLibraryDetector_CustomRegistry(t *testing.T) {
	detector := NewLibraryDetector("mylib")
	got := detector.Detect("use <mylib/helpers.scad>\ninclude <BOSL2/std.scad>")
	want := []string{"mylib"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("libraries mismatch (-want +got):\n%s", diff)
	}
}
