package scad

import "testing"

func TestSourceFromURL(t *testing.T) {
	source, err := SourceFromURL("https://example.com/box.scad")
	if err != nil {
		t.Fatalf("valid URL rejected: %v", err)
	}
	if source.Kind() != SourceKindURL || source.Location() != "https://example.com/box.scad" {
		t.Fatalf("unexpected source: %v %q", source.Kind(), source.Location())
	}

	for _, raw := range []string{"", "not a url", "ftp://example.com/box.scad"} {
		if _, err := SourceFromURL(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestSourceFromFileCleansPath(t *testing.T) {
	source := SourceFromFile("models/../box.scad")
	if source.Location() != "box.scad" {
		t.Fatalf("path not cleaned: %q", source.Location())
	}
}
