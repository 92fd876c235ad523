package pongo

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":  {Data: []byte("Hello {{ name }}!")},
		"global.tmpl": {Data: []byte("env={{ env }}")},
	}
}

func TestEngine_Render(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	result, err := engine.Render("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected output %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer output %q does not match result %q", buf.String(), result)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderString("{{ a }}+{{ b }}", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1+2" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine, err := New(WithFS(testFS()), WithGlobals(map[string]any{"env": "staging"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.Render("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestEngine_RequiresLoader(t *testing.T) {
	if _, err := New(); err == nil || !strings.Contains(err.Error(), "base dir") {
		t.Fatalf("expected loader configuration error, got %v", err)
	}
}
