package gen

import (
	"strings"
	"testing"

	"sceneforge/internal/assets"
	"sceneforge/internal/llm"
	"sceneforge/internal/scene"
)

func TestResponseSchemaConstrainsKinds(t *testing.T) {
	s := responseSchema()
	shapes := s.Properties["shapes"]
	if shapes == nil || shapes.Items == nil {
		t.Fatal("schema must describe the shapes array")
	}
	kind := shapes.Items.Properties["kind"]
	if kind == nil {
		t.Fatal("shape schema must describe kind")
	}
	want := scene.Kinds()
	if len(kind.Enum) != len(want) {
		t.Fatalf("kind enum = %v", kind.Enum)
	}
	for i, k := range want {
		if kind.Enum[i] != string(k) {
			t.Errorf("kind enum[%d] = %q, want %q", i, kind.Enum[i], k)
		}
	}
}

func TestResponseSchemaConstrainsTextures(t *testing.T) {
	s := responseSchema()
	texture := s.Properties["shapes"].Items.Properties["texture"]
	if texture == nil {
		t.Fatal("shape schema must describe texture")
	}
	want := assets.TextureKeys()
	if len(texture.Enum) != len(want) {
		t.Fatalf("texture enum = %v, want %v", texture.Enum, want)
	}
	for i := range want {
		if texture.Enum[i] != want[i] {
			t.Errorf("texture enum[%d] = %q, want %q", i, texture.Enum[i], want[i])
		}
	}
}

func TestResponseSchemaBounds(t *testing.T) {
	shape := responseSchema().Properties["shapes"].Items
	for _, field := range []string{"metalness", "roughness"} {
		p := shape.Properties[field]
		if p == nil || p.Minimum == nil || p.Maximum == nil {
			t.Fatalf("%s must be bounded", field)
		}
		if *p.Minimum != 0 || *p.Maximum != 1 {
			t.Errorf("%s bounds = [%v, %v], want [0, 1]", field, *p.Minimum, *p.Maximum)
		}
	}
	for _, field := range []string{"position", "rotation", "scale"} {
		p := shape.Properties[field]
		if p == nil || p.Type != llm.TypeArray || p.MinItems == nil || *p.MinItems != 3 || p.MaxItems == nil || *p.MaxItems != 3 {
			t.Errorf("%s must be a 3-element array schema, got %+v", field, p)
		}
	}
	required := strings.Join(shape.Required, ",")
	for _, field := range []string{"kind", "position", "color"} {
		if !strings.Contains(required, field) {
			t.Errorf("%s should be required, required = %v", field, shape.Required)
		}
	}
	for _, field := range []string{"metalness", "roughness", "texture"} {
		if strings.Contains(required, field) {
			t.Errorf("%s must stay optional, required = %v", field, shape.Required)
		}
	}
}

func TestSystemPromptMentionsLibraries(t *testing.T) {
	p := buildSystemPrompt()
	for _, key := range assets.ModelKeys() {
		if !strings.Contains(p, key) {
			t.Errorf("system prompt missing model key %q", key)
		}
	}
	for _, key := range assets.TextureKeys() {
		if !strings.Contains(p, key) {
			t.Errorf("system prompt missing texture key %q", key)
		}
	}
	for _, fragment := range []string{"15 to 50", "radians", "JSON"} {
		if !strings.Contains(p, fragment) {
			t.Errorf("system prompt missing %q", fragment)
		}
	}
}
