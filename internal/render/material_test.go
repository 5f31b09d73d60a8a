package render

import (
	"testing"

	"sceneforge/internal/assets"
	"sceneforge/internal/scene"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#ff0000", 255, 0, 0, true},
		{"#00FF88", 0, 255, 136, true},
		{"#fff", 255, 255, 255, true},
		{"#abc", 170, 187, 204, true},
		{"  #102030  ", 16, 32, 48, true},
		{"", 0, 0, 0, false},
		{"red", 0, 0, 0, false},
		{"#12345", 0, 0, 0, false},
		{"102030", 0, 0, 0, false},
	}
	for _, c := range cases {
		r, g, b, ok := parseHexColor(c.in)
		if ok != c.ok {
			t.Errorf("parseHexColor(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && (r != c.r || g != c.g || b != c.b) {
			t.Errorf("parseHexColor(%q) = %d,%d,%d want %d,%d,%d", c.in, r, g, b, c.r, c.g, c.b)
		}
	}
}

func TestResolveMaterialDefaults(t *testing.T) {
	m := resolveMaterial(scene.ShapeInstruction{Kind: scene.KindBox})
	if m.Metalness != 0.3 {
		t.Errorf("default metalness = %v, want 0.3", m.Metalness)
	}
	if m.Roughness != 0.5 {
		t.Errorf("default roughness = %v, want 0.5", m.Roughness)
	}
	if m.Color != [4]uint8{128, 128, 128, 255} {
		t.Errorf("default color = %v, want neutral gray", m.Color)
	}
	if m.Texture != nil {
		t.Error("default material should be untextured")
	}
}

func TestResolveMaterialClamps(t *testing.T) {
	m := resolveMaterial(scene.ShapeInstruction{
		Kind:      scene.KindBox,
		Metalness: f32(1.7),
		Roughness: f32(-0.4),
	})
	if m.Metalness != 1 {
		t.Errorf("metalness = %v, want clamped to 1", m.Metalness)
	}
	if m.Roughness != 0 {
		t.Errorf("roughness = %v, want clamped to 0", m.Roughness)
	}
}

func TestResolveMaterialKnownTexture(t *testing.T) {
	m := resolveMaterial(scene.ShapeInstruction{Kind: scene.KindBox, Texture: "wood"})
	if m.Texture == nil {
		t.Fatal("wood should resolve to a texture")
	}
	wantURL, _ := assets.LookupTexture("wood")
	if m.Texture.URL != wantURL {
		t.Errorf("texture URL = %q, want %q", m.Texture.URL, wantURL)
	}
	if m.Texture.Key != "wood" {
		t.Errorf("texture key = %q", m.Texture.Key)
	}
	if m.Texture.Repeat != [2]float32{1, 1} {
		t.Errorf("repeat = %v, want 1x1", m.Texture.Repeat)
	}
}

func TestResolveMaterialUnknownTextureFallsBack(t *testing.T) {
	m := resolveMaterial(scene.ShapeInstruction{Kind: scene.KindBox, Color: "#336699", Texture: "lava"})
	if m.Texture != nil {
		t.Errorf("unknown texture key should yield untextured material, got %+v", m.Texture)
	}
	if m.Color != [4]uint8{0x33, 0x66, 0x99, 255} {
		t.Errorf("color should still apply, got %v", m.Color)
	}
}

func TestResolveMaterialBadColor(t *testing.T) {
	for _, bad := range []string{"", "chartreuse", "#12", "rgb(1,2,3)"} {
		m := resolveMaterial(scene.ShapeInstruction{Kind: scene.KindBox, Color: bad})
		if m.Color != [4]uint8{128, 128, 128, 255} {
			t.Errorf("color %q should fall back to gray, got %v", bad, m.Color)
		}
	}
}
