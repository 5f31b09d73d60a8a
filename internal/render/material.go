package render

import (
	"strings"

	"github.com/chewxy/math32"

	"sceneforge/internal/assets"
	"sceneforge/internal/scene"
)

// DefaultColor stands in for an absent or unparseable shape color.
const DefaultColor = "#808080"

// Material is the resolved physically-based surface for one node.
type Material struct {
	Color     [4]uint8    `json:"color"`
	Metalness float32     `json:"metalness"`
	Roughness float32     `json:"roughness"`
	Texture   *TextureRef `json:"texture,omitempty"`
}

// TextureRef points at a Texture Library image and how to sample it:
// repeat wrapping with a 1x1 repeat factor.
type TextureRef struct {
	Key    string     `json:"key"`
	URL    string     `json:"url"`
	Repeat [2]float32 `json:"repeat"`
}

// resolveMaterial turns a shape's surface fields into a Material: color with
// gray fallback, metalness/roughness defaulted and clamped into [0,1], and a
// texture reference only when the key is in the Texture Library. Unknown keys
// mean untextured, never an error.
func resolveMaterial(s scene.ShapeInstruction) Material {
	r, g, b, ok := parseHexColor(s.Color)
	if !ok {
		r, g, b, _ = parseHexColor(DefaultColor)
	}
	m := Material{
		Color:     [4]uint8{r, g, b, 255},
		Metalness: clamp01(valueOr(s.Metalness, scene.DefaultMetalness)),
		Roughness: clamp01(valueOr(s.Roughness, scene.DefaultRoughness)),
	}
	if url, found := assets.LookupTexture(s.Texture); found {
		m.Texture = &TextureRef{
			Key:    strings.ToLower(strings.TrimSpace(s.Texture)),
			URL:    url,
			Repeat: [2]float32{1, 1},
		}
	}
	return m
}

// parseHexColor parses #RGB or #RRGGBB (case-insensitive) into RGB bytes.
// Reports false on any other form.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 4 && s[0] == '#' {
		hex := s[1:]
		switch len(hex) {
		case 3:
			// #RGB -> RR GG BB
			return hexByte(hex[0]) * 17, hexByte(hex[1]) * 17, hexByte(hex[2]) * 17, true
		case 6:
			r = hexByte(hex[0])<<4 + hexByte(hex[1])
			g = hexByte(hex[2])<<4 + hexByte(hex[3])
			b = hexByte(hex[4])<<4 + hexByte(hex[5])
			return r, g, b, true
		}
	}
	return 0, 0, 0, false
}

func hexByte(c byte) uint8 {
	if c >= '0' && c <= '9' {
		return c - '0'
	}
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 10
	}
	if c >= 'A' && c <= 'F' {
		return c - 'A' + 10
	}
	return 0
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

func valueOr(p *float32, def float32) float32 {
	if p == nil {
		return def
	}
	return *p
}
