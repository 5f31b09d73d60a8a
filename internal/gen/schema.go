package gen

import (
	"sceneforge/internal/assets"
	"sceneforge/internal/llm"
	"sceneforge/internal/scene"
)

// responseSchema is the strict output schema sent with every generation:
// the backend may only emit the wire fields, kind and texture are
// enum-constrained, and the PBR values are bounded. Optional fields stay
// optional, so shapes omitting them remain valid.
func responseSchema() *llm.Schema {
	shape := &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"kind":      {Type: llm.TypeString, Enum: kindNames(), Description: "primitive geometry"},
			"position":  vecSchema("center position [x, y, z]"),
			"rotation":  vecSchema("Euler XYZ rotation in radians"),
			"scale":     vecSchema("per-axis scale factors"),
			"color":     {Type: llm.TypeString, Description: "#RRGGBB hex color"},
			"metalness": {Type: llm.TypeNumber, Minimum: llm.Float(0), Maximum: llm.Float(1)},
			"roughness": {Type: llm.TypeNumber, Minimum: llm.Float(0), Maximum: llm.Float(1)},
			"texture":   {Type: llm.TypeString, Enum: assets.TextureKeys(), Description: "tiling texture key"},
		},
		Required: []string{"kind", "position", "rotation", "scale", "color"},
	}
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"model": {
				Type:        llm.TypeString,
				Description: "a known model name, only when the request is that object",
			},
			"shapes": {
				Type:     llm.TypeArray,
				MaxItems: llm.Int(50),
				Items:    shape,
			},
		},
	}
}

func vecSchema(desc string) *llm.Schema {
	return &llm.Schema{
		Type:        llm.TypeArray,
		Description: desc,
		MinItems:    llm.Int(3),
		MaxItems:    llm.Int(3),
		Items:       &llm.Schema{Type: llm.TypeNumber},
	}
}

func kindNames() []string {
	kinds := scene.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
