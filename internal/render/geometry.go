package render

import "sceneforge/internal/scene"

// MeshSpec describes one canonical primitive: unit-scale dimensions and a
// fixed tessellation. Specs come only from the dispatch table, so two nodes
// of the same kind always carry identical geometry.
type MeshSpec struct {
	Kind   scene.Kind `json:"kind"`
	Width  float32    `json:"width,omitempty"`
	Height float32    `json:"height,omitempty"`
	Depth  float32    `json:"depth,omitempty"`
	Radius float32    `json:"radius,omitempty"`
	Tube   float32    `json:"tube,omitempty"`
	Length float32    `json:"length,omitempty"`
	Slices int        `json:"slices,omitempty"`
	Rings  int        `json:"rings,omitempty"`
}

// meshTable maps each kind in the closed set to its canonical geometry.
// Dimensions keep every primitive within a unit bounding cube before the
// instruction's own scale applies.
var meshTable = map[scene.Kind]MeshSpec{
	scene.KindBox:      {Kind: scene.KindBox, Width: 1, Height: 1, Depth: 1},
	scene.KindSphere:   {Kind: scene.KindSphere, Radius: 0.5, Slices: 32, Rings: 16},
	scene.KindCylinder: {Kind: scene.KindCylinder, Radius: 0.5, Length: 1, Slices: 32},
	scene.KindCone:     {Kind: scene.KindCone, Radius: 0.5, Length: 1, Slices: 32},
	scene.KindTorus:    {Kind: scene.KindTorus, Radius: 0.35, Tube: 0.15, Slices: 48, Rings: 16},
	scene.KindCapsule:  {Kind: scene.KindCapsule, Radius: 0.25, Length: 0.5, Slices: 16, Rings: 8},
}

// MeshFor returns the canonical mesh for kind. ok is false outside the closed
// set; callers skip such entries rather than erroring.
func MeshFor(kind scene.Kind) (MeshSpec, bool) {
	m, ok := meshTable[kind]
	return m, ok
}
