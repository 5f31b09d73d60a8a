package scene

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind names one primitive geometry. The set is closed: the renderer draws
// nothing for a kind outside it, and the generation schema constrains the
// backend to these values.
type Kind string

const (
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"
	KindTorus    Kind = "torus"
	KindCapsule  Kind = "capsule"
)

// Kinds returns the closed kind set in stable order.
func Kinds() []Kind {
	return []Kind{KindBox, KindSphere, KindCylinder, KindCone, KindTorus, KindCapsule}
}

// Known reports whether k is a member of the closed kind set.
func (k Kind) Known() bool {
	switch k {
	case KindBox, KindSphere, KindCylinder, KindCone, KindTorus, KindCapsule:
		return true
	}
	return false
}

// Material defaults applied when a shape omits the optional PBR fields.
const (
	DefaultMetalness float32 = 0.3
	DefaultRoughness float32 = 0.5
)

// MaxShapes caps how many shapes a single backend response may contribute.
// The prompt asks for 15-50, so a response anywhere near the cap is a
// misbehaving backend; extra entries are truncated during parsing.
const MaxShapes = 128

// ShapeInstruction is one primitive to render: geometry kind, local transform,
// and surface material. Rotation is Euler XYZ in radians. Scale is a pointer so
// an absent value (render at unit scale) can be told apart from an explicit
// zero (degenerate, kept as-is).
type ShapeInstruction struct {
	Kind      Kind        `json:"kind"`
	Position  mgl32.Vec3  `json:"position"`
	Rotation  mgl32.Vec3  `json:"rotation"`
	Scale     *mgl32.Vec3 `json:"scale,omitempty"`
	Color     string      `json:"color,omitempty"`
	Metalness *float32    `json:"metalness,omitempty"`
	Roughness *float32    `json:"roughness,omitempty"`
	Texture   string      `json:"texture,omitempty"`
}

// SceneDescription is one generation result: either a reference to a pre-made
// model (already resolved to its URL) or an ordered list of primitive shapes.
// Values are created fresh per generation and replaced wholesale; nothing
// merges or mutates them in place.
type SceneDescription struct {
	Shapes         []ShapeInstruction `json:"shapes"`
	ModelReference string             `json:"modelReference,omitempty"`
}

// HasModel reports whether the description references a pre-made model.
// When it does, Shapes is ignored by the renderer (reference wins).
func (d SceneDescription) HasModel() bool {
	return d.ModelReference != ""
}

// Response is the wire form the generation backend emits: a known library key
// in Model, or a shape list. A response carrying both is legal on the wire;
// precedence is decided downstream.
type Response struct {
	Model  string             `json:"model,omitempty"`
	Shapes []ShapeInstruction `json:"shapes,omitempty"`
}

// ParseResponse decodes raw backend output into a Response, treating it as
// untrusted no matter what schema enforcement the backend claims. Wrong JSON
// types (a string where a vector belongs, an object where the shape list
// belongs) fail the parse. String-typed fields are normalized rather than
// rejected: kind and texture are trimmed and lower-cased so downstream
// closed-set checks see canonical values, and an unknown kind survives here to
// be skipped at render time.
func ParseResponse(raw []byte) (Response, error) {
	var r Response
	if err := json.Unmarshal(raw, &r); err != nil {
		return Response{}, fmt.Errorf("scene response: %w", err)
	}
	if len(r.Shapes) > MaxShapes {
		r.Shapes = r.Shapes[:MaxShapes]
	}
	for i := range r.Shapes {
		r.Shapes[i].Kind = Kind(strings.ToLower(strings.TrimSpace(string(r.Shapes[i].Kind))))
		r.Shapes[i].Texture = strings.ToLower(strings.TrimSpace(r.Shapes[i].Texture))
		r.Shapes[i].Color = strings.TrimSpace(r.Shapes[i].Color)
	}
	r.Model = strings.TrimSpace(r.Model)
	return r, nil
}
