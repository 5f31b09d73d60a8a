package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"sceneforge/internal/scene"
)

// ModelFitSize is the target bounding size for an imported model: the display
// scales the model uniformly so its largest bounding-box extent equals this.
const ModelFitSize float32 = 1.0

// Graph is the renderable output for one SceneDescription: child nodes in
// draw order under one animated parent transform.
type Graph struct {
	Nodes  []Node     `json:"nodes"`
	Motion IdleMotion `json:"motion"`
}

// Node is one drawable: either a canonical primitive mesh or an imported
// model, with a local transform and a resolved material. Exactly one of Mesh
// and Model is set.
type Node struct {
	Name      string    `json:"name"`
	Mesh      *MeshSpec `json:"mesh,omitempty"`
	Model     *ModelRef `json:"model,omitempty"`
	Transform Transform `json:"transform"`
	Material  Material  `json:"material"`
}

// ModelRef imports an external model file and fits it to FitSize.
type ModelRef struct {
	URL     string  `json:"url"`
	FitSize float32 `json:"fitSize"`
}

// Transform is a node-local TRS. Rotation is Euler XYZ in radians.
type Transform struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`
}

// Matrix composes the local transform as translate * Rx * Ry * Rz * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation[0]))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation[1]))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation[2]))
	return m.Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Render maps a SceneDescription onto a Graph. Pure and total: the same
// description always yields a structurally identical graph, and no input can
// make it fail. A model reference wins over any shapes (exactly one imported
// node); otherwise each shape with a known kind becomes one node in order and
// unknown kinds are skipped silently.
func Render(desc scene.SceneDescription) *Graph {
	g := &Graph{Motion: DefaultMotion()}
	if desc.HasModel() {
		g.Nodes = []Node{{
			Name:      "model",
			Model:     &ModelRef{URL: desc.ModelReference, FitSize: ModelFitSize},
			Transform: Transform{Scale: mgl32.Vec3{1, 1, 1}},
			Material:  resolveMaterial(scene.ShapeInstruction{}),
		}}
		return g
	}
	for i, s := range desc.Shapes {
		mesh, ok := MeshFor(s.Kind)
		if !ok {
			continue
		}
		g.Nodes = append(g.Nodes, Node{
			Name:      fmt.Sprintf("%s-%d", s.Kind, i),
			Mesh:      &mesh,
			Transform: transformFor(s),
			Material:  resolveMaterial(s),
		})
	}
	return g
}

// transformFor builds the node-local TRS. A nil scale means unit scale; an
// explicit zero is preserved (degenerate, never fatal).
func transformFor(s scene.ShapeInstruction) Transform {
	t := Transform{
		Position: s.Position,
		Rotation: s.Rotation,
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	if s.Scale != nil {
		t.Scale = *s.Scale
	}
	return t
}
