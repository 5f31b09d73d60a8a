package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"sceneforge/internal/render"
	"sceneforge/internal/texcache"
)

// Options configures the preview window.
type Options struct {
	Title  string
	Width  int
	Height int
	Prompt string // shown in the HUD when non-empty
	Cache  *texcache.Cache
}

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 90
	gridMajorAlpha = 140
)

// Show opens a window displaying the graph and blocks until it is closed.
// The idle bob/spin animates the whole scene as one parent transform; node
// transforms are composed under it, never modified.
func Show(g *render.Graph, opts Options) {
	if g == nil {
		g = &render.Graph{Motion: render.DefaultMotion()}
	}
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.Title == "" {
		opts.Title = "sceneforge"
	}
	if opts.Cache == nil {
		opts.Cache = texcache.New(filepath.Join(os.TempDir(), "sceneforge"))
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera3D{
		Position:   rl.NewVector3(3.5, 2.5, 3.5),
		Target:     rl.NewVector3(0, 0.5, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	rl.DisableCursor()

	reg := newRegistry()
	load := newLoader(opts.Cache)
	defer load.unload()
	start := time.Now()

	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&camera, rl.CameraFree)
		load.pump()

		yOff, yaw := g.Motion.Pose(float32(time.Since(start).Seconds()))
		parent := mgl32.Translate3D(0, yOff, 0).Mul4(mgl32.HomogRotate3DY(yaw))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))

		rl.BeginMode3D(camera)
		drawGrid()
		reg.setView(camera)
		for _, n := range g.Nodes {
			world := parent.Mul4(n.Transform.Matrix())
			switch {
			case n.Model != nil:
				entry, ok := load.model(n.Model.URL)
				if !ok {
					continue
				}
				drawModelNode(entry, world, n.Model.FitSize)
			case n.Mesh != nil:
				var tex rl.Texture2D
				hasTex := false
				if n.Material.Texture != nil {
					tex, hasTex = load.texture(n.Material.Texture.URL)
				}
				reg.draw(n.Mesh.Kind, world, n.Material, tex, hasTex)
			}
		}
		rl.EndMode3D()

		drawHUD(opts.Prompt, len(g.Nodes))
		rl.EndDrawing()
	}
}

// drawModelNode draws an imported model scaled so its largest bounding-box
// extent equals the node's fit size, centered on the node origin.
func drawModelNode(entry modelEntry, world mgl32.Mat4, fit float32) {
	s := float32(1)
	if entry.extent > 0 && fit > 0 {
		s = fit / entry.extent
	}
	t := world.
		Mul4(mgl32.Scale3D(s, s, s)).
		Mul4(mgl32.Translate3D(-entry.center[0], -entry.center[1], -entry.center[2]))
	m := entry.model
	m.Transform = rlMatrix(t)
	rl.DrawModel(m, rl.NewVector3(0, 0, 0), 1, rl.White)
}

// drawGrid draws the floor grid with highlighted axis lines, major lines
// every gridMajorStep units.
func drawGrid() {
	minor := rl.NewColor(255, 255, 255, gridMinorAlpha)
	major := rl.NewColor(255, 255, 255, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, 255)
	axisZ := rl.NewColor(80, 80, 220, 255)

	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		along := minor
		if i%gridMajorStep == 0 {
			along = major
		}
		cx, cz := along, along
		if i == 0 {
			cx = axisZ // the x=0 line runs along Z
			cz = axisX // the z=0 line runs along X
		}
		rl.DrawLine3D(rl.NewVector3(float32(i), 0, -gridExtent), rl.NewVector3(float32(i), 0, gridExtent), cx)
		rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, float32(i)), rl.NewVector3(gridExtent, 0, float32(i)), cz)
	}
}

func drawHUD(prompt string, nodes int) {
	rl.DrawFPS(10, 10)
	if prompt != "" {
		rl.DrawText(prompt, 10, 36, 18, rl.RayWhite)
	}
	rl.DrawText(fmt.Sprintf("%d nodes", nodes), 10, 60, 16, rl.Gray)
}
