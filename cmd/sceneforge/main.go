package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"sceneforge/internal/assets"
	"sceneforge/internal/config"
	"sceneforge/internal/gen"
	"sceneforge/internal/history"
	"sceneforge/internal/preview"
	"sceneforge/internal/render"
	"sceneforge/internal/scene"
	"sceneforge/internal/server"
	"sceneforge/internal/store"
	"sceneforge/internal/texcache"
)

var rootCmd = &cobra.Command{
	Use:   "sceneforge",
	Short: "Prompt-driven 3D scene generation",
	Long:  `sceneforge turns natural-language prompts into renderable 3D scenes through an LLM backend, with a bundled asset library, an HTTP/WebSocket server, and a raylib preview.`,
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnv()
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		generator := gen.New(cfg.Client(), cfg.Model)
		if !generator.Configured() {
			log.Println("warning: no generation backend configured; generation requests will fail")
		}
		srv := server.New(server.Config{
			Generator: generator,
			Store:     store.New(),
			History:   history.New(cfg.HistoryPath()),
			Timeout:   cfg.Timeout,
		})
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.Run(cfg.Addr); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var generateGraph bool

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a scene description and print it as JSON",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prompt := strings.Join(args, " ")
		cfg := config.FromEnv()
		generator := gen.New(cfg.Client(), cfg.Model)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		desc, err := generator.Generate(ctx, prompt)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

		var out any = desc
		if generateGraph {
			out = render.Render(desc)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var previewDemo bool

var previewCmd = &cobra.Command{
	Use:   "preview [prompt]",
	Short: "Generate a scene and open the viewer",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnv()
		prompt := strings.Join(args, " ")

		var desc scene.SceneDescription
		switch {
		case previewDemo:
			prompt = "demo scene"
			desc = demoScene()
		case prompt != "":
			generator := gen.New(cfg.Client(), cfg.Model)
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
			defer cancel()
			var err error
			desc, err = generator.Generate(ctx, prompt)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		default:
			fmt.Println("Error: provide a prompt or use --demo")
			os.Exit(1)
		}

		preview.Show(render.Render(desc), preview.Options{
			Prompt: prompt,
			Cache:  texcache.New(cfg.CacheDir),
		})
	},
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List bundled model and texture keys",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Models:")
		for _, k := range assets.ModelKeys() {
			url, _ := assets.LookupModel(k)
			fmt.Printf("  %-10s %s\n", k, url)
		}
		fmt.Println("Textures:")
		for _, k := range assets.TextureKeys() {
			url, _ := assets.LookupTexture(k)
			fmt.Printf("  %-10s %s\n", k, url)
		}
	},
}

// demoScene exercises every shape kind, texture tiling, and material range
// without needing a backend.
func demoScene() scene.SceneDescription {
	vec := func(x, y, z float32) *mgl32.Vec3 {
		v := mgl32.Vec3{x, y, z}
		return &v
	}
	metal := float32(0.9)
	polished := float32(0.15)
	return scene.SceneDescription{Shapes: []scene.ShapeInstruction{
		{Kind: scene.KindBox, Position: mgl32.Vec3{-1.5, 0.5, 0}, Color: "#b03a2e", Texture: "brick"},
		{Kind: scene.KindSphere, Position: mgl32.Vec3{0, 0.5, 0}, Color: "#d4ac0d", Metalness: &metal, Roughness: &polished},
		{Kind: scene.KindCylinder, Position: mgl32.Vec3{1.5, 0.5, 0}, Color: "#e6c9a8", Texture: "wood"},
		{Kind: scene.KindCone, Position: mgl32.Vec3{-0.75, 0.5, 1.4}, Color: "#52be80"},
		{Kind: scene.KindTorus, Position: mgl32.Vec3{0.75, 0.5, 1.4}, Rotation: mgl32.Vec3{1.5708, 0, 0}, Color: "#a569bd", Texture: "checkers"},
		{Kind: scene.KindCapsule, Position: mgl32.Vec3{0, 0.7, -1.4}, Scale: vec(1, 1.4, 1), Color: "#ec7063", Texture: "metal"},
	}}
}

func init() {
	cobra.OnInitialize(config.LoadEnv)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides SCENEFORGE_ADDR)")
	generateCmd.Flags().BoolVar(&generateGraph, "graph", false, "print the rendered graph instead of the raw scene")
	previewCmd.Flags().BoolVar(&previewDemo, "demo", false, "show a built-in demo scene instead of generating")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(libraryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
