package preview

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"sceneforge/internal/texcache"
)

// modelEntry is a GPU-resident model with its measured extent, so fit-to-size
// scaling can be applied at draw time.
type modelEntry struct {
	model  rl.Model
	extent float32
	center mgl32.Vec3
}

type fetched struct {
	url     string
	path    string
	isModel bool
	err     error
}

// loader resolves asset URLs into GPU resources. Downloads run in goroutines
// through the cache; uploads happen only in pump, on the render thread. A URL
// that fails is remembered and never retried, so nodes degrade once and stay
// quiet.
type loader struct {
	cache    *texcache.Cache
	ch       chan fetched
	pending  map[string]bool
	failed   map[string]bool
	textures map[string]rl.Texture2D
	models   map[string]modelEntry
}

func newLoader(cache *texcache.Cache) *loader {
	return &loader{
		cache:    cache,
		ch:       make(chan fetched, 8),
		pending:  make(map[string]bool),
		failed:   make(map[string]bool),
		textures: make(map[string]rl.Texture2D),
		models:   make(map[string]modelEntry),
	}
}

// texture returns the texture for url when it is ready, requesting it on
// first sight. Nodes draw untextured until then.
func (l *loader) texture(url string) (rl.Texture2D, bool) {
	if t, ok := l.textures[url]; ok {
		return t, true
	}
	l.request(url, false)
	return rl.Texture2D{}, false
}

// model returns the model entry for url when it is ready, requesting it on
// first sight. The node stays invisible until then.
func (l *loader) model(url string) (modelEntry, bool) {
	if m, ok := l.models[url]; ok {
		return m, true
	}
	l.request(url, true)
	return modelEntry{}, false
}

func (l *loader) request(url string, isModel bool) {
	if url == "" || l.pending[url] || l.failed[url] {
		return
	}
	l.pending[url] = true
	go func() {
		var path string
		var err error
		if isModel {
			path, err = l.cache.Model(url)
		} else {
			path, err = l.cache.Texture(url)
		}
		l.ch <- fetched{url: url, path: path, isModel: isModel, err: err}
	}()
}

// pump drains finished downloads and uploads them to the GPU. Must run on the
// render thread, once per frame.
func (l *loader) pump() {
	for {
		select {
		case f := <-l.ch:
			delete(l.pending, f.url)
			if f.err != nil {
				log.Printf("preview: %v", f.err)
				l.failed[f.url] = true
				continue
			}
			if f.isModel {
				l.uploadModel(f)
			} else {
				l.uploadTexture(f)
			}
		default:
			return
		}
	}
}

func (l *loader) uploadTexture(f fetched) {
	tex := rl.LoadTexture(f.path)
	if !rl.IsTextureValid(tex) {
		log.Printf("preview: unusable texture %s", f.url)
		l.failed[f.url] = true
		return
	}
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	l.textures[f.url] = tex
}

func (l *loader) uploadModel(f fetched) {
	model := rl.LoadModel(f.path)
	if !rl.IsModelValid(model) {
		log.Printf("preview: unusable model %s", f.url)
		l.failed[f.url] = true
		return
	}
	bb := rl.GetModelBoundingBox(model)
	extent := bb.Max.X - bb.Min.X
	if d := bb.Max.Y - bb.Min.Y; d > extent {
		extent = d
	}
	if d := bb.Max.Z - bb.Min.Z; d > extent {
		extent = d
	}
	l.models[f.url] = modelEntry{
		model:  model,
		extent: extent,
		center: mgl32.Vec3{
			(bb.Min.X + bb.Max.X) / 2,
			(bb.Min.Y + bb.Max.Y) / 2,
			(bb.Min.Z + bb.Max.Z) / 2,
		},
	}
}

// unload releases every GPU resource the loader owns.
func (l *loader) unload() {
	for _, t := range l.textures {
		rl.UnloadTexture(t)
	}
	for _, m := range l.models {
		rl.UnloadModel(m.model)
	}
}
