package texcache

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, G: 40, B: 40, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return img
}

func TestModelCachedVerbatim(t *testing.T) {
	payload := []byte("glTF fake binary payload")
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(payload)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p1, err := c.Model(srv.URL + "/assets/Duck.glb")
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if filepath.Base(p1) != "Duck.glb" {
		t.Errorf("cached name = %q, want Duck.glb", filepath.Base(p1))
	}
	data, err := os.ReadFile(p1)
	if err != nil {
		t.Fatalf("reading cache file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("model bytes were altered by the cache")
	}

	p2, err := c.Model(srv.URL + "/assets/Duck.glb")
	if err != nil {
		t.Fatalf("second Model: %v", err)
	}
	if p2 != p1 {
		t.Errorf("cache returned different paths: %q then %q", p1, p2)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestTextureSmallKeptAsIs(t *testing.T) {
	small := pngBytes(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(small)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p, err := c.Texture(srv.URL + "/wood.png")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("reading cache file: %v", err)
	}
	if !bytes.Equal(data, small) {
		t.Error("small texture was rewritten")
	}
}

func TestTextureDownscaled(t *testing.T) {
	big := pngBytes(t, 2100, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(big)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p, err := c.Texture(srv.URL + "/wall.png")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	img := decodeFile(t, p)
	b := img.Bounds()
	if b.Dx() != MaxTextureEdge {
		t.Errorf("width = %d, want %d", b.Dx(), MaxTextureEdge)
	}
	if b.Dy() != 31 {
		t.Errorf("height = %d, want 31", b.Dy())
	}
}

func TestTextureUndecodableKeptVerbatim(t *testing.T) {
	junk := []byte("not an image at all")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(junk)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p, err := c.Texture(srv.URL + "/weird.png")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	data, _ := os.ReadFile(p)
	if !bytes.Equal(data, junk) {
		t.Error("undecodable file was altered")
	}
}

func TestFilenameFromContentDisposition(t *testing.T) {
	small := pngBytes(t, 4, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="fancy.png"`)
		w.Write(small)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p, err := c.Texture(srv.URL + "/dl?id=7")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	if filepath.Base(p) != "fancy.png" {
		t.Errorf("cached name = %q, want fancy.png", filepath.Base(p))
	}
}

func TestExtensionFromContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf-binary")
		w.Write([]byte("glTF"))
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p, err := c.Model(srv.URL + "/asset")
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if filepath.Ext(p) != ".glb" {
		t.Errorf("cached ext = %q, want .glb", filepath.Ext(p))
	}
}

func TestDistinctURLsSameName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	c := New(t.TempDir())
	p1, err := c.Model(srv.URL + "/a/mesh.glb")
	if err != nil {
		t.Fatalf("first Model: %v", err)
	}
	p2, err := c.Model(srv.URL + "/b/mesh.glb")
	if err != nil {
		t.Fatalf("second Model: %v", err)
	}
	if p1 == p2 {
		t.Fatal("distinct URLs mapped to the same cache path")
	}
	d1, _ := os.ReadFile(p1)
	d2, _ := os.ReadFile(p2)
	if bytes.Equal(d1, d2) {
		t.Error("cache entries share content")
	}
}

func TestHTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	if _, err := c.Model(srv.URL + "/missing.glb"); err == nil {
		t.Fatal("expected an error for HTTP 404")
	} else if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want mention of 404", err)
	}
}

func TestInferFilename(t *testing.T) {
	cases := []struct {
		url, cd, ct, want string
	}{
		{"https://x.test/a/Duck.glb", "", "", "Duck.glb"},
		{"https://x.test/a/Duck.glb?v=2", "", "", "Duck.glb"},
		{"https://x.test/dl", `attachment; filename="wall tile.png"`, "", "wall_tile.png"},
		{"https://x.test/dl", "attachment; filename*=UTF-8''brick.jpg", "", "brick.jpg"},
		{"https://x.test/asset", "", "image/jpeg", "asset.jpg"},
		{"https://x.test/asset", "", "application/octet-stream", "asset.bin"},
	}
	for _, c := range cases {
		if got := inferFilename(c.url, c.cd, c.ct); got != c.want {
			t.Errorf("inferFilename(%q, %q, %q) = %q, want %q", c.url, c.cd, c.ct, got, c.want)
		}
	}
}
