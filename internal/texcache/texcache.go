package texcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

// MaxTextureEdge is the largest texture dimension kept as-is; anything bigger
// is downscaled before use.
const MaxTextureEdge = 1024

// Cache downloads assets once into a local directory. Entries are keyed by
// URL hash, so distinct URLs never collide even when their filenames match.
type Cache struct {
	root   string
	client *http.Client
}

// New returns a Cache rooted at dir. The directory is created on first use.
func New(dir string) *Cache {
	return &Cache{
		root:   dir,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Model fetches a model file and caches it verbatim. Returns the local path.
func (c *Cache) Model(url string) (string, error) {
	return c.fetch(url, false)
}

// Texture fetches an image, downscaling it when its largest edge exceeds
// MaxTextureEdge. Files that do not decode as images are kept verbatim.
// Returns the local path.
func (c *Cache) Texture(url string) (string, error) {
	return c.fetch(url, true)
}

func (c *Cache) fetch(url string, isTexture bool) (string, error) {
	name := inferFilename(url, "", "")
	dir := filepath.Join(c.root, hashKey(url))
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("texcache: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("texcache: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("texcache: HTTP %d for %s", resp.StatusCode, url)
	}

	// Headers may name the file better than the URL does.
	name = inferFilename(url, resp.Header.Get("Content-Disposition"), resp.Header.Get("Content-Type"))
	path = filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("texcache: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fetch-*")
	if err != nil {
		return "", fmt.Errorf("texcache: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("texcache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("texcache: %w", err)
	}

	if isTexture {
		if err := normalize(tmpPath, name); err != nil {
			os.Remove(tmpPath)
			return "", fmt.Errorf("texcache: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("texcache: %w", err)
	}
	return path, nil
}

// normalize rewrites the image at path when it is larger than MaxTextureEdge
// on either axis. Undecodable files pass through untouched.
func normalize(path, name string) error {
	img, err := imgio.Open(path)
	if err != nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= MaxTextureEdge && h <= MaxTextureEdge {
		return nil
	}
	scale := float64(MaxTextureEdge) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))
	resized := transform.Resize(img, nw, nh, transform.Lanczos)
	return imgio.Save(path, resized, encoderFor(name))
}

func encoderFor(name string) imgio.Encoder {
	if strings.EqualFold(filepath.Ext(name), ".png") {
		return imgio.PNGEncoder()
	}
	return imgio.JPEGEncoder(90)
}

func hashKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// inferFilename picks a cache filename from the URL path, preferring a
// Content-Disposition name when present, with the extension backed up by
// Content-Type.
func inferFilename(url, contentDisposition, contentType string) string {
	name := filenameFromContentDisposition(contentDisposition)
	if name == "" {
		name = filenameFromURL(url)
	}
	if name == "" {
		name = "asset"
	}
	name = sanitizeFilename(name)
	if filepath.Ext(name) == "" {
		ext := extensionFromContentType(contentType)
		if ext == "" {
			ext = ".bin"
		}
		name += ext
	}
	return name
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		s = strings.Trim(s, "\" ")
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	if idx := strings.Index(path, "#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf"):
		return ".gltf"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	}
	return ""
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
