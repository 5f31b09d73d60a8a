package assets

import (
	_ "embed"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// The libraries are fixed key -> URL tables bundled into the binary. They are
// loaded once at init and never mutated; every accessor hands out copies.

//go:embed models.yaml
var modelsYAML []byte

//go:embed textures.yaml
var texturesYAML []byte

var (
	models   map[string]string
	textures map[string]string
)

func init() {
	models = mustLoad(modelsYAML)
	textures = mustLoad(texturesYAML)
}

// mustLoad parses an embedded key->URL table. Keys are stored trimmed and
// lower-case. The files ship inside the binary, so a parse failure is a build
// defect, not a runtime condition.
func mustLoad(raw []byte) map[string]string {
	var m map[string]string
	if err := yaml.Unmarshal(raw, &m); err != nil {
		panic("assets: bad embedded library: " + err.Error())
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

func canon(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// LookupModel resolves an object name to its model URL. Matching is a
// case-insensitive exact match on the trimmed name.
func LookupModel(name string) (string, bool) {
	url, ok := models[canon(name)]
	return url, ok
}

// LookupTexture resolves a texture key to its image URL. Matching is a
// case-insensitive exact match on the trimmed key.
func LookupTexture(key string) (string, bool) {
	url, ok := textures[canon(key)]
	return url, ok
}

// ModelKeys returns the known object names, sorted.
func ModelKeys() []string {
	keys := maps.Keys(models)
	slices.Sort(keys)
	return keys
}

// TextureKeys returns the known texture keys, sorted.
func TextureKeys() []string {
	keys := maps.Keys(textures)
	slices.Sort(keys)
	return keys
}

// Models returns a copy of the object name -> model URL table.
func Models() map[string]string {
	return maps.Clone(models)
}

// Textures returns a copy of the texture key -> image URL table.
func Textures() map[string]string {
	return maps.Clone(textures)
}
