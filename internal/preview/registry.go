package preview

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"sceneforge/internal/render"
	"sceneforge/internal/scene"
)

// part is one mesh piece of a primitive. offset recenters the raw mesh in
// model space (raylib cylinders and cones have their base at Y=0).
type part struct {
	mesh   rl.Mesh
	offset mgl32.Vec3
}

// registry caches one mesh set per shape kind, built from the same dispatch
// table the renderer uses. Meshes are created on first use so GPU resources
// are allocated after the window exists.
type registry struct {
	parts    map[scene.Kind][]part
	mtl      rl.Material
	texMtl   rl.Material
	loaded   bool
	viewPos  [3]float32
	lightDir [3]float32
}

func newRegistry() *registry {
	return &registry{
		parts:    make(map[scene.Kind][]part),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// setView sets the camera position for this frame so specular highlights
// track the viewer.
func (r *registry) setView(camera rl.Camera3D) {
	r.viewPos = [3]float32{camera.Position.X, camera.Position.Y, camera.Position.Z}
}

func (r *registry) ensure() {
	if r.loaded {
		return
	}
	r.loaded = true

	r.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
	r.texMtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(shader) {
		r.texMtl.Shader = shader
	}

	for _, k := range scene.Kinds() {
		spec, ok := render.MeshFor(k)
		if !ok {
			continue
		}
		r.parts[k] = buildParts(spec)
	}
}

// buildParts realizes one MeshSpec as raylib geometry. The capsule has no
// generator in raylib, so it is assembled from a cylinder and two sphere
// caps sharing the node's material.
func buildParts(spec render.MeshSpec) []part {
	switch spec.Kind {
	case scene.KindBox:
		return []part{{mesh: rl.GenMeshCube(spec.Width, spec.Height, spec.Depth)}}
	case scene.KindSphere:
		return []part{{mesh: rl.GenMeshSphere(spec.Radius, spec.Rings, spec.Slices)}}
	case scene.KindCylinder:
		return []part{{
			mesh:   rl.GenMeshCylinder(spec.Radius, spec.Length, spec.Slices),
			offset: mgl32.Vec3{0, -spec.Length / 2, 0},
		}}
	case scene.KindCone:
		return []part{{
			mesh:   rl.GenMeshCone(spec.Radius, spec.Length, spec.Slices),
			offset: mgl32.Vec3{0, -spec.Length / 2, 0},
		}}
	case scene.KindTorus:
		// raylib's torus size argument is the ring diameter; its radius
		// argument is the tube radius relative to the ring.
		return []part{{mesh: rl.GenMeshTorus(spec.Tube/spec.Radius, spec.Radius*2, spec.Slices, spec.Rings)}}
	case scene.KindCapsule:
		body := rl.GenMeshCylinder(spec.Radius, spec.Length, spec.Slices)
		dome := rl.GenMeshSphere(spec.Radius, spec.Rings, spec.Slices)
		half := spec.Length / 2
		return []part{
			{mesh: body, offset: mgl32.Vec3{0, -half, 0}},
			{mesh: dome, offset: mgl32.Vec3{0, half, 0}},
			{mesh: dome, offset: mgl32.Vec3{0, -half, 0}},
		}
	}
	return nil
}

// draw renders one shape node under the given world transform. tex is used
// when hasTex is set; otherwise the flat material color applies.
func (r *registry) draw(kind scene.Kind, world mgl32.Mat4, mat render.Material, tex rl.Texture2D, hasTex bool) {
	r.ensure()
	parts, ok := r.parts[kind]
	if !ok {
		return
	}

	mtl := r.mtl
	if hasTex {
		mtl = r.texMtl
		rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		if hasTex {
			albedo.Color = rl.White
		} else {
			albedo.Color = rl.NewColor(mat.Color[0], mat.Color[1], mat.Color[2], mat.Color[3])
		}
	}
	r.setUniforms(mtl.Shader, mat)

	for _, p := range parts {
		t := world
		if p.offset != (mgl32.Vec3{}) {
			t = world.Mul4(mgl32.Translate3D(p.offset[0], p.offset[1], p.offset[2]))
		}
		rl.DrawMesh(p.mesh, mtl, rlMatrix(t))
	}
}

const (
	defaultLightIntensity   = float32(0.85)
	defaultSpecularStrength = float32(0.9)
)

var (
	defaultAmbient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
)

// setUniforms pushes per-frame and per-node shading inputs (cgo-safe: local
// arrays).
func (r *registry) setUniforms(shader rl.Shader, mat render.Material) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "metalness"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{mat.Metalness}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "roughness"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{mat.Roughness}, rl.ShaderUniformFloat)
	}
}

// rlMatrix converts a column-major mgl32 matrix to raylib's layout. Both use
// column-major element order, so this is a straight copy.
func rlMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularStrength;
uniform float metalness;
uniform float roughness;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity * (1.0 - 0.6 * metalness);
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float gloss = 1.0 - roughness;
  float shininess = mix(4.0, 256.0, gloss * gloss);
  float spec = pow(NdotH, shininess) * mix(0.04, 1.0, metalness) * specularStrength * (0.25 + 0.75 * gloss);
  vec3 specTint = mix(vec3(1.0), tint.rgb, metalness);
  vec3 specular = lightColor * specTint * spec * step(0.001, NdotL);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularStrength;
uniform float metalness;
uniform float roughness;
uniform sampler2D albedoMap;
out vec4 finalColor;
void main() {
  vec4 texColor = texture(albedoMap, fragTexCoord);
  vec4 tint = texColor * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity * (1.0 - 0.6 * metalness);
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float gloss = 1.0 - roughness;
  float shininess = mix(4.0, 256.0, gloss * gloss);
  float spec = pow(NdotH, shininess) * mix(0.04, 1.0, metalness) * specularStrength * (0.25 + 0.75 * gloss);
  vec3 specTint = mix(vec3(1.0), tint.rgb, metalness);
  vec3 specular = lightColor * specTint * spec * step(0.001, NdotL);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)
