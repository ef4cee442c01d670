package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// loadLitShader returns the built-in shader: one hemispheric light, one point light and a
// Blinn-Phong highlight from the point light. Same vertex attributes as raylib meshes:
// vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
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
uniform vec3 hemiDir;
uniform vec3 hemiSky;
uniform vec3 hemiGround;
uniform float hemiIntensity;
uniform vec3 pointPos;
uniform vec3 pointColor;
uniform float pointIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float h = 0.5 + 0.5 * dot(N, normalize(hemiDir));
  vec3 hemi = mix(hemiGround, hemiSky, h) * hemiIntensity;
  vec3 L = normalize(pointPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 point = pointColor * NdotL * pointIntensity;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = pointColor * pointIntensity * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(tint.rgb * (hemi + point) + specular, tint.a);
}
`
)

// uniforms caches shader uniform locations by name.
type uniforms struct {
	shader rl.Shader
	locs   map[string]int32
}

func newUniforms(shader rl.Shader) *uniforms {
	return &uniforms{shader: shader, locs: make(map[string]int32)}
}

func (u *uniforms) loc(name string) int32 {
	if l, ok := u.locs[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(u.shader, name)
	u.locs[name] = l
	return l
}

// set assigns a float uniform of 1 to 4 components; unknown names and other lengths are skipped.
func (u *uniforms) set(name string, v ...float32) {
	l := u.loc(name)
	if l < 0 {
		return
	}
	vals := append([]float32(nil), v...)
	switch len(vals) {
	case 1:
		rl.SetShaderValue(u.shader, l, vals, rl.ShaderUniformFloat)
	case 2:
		rl.SetShaderValueV(u.shader, l, vals, rl.ShaderUniformVec2, 1)
	case 3:
		rl.SetShaderValueV(u.shader, l, vals, rl.ShaderUniformVec3, 1)
	case 4:
		rl.SetShaderValueV(u.shader, l, vals, rl.ShaderUniformVec4, 1)
	}
}
