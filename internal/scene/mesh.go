package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/material"
)

// Sphere mesh resolution.
const (
	sphereRings  = 32
	sphereSlices = 32
)

// Mesh is a sphere drawn with its material. GPU resources are created on the
// first draw so that they are allocated after the window/OpenGL context exists.
type Mesh struct {
	name     string
	diameter float32
	mat      *material.Material

	loaded   bool
	mesh     rl.Mesh
	mtl      rl.Material
	uniforms *uniforms
	custom   bool
}

var _ engine.Mesh = (*Mesh)(nil)

// Name returns the mesh name.
func (m *Mesh) Name() string { return m.name }

// Material returns the material the mesh was created with.
func (m *Mesh) Material() *material.Material { return m.mat }

// ensureLoaded builds the sphere geometry and compiles the material shader.
// A material shader that fails to compile falls back to the built-in lit shader.
func (m *Mesh) ensureLoaded() {
	if m.loaded {
		return
	}
	m.loaded = true
	m.mesh = rl.GenMeshSphere(m.diameter/2, sphereRings, sphereSlices)
	m.mtl = rl.LoadMaterialDefault()
	if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		c := m.mat.Diffuse
		albedo.Color = rl.NewColor(c.R, c.G, c.B, c.A)
	}

	shader := rl.Shader{}
	if m.mat.HasShader() {
		shader = rl.LoadShaderFromMemory(m.mat.VertexShader, m.mat.FragmentShader)
		m.custom = rl.IsShaderValid(shader)
	}
	if !m.custom {
		shader = loadLitShader()
	}
	if rl.IsShaderValid(shader) {
		m.mtl.Shader = shader
	}
	m.uniforms = newUniforms(m.mtl.Shader)
}

// draw draws the mesh at the origin. Must be called between BeginMode3D and EndMode3D.
func (m *Mesh) draw(s *Scene, viewPos rl.Vector3) {
	m.ensureLoaded()
	u := m.uniforms
	u.set("viewPos", viewPos.X, viewPos.Y, viewPos.Z)
	if h := s.hemispheric(); h != nil {
		d := h.Direction.Normalize()
		u.set("hemiDir", d.X(), d.Y(), d.Z())
		u.set("hemiSky", h.Sky.X(), h.Sky.Y(), h.Sky.Z())
		u.set("hemiGround", h.Ground.X(), h.Ground.Y(), h.Ground.Z())
		u.set("hemiIntensity", h.Intensity)
	} else {
		u.set("hemiIntensity", 0)
	}
	if p := s.point(); p != nil {
		u.set("pointPos", p.Position.X(), p.Position.Y(), p.Position.Z())
		u.set("pointColor", p.Color.X(), p.Color.Y(), p.Color.Z())
		u.set("pointIntensity", p.Intensity)
	} else {
		u.set("pointIntensity", 0)
	}
	u.set("specularPower", m.mat.SpecularPower)
	u.set("specularStrength", m.mat.SpecularStrength)
	for name, v := range m.mat.Uniforms {
		u.set(name, v...)
	}
	rl.DrawMesh(m.mesh, m.mtl, rl.MatrixIdentity())
}

func (m *Mesh) unload() {
	if !m.loaded {
		return
	}
	rl.UnloadMesh(&m.mesh)
	rl.UnloadMaterial(m.mtl)
	m.loaded = false
}
