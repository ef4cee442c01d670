package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"sphere-viewer/internal/debug"
	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/material"
	"sphere-viewer/internal/orbit"
	"sphere-viewer/internal/ui"
)

// Default light colors, close to a white sky over a dark ground.
var (
	defaultSky        = mgl32.Vec3{1, 1, 1}
	defaultGround     = mgl32.Vec3{0.12, 0.12, 0.14}
	defaultPointColor = mgl32.Vec3{1, 0.98, 0.95}
)

const (
	defaultHemiIntensity  = 0.7
	defaultPointIntensity = 0.6
)

// Scene holds lights, one orbit camera and meshes, and draws them with raylib.
// The shader uses the first hemispheric and the first point light; further
// lights of the same kind are listed but not lit.
type Scene struct {
	debugOpts debug.Options

	lights  []engine.Light
	hemi    *HemisphericLight
	pt      *PointLight
	camera  *Camera
	meshes  []*Mesh
	overlay *debug.Overlay
}

var _ engine.Scene = (*Scene)(nil)

// New returns an empty scene. debugOpts configures the debug layer if one is requested.
func New(debugOpts debug.Options) *Scene {
	return &Scene{debugOpts: debugOpts}
}

// AddHemisphericLight adds a hemispheric light whose sky color faces direction.
func (s *Scene) AddHemisphericLight(name string, direction mgl32.Vec3) engine.Light {
	l := &HemisphericLight{
		name:      name,
		Direction: direction,
		Sky:       defaultSky,
		Ground:    defaultGround,
		Intensity: defaultHemiIntensity,
	}
	if s.hemi == nil {
		s.hemi = l
	}
	s.lights = append(s.lights, l)
	return l
}

// AddPointLight adds a point light at position.
func (s *Scene) AddPointLight(name string, position mgl32.Vec3) engine.Light {
	l := &PointLight{
		name:      name,
		Position:  position,
		Color:     defaultPointColor,
		Intensity: defaultPointIntensity,
	}
	if s.pt == nil {
		s.pt = l
	}
	s.lights = append(s.lights, l)
	return l
}

// AddOrbitCamera sets the scene camera. A scene has one camera; adding another replaces it.
func (s *Scene) AddOrbitCamera(name string, p orbit.Params) engine.Camera {
	s.camera = newCamera(name, p)
	return s.camera
}

// AddSphere adds a sphere of the given diameter drawn with m.
func (s *Scene) AddSphere(name string, diameter float32, m *material.Material) engine.Mesh {
	mesh := &Mesh{name: name, diameter: diameter, mat: m}
	s.meshes = append(s.meshes, mesh)
	return mesh
}

// DebugLayer returns the scene's debug overlay, creating it on first use.
func (s *Scene) DebugLayer() engine.Overlay {
	if s.overlay == nil {
		s.overlay = debug.New(s.debugOpts)
	}
	return s.overlay
}

func (s *Scene) hemispheric() *HemisphericLight { return s.hemi }
func (s *Scene) point() *PointLight             { return s.pt }

// Render updates the camera from input and draws the scene, then the debug overlay.
// Call after ClearBackground. Nothing 3D is drawn until a camera exists.
func (s *Scene) Render() {
	if s.camera != nil {
		s.camera.update()
		rl.BeginMode3D(s.camera.rl)
		for _, m := range s.meshes {
			m.draw(s, s.camera.rl.Position)
		}
		rl.EndMode3D()
	}
	if s.overlay != nil {
		s.overlay.Draw(s.snapshot())
	}
}

// snapshot describes the scene for the inspector panel.
func (s *Scene) snapshot() ui.Snapshot {
	var snap ui.Snapshot
	for _, l := range s.lights {
		kind := "point"
		if _, ok := l.(*HemisphericLight); ok {
			kind = "hemispheric"
		}
		snap.Lights = append(snap.Lights, l.Name()+" ("+kind+")")
	}
	if c := s.camera; c != nil {
		o := c.orbit
		p := o.Position()
		snap.Camera = &ui.CameraInfo{
			Name:     c.name,
			Alpha:    o.Alpha,
			Beta:     o.Beta,
			Radius:   o.Radius,
			Position: [3]float32{p.X(), p.Y(), p.Z()},
		}
	}
	for _, m := range s.meshes {
		snap.Meshes = append(snap.Meshes, ui.MeshInfo{Name: m.name, Material: m.mat.Name})
	}
	return snap
}

// Unload releases GPU resources held by meshes. Call before the window closes.
func (s *Scene) Unload() {
	for _, m := range s.meshes {
		m.unload()
	}
}
