// Package engine declares the rendering capabilities the application shell is
// built from. Backends (the raylib window, the headless runner) implement them.
package engine

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"sphere-viewer/internal/material"
	"sphere-viewer/internal/orbit"
)

// ErrCanvasNotFound is returned by Host.Canvas when no drawable canvas has the requested id.
var ErrCanvasNotFound = errors.New("canvas not found")

// Canvas is a drawable region located on the host.
type Canvas interface {
	ID() string
}

// SurfaceOptions configures a Surface.
type SurfaceOptions struct {
	Antialias bool
}

// Host resolves canvases, creates surfaces on them and delivers window and keyboard events.
// Event handlers run on the render loop goroutine.
type Host interface {
	Canvas(id string) (Canvas, error)
	NewSurface(c Canvas, opts SurfaceOptions) (Surface, error)
	OnResize(fn func())
	OnKeyDown(fn func(code string))
}

// Surface is a canvas with a renderer bound to it.
type Surface interface {
	NewScene() Scene
	// Resize recomputes the drawing buffer and viewport from the canvas size.
	Resize()
	Size() (width, height int)
	// RunRenderLoop registers fn to be called once per frame while Run is active.
	RunRenderLoop(fn func())
	// Run drives the render loop until the canvas goes away or ctx is done.
	Run(ctx context.Context) error
}

// Scene is a scene graph attached to a Surface.
type Scene interface {
	AddHemisphericLight(name string, direction mgl32.Vec3) Light
	AddPointLight(name string, position mgl32.Vec3) Light
	AddOrbitCamera(name string, p orbit.Params) Camera
	// AddSphere creates a sphere mesh that draws with m from its first frame.
	AddSphere(name string, diameter float32, m *material.Material) Mesh
	// DebugLayer returns the scene's debug overlay, creating it on first use.
	DebugLayer() Overlay
	// Render advances per-frame state and draws the scene.
	Render()
}

// Node is anything named in a Scene.
type Node interface {
	Name() string
}

// Light is a scene light.
type Light interface {
	Node
}

// Camera is a scene camera.
type Camera interface {
	Node
	Orbit() *orbit.Camera
	// AttachControl makes the camera respond to pointer and keyboard input on c.
	AttachControl(c Canvas)
}

// Mesh is a drawable scene node.
type Mesh interface {
	Node
	Material() *material.Material
}

// OverlayOptions configures how the debug overlay is shown.
type OverlayOptions struct {
	// EmbedMode docks the overlay inside the canvas instead of floating over it.
	EmbedMode bool
}

// Overlay is a diagnostic view layered on a scene.
type Overlay interface {
	Show(opts OverlayOptions)
	Hide()
	IsVisible() bool
}
