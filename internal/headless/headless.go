// Package headless runs the viewer without a window: the scene is kept in
// memory and frames are driven by a ticker. Input is injected with KeyDown and
// Resize.
package headless

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/material"
	"sphere-viewer/internal/orbit"
)

// Config controls the headless runner.
type Config struct {
	CanvasID string
	Width    int
	Height   int
	// Hz is the frame rate; <= 0 means 60.
	Hz int
	// Frames stops Run after that many frames; 0 runs until ctx is done.
	Frames uint64
}

type event struct {
	resize bool
	w, h   int
	code   string
}

// Host is a windowless engine.Host.
type Host struct {
	cfg     Config
	resize  []func()
	keyDown []func(code string)
	surface *Surface

	mu      sync.Mutex
	pending []event
}

var _ engine.Host = (*Host)(nil)

// New returns a host with a single canvas named cfg.CanvasID.
func New(cfg Config) *Host {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	return &Host{cfg: cfg}
}

type canvas struct{ id string }

func (c canvas) ID() string { return c.id }

// Canvas resolves id; only the configured canvas exists.
func (h *Host) Canvas(id string) (engine.Canvas, error) {
	if id == "" || id != h.cfg.CanvasID {
		return nil, engine.ErrCanvasNotFound
	}
	return canvas{id: id}, nil
}

// NewSurface creates the in-memory surface.
func (h *Host) NewSurface(c engine.Canvas, opts engine.SurfaceOptions) (engine.Surface, error) {
	if h.surface != nil {
		return nil, fmt.Errorf("headless: surface already created")
	}
	h.surface = &Surface{host: h, canvas: c, opts: opts, width: h.cfg.Width, height: h.cfg.Height}
	h.surface.Resize()
	return h.surface, nil
}

// OnResize registers fn to run on each resize event.
func (h *Host) OnResize(fn func()) { h.resize = append(h.resize, fn) }

// OnKeyDown registers fn to run on each key press.
func (h *Host) OnKeyDown(fn func(code string)) { h.keyDown = append(h.keyDown, fn) }

// KeyDown queues a key press for the next frame. Safe for concurrent use.
func (h *Host) KeyDown(code string) {
	h.mu.Lock()
	h.pending = append(h.pending, event{code: code})
	h.mu.Unlock()
}

// Resize queues a canvas size change for the next frame. Safe for concurrent use.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	h.pending = append(h.pending, event{resize: true, w: width, h: height})
	h.mu.Unlock()
}

// Surface returns the surface, or nil before NewSurface.
func (h *Host) Surface() *Surface { return h.surface }

func (h *Host) dispatch() {
	h.mu.Lock()
	events := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, e := range events {
		if e.resize {
			h.cfg.Width, h.cfg.Height = e.w, e.h
			for _, fn := range h.resize {
				fn()
			}
			continue
		}
		for _, fn := range h.keyDown {
			fn(e.code)
		}
	}
}

// Surface is an in-memory engine.Surface.
type Surface struct {
	host    *Host
	canvas  engine.Canvas
	opts    engine.SurfaceOptions
	loop    []func()
	scenes  []*Scene
	width   int
	height  int
	resizes int
	frames  uint64
}

var _ engine.Surface = (*Surface)(nil)

// NewScene creates an in-memory scene.
func (s *Surface) NewScene() engine.Scene {
	sc := &Scene{}
	s.scenes = append(s.scenes, sc)
	return sc
}

// Resize copies the canvas size into the drawing buffer size.
func (s *Surface) Resize() {
	s.width, s.height = s.host.cfg.Width, s.host.cfg.Height
	s.resizes++
}

// Size returns the drawing buffer size.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resizes counts Resize calls, including the initial one.
func (s *Surface) Resizes() int { return s.resizes }

// Antialias reports whether antialiasing was requested.
func (s *Surface) Antialias() bool { return s.opts.Antialias }

// Frames returns how many frames have run.
func (s *Surface) Frames() uint64 { return s.frames }

// RunRenderLoop registers fn to be called every frame.
func (s *Surface) RunRenderLoop(fn func()) { s.loop = append(s.loop, fn) }

// Step runs one frame: queued events first, then the render callbacks.
func (s *Surface) Step() {
	s.host.dispatch()
	for _, fn := range s.loop {
		fn()
	}
	s.frames++
}

// Run steps at the configured rate until ctx is done or the frame limit is reached.
func (s *Surface) Run(ctx context.Context) error {
	t := time.NewTicker(time.Second / time.Duration(s.host.cfg.Hz))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Step()
			if s.host.cfg.Frames > 0 && s.frames >= s.host.cfg.Frames {
				return nil
			}
		}
	}
}

// Scene is an in-memory engine.Scene that records what was added to it.
type Scene struct {
	Lights  []*Light
	Camera  *Camera
	Meshes  []*Mesh
	Overlay *Overlay
	Renders int
}

var _ engine.Scene = (*Scene)(nil)

// Light is a recorded light.
type Light struct {
	name string
	Kind string // "hemispheric" or "point"
	Vec  mgl32.Vec3
}

// Name returns the light name.
func (l *Light) Name() string { return l.name }

// Camera is a recorded orbit camera.
type Camera struct {
	name     string
	orbit    *orbit.Camera
	Attached engine.Canvas
}

// Name returns the camera name.
func (c *Camera) Name() string { return c.name }

// Orbit returns the camera model.
func (c *Camera) Orbit() *orbit.Camera { return c.orbit }

// AttachControl records the canvas the camera listens to.
func (c *Camera) AttachControl(cv engine.Canvas) { c.Attached = cv }

// Mesh is a recorded sphere.
type Mesh struct {
	name     string
	Diameter float32
	mat      *material.Material
}

// Name returns the mesh name.
func (m *Mesh) Name() string { return m.name }

// Material returns the mesh material.
func (m *Mesh) Material() *material.Material { return m.mat }

// AddHemisphericLight records a hemispheric light.
func (s *Scene) AddHemisphericLight(name string, direction mgl32.Vec3) engine.Light {
	l := &Light{name: name, Kind: "hemispheric", Vec: direction}
	s.Lights = append(s.Lights, l)
	return l
}

// AddPointLight records a point light.
func (s *Scene) AddPointLight(name string, position mgl32.Vec3) engine.Light {
	l := &Light{name: name, Kind: "point", Vec: position}
	s.Lights = append(s.Lights, l)
	return l
}

// AddOrbitCamera records the camera.
func (s *Scene) AddOrbitCamera(name string, p orbit.Params) engine.Camera {
	s.Camera = &Camera{name: name, orbit: orbit.New(p)}
	return s.Camera
}

// AddSphere records a sphere.
func (s *Scene) AddSphere(name string, diameter float32, m *material.Material) engine.Mesh {
	mesh := &Mesh{name: name, Diameter: diameter, mat: m}
	s.Meshes = append(s.Meshes, mesh)
	return mesh
}

// DebugLayer returns the scene overlay, creating it on first use.
func (s *Scene) DebugLayer() engine.Overlay {
	if s.Overlay == nil {
		s.Overlay = &Overlay{}
	}
	return s.Overlay
}

// Render counts the frame.
func (s *Scene) Render() { s.Renders++ }

// Overlay records its visibility.
type Overlay struct {
	visible bool
	Embed   bool
	Shows   int
	Hides   int
}

// Show marks the overlay visible.
func (o *Overlay) Show(opts engine.OverlayOptions) {
	o.visible = true
	o.Embed = opts.EmbedMode
	o.Shows++
}

// Hide marks the overlay hidden.
func (o *Overlay) Hide() {
	o.visible = false
	o.Hides++
}

// IsVisible reports whether the overlay is shown.
func (o *Overlay) IsVisible() bool { return o.visible }
