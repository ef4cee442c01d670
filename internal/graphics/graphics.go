package graphics

import (
	"context"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sphere-viewer/internal/debug"
	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/scene"
)

// ErrWindowOpen is returned when a second surface is requested; the host has one window.
var ErrWindowOpen = errors.New("graphics: window already open")

var clearColor = rl.NewColor(51, 51, 76, 255)

// Config describes the window.
type Config struct {
	Title     string
	Width     int
	Height    int
	CanvasID  string
	TargetFPS int
	Debug     debug.Options
}

// Host is the raylib desktop host. Its single canvas is the window, known by Config.CanvasID.
// Raylib must be driven from the main OS thread; callers lock it before NewSurface.
type Host struct {
	cfg     Config
	resize  []func()
	keyDown []func(code string)
	surface *Surface
}

var _ engine.Host = (*Host)(nil)

// New returns a host for cfg. No window is opened until NewSurface.
func New(cfg Config) *Host {
	return &Host{cfg: cfg}
}

type canvas struct{ id string }

func (c canvas) ID() string { return c.id }

// Canvas resolves id. Only the configured canvas id exists.
func (h *Host) Canvas(id string) (engine.Canvas, error) {
	if id == "" || id != h.cfg.CanvasID {
		return nil, engine.ErrCanvasNotFound
	}
	return canvas{id: id}, nil
}

// NewSurface opens the window. Antialiasing requests 4x MSAA.
func (h *Host) NewSurface(c engine.Canvas, opts engine.SurfaceOptions) (engine.Surface, error) {
	if h.surface != nil {
		return nil, ErrWindowOpen
	}
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if opts.Antialias {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(h.cfg.Width), int32(h.cfg.Height), h.cfg.Title)
	if !rl.IsWindowReady() {
		return nil, errors.New("graphics: window could not be created")
	}
	rl.SetExitKey(rl.KeyNull) // close via the window button only
	if h.cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(h.cfg.TargetFPS))
	}
	h.surface = &Surface{host: h, canvas: c}
	h.surface.Resize()
	return h.surface, nil
}

// OnResize registers fn to run when the window is resized.
func (h *Host) OnResize(fn func()) {
	h.resize = append(h.resize, fn)
}

// OnKeyDown registers fn to run for every key press with its key code (e.g. "KeyD").
func (h *Host) OnKeyDown(fn func(code string)) {
	h.keyDown = append(h.keyDown, fn)
}

// poll dispatches this frame's window and keyboard events.
func (h *Host) poll() {
	if rl.IsWindowResized() {
		for _, fn := range h.resize {
			fn()
		}
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		code := KeyCode(key)
		if code == "" {
			continue
		}
		for _, fn := range h.keyDown {
			fn(code)
		}
	}
}

// Surface is the open window.
type Surface struct {
	host   *Host
	canvas engine.Canvas
	loop   []func()
	scenes []*scene.Scene
	width  int
	height int
}

var _ engine.Surface = (*Surface)(nil)

// NewScene creates a scene drawn on this surface.
func (s *Surface) NewScene() engine.Scene {
	sc := scene.New(s.host.cfg.Debug)
	s.scenes = append(s.scenes, sc)
	return sc
}

// Resize re-reads the framebuffer size after the window changed size.
func (s *Surface) Resize() {
	s.width = int(rl.GetRenderWidth())
	s.height = int(rl.GetRenderHeight())
}

// Size returns the framebuffer size recorded by the last Resize.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// RunRenderLoop registers fn to be called every frame.
func (s *Surface) RunRenderLoop(fn func()) {
	s.loop = append(s.loop, fn)
}

// Run runs the main loop until the window is closed or ctx is done, then
// releases scene resources and closes the window. Each frame it dispatches
// events, clears the screen and calls the registered callbacks.
func (s *Surface) Run(ctx context.Context) error {
	defer rl.CloseWindow()
	defer func() {
		for _, sc := range s.scenes {
			sc.Unload()
		}
	}()

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.host.poll()

		rl.BeginDrawing()
		rl.ClearBackground(clearColor)
		for _, fn := range s.loop {
			fn()
		}
		rl.EndDrawing()
	}
	return nil
}
