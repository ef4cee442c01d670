// Package app is the application shell: it builds the scene, starts the
// material request, wires window and keyboard events, and runs the render loop.
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"sphere-viewer/internal/config"
	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/material"
	"sphere-viewer/internal/orbit"
)

// Scene contents.
const (
	HemisphericLightName = "HemisphericLight"
	PointLightName       = "PointLight"
	CameraName           = "Camera"
	MeshName             = "Mesh"
	SphereDiameter       = 3

	// ToggleKey is the key code that shows and hides the debug overlay.
	ToggleKey = "KeyD"
)

var (
	hemisphericDirection = mgl32.Vec3{1, 1, 0}
	pointLightPosition   = mgl32.Vec3{3, 3, -3}

	cameraParams = orbit.Params{
		Alpha:  -math.Pi / 2,
		Beta:   math.Pi / 2,
		Radius: 10,
	}
)

// closeTimeout bounds how long Close waits for the material load to stop.
var closeTimeout = 2 * time.Second

// Options configures an Application.
type Options struct {
	Mode config.Mode
	// CanvasID is the id of the canvas to draw into.
	CanvasID  string
	Antialias bool
	// MaterialID is the remote material to request; MaterialName replaces its name once loaded.
	MaterialID   string
	MaterialName string
	// EmbedOverlay docks the debug overlay inside the canvas.
	EmbedOverlay bool
}

// OptionsFromConfig maps the viewer configuration onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Mode:         cfg.Mode,
		CanvasID:     cfg.Window.Canvas,
		Antialias:    cfg.Window.Antialias,
		MaterialID:   cfg.Material.Snippet,
		MaterialName: cfg.Material.Name,
		EmbedOverlay: cfg.Debug.EmbedMode,
	}
}

// Application owns everything the viewer creates. All of its state is touched
// only from the goroutine that calls Init, Run and Close; the material load
// publishes its result through a Task that Frame polls.
type Application struct {
	opts   Options
	host   engine.Host
	loader material.Loader
	log    logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc

	initialized bool
	closed      bool

	canvas  engine.Canvas
	surface engine.Surface
	scene   engine.Scene
	lights  []engine.Light
	camera  engine.Camera
	mesh    engine.Mesh
	overlay engine.Overlay

	task            *material.Task
	materialSettled bool

	debug bool
}

// New returns an Application drawing through host and loading its material with loader.
func New(opts Options, host engine.Host, loader material.Loader, log logrus.FieldLogger) *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		opts:   opts,
		host:   host,
		loader: loader,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Init builds the scene and registers event handlers. It is meant to be called
// once; later calls do nothing. An error means the viewer cannot start.
func (a *Application) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.setup(); err != nil {
		return err
	}
	a.addListeners()
	a.initialized = true
	return nil
}

func (a *Application) setup() error {
	canvas, err := a.host.Canvas(a.opts.CanvasID)
	if err != nil {
		return fmt.Errorf("canvas #%s: %w", a.opts.CanvasID, err)
	}
	a.canvas = canvas

	surface, err := a.host.NewSurface(canvas, engine.SurfaceOptions{Antialias: a.opts.Antialias})
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	a.surface = surface
	a.scene = surface.NewScene()

	a.lights = append(a.lights,
		a.scene.AddHemisphericLight(HemisphericLightName, hemisphericDirection),
		a.scene.AddPointLight(PointLightName, pointLightPosition),
	)

	a.log.WithField("material", a.opts.MaterialID).Debug("requesting material")
	a.task = material.Start(a.ctx, a.loader, a.opts.MaterialID)

	a.camera = a.scene.AddOrbitCamera(CameraName, cameraParams)
	a.camera.AttachControl(canvas)

	if a.opts.Mode.IsDevelopment() {
		a.overlay = a.scene.DebugLayer()
	}

	a.surface.RunRenderLoop(a.Frame)
	return nil
}

func (a *Application) addListeners() {
	a.host.OnResize(a.surface.Resize)
	a.host.OnKeyDown(a.ToggleDebug)
}

// ToggleDebug flips the debug overlay when code is ToggleKey in development mode.
// Any other key, or any key in production, is ignored.
func (a *Application) ToggleDebug(code string) {
	if code != ToggleKey || !a.opts.Mode.IsDevelopment() || a.overlay == nil {
		return
	}

	a.debug = !a.debug

	if a.debug {
		a.overlay.Show(engine.OverlayOptions{EmbedMode: a.opts.EmbedOverlay})
	} else {
		a.overlay.Hide()
	}
}

// Frame is the render callback: it attaches the material once it has arrived,
// then renders the scene.
func (a *Application) Frame() {
	a.resolveMaterial()
	a.scene.Render()
}

// resolveMaterial creates the sphere the first frame after the material task
// succeeds. A failed load leaves the scene without a mesh for good.
func (a *Application) resolveMaterial() {
	if a.materialSettled || a.closed || a.task == nil {
		return
	}
	select {
	case <-a.task.Done():
	default:
		return
	}
	a.materialSettled = true

	m, err := a.task.Result()
	if err != nil {
		a.log.WithError(err).WithField("material", a.task.ID()).Warn("material unavailable, sphere not created")
		return
	}
	m.Name = a.opts.MaterialName
	a.mesh = a.scene.AddSphere(MeshName, SphereDiameter, m)
	a.log.WithField("material", a.task.ID()).Info("material loaded")
}

// Run drives the render loop until the canvas is closed or ctx is done.
func (a *Application) Run(ctx context.Context) error {
	if !a.initialized {
		return fmt.Errorf("app: Run before Init")
	}
	return a.surface.Run(ctx)
}

// Close cancels an in-flight material load and waits up to closeTimeout for it
// to finish. A material that arrives after Close is discarded.
func (a *Application) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.cancel()
	if a.task == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if _, err := a.task.Wait(ctx); err != nil && ctx.Err() != nil {
		a.log.WithField("material", a.task.ID()).Warn("material load ignored cancellation, not waiting for it")
	}
}

// Mesh returns the sphere, or nil until the material has loaded.
func (a *Application) Mesh() engine.Mesh { return a.mesh }

// Camera returns the orbit camera.
func (a *Application) Camera() engine.Camera { return a.camera }

// Lights returns the scene lights in creation order.
func (a *Application) Lights() []engine.Light { return a.lights }

// Surface returns the render surface.
func (a *Application) Surface() engine.Surface { return a.surface }

// MaterialTask returns the material load handle.
func (a *Application) MaterialTask() *material.Task { return a.task }

// DebugActive reports whether the debug overlay is shown.
func (a *Application) DebugActive() bool { return a.debug }
