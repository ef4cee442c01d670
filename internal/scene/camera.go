package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/orbit"
)

const (
	cameraFovy = 45
	// keyRotateStep is the rotation per frame, in radians, while an arrow key is held.
	keyRotateStep = 0.02
)

// Camera is an arc-rotate camera. Once attached it is steered by dragging with
// the left mouse button, the mouse wheel and the arrow keys.
type Camera struct {
	name     string
	orbit    *orbit.Camera
	attached engine.Canvas
	rl       rl.Camera3D
}

var _ engine.Camera = (*Camera)(nil)

func newCamera(name string, p orbit.Params) *Camera {
	c := &Camera{name: name, orbit: orbit.New(p)}
	c.rl.Fovy = cameraFovy
	c.rl.Projection = rl.CameraPerspective
	c.sync()
	return c
}

// Name returns the camera name.
func (c *Camera) Name() string { return c.name }

// Orbit returns the camera model.
func (c *Camera) Orbit() *orbit.Camera { return c.orbit }

// AttachControl makes the camera follow pointer and keyboard input on canvas.
func (c *Camera) AttachControl(canvas engine.Canvas) {
	c.attached = canvas
}

// update applies this frame's input, then refreshes the raylib camera.
func (c *Camera) update() {
	if c.attached != nil {
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			d := rl.GetMouseDelta()
			c.orbit.Rotate(d.X, d.Y)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			c.orbit.Zoom(wheel)
		}
		var da, db float32
		if rl.IsKeyDown(rl.KeyLeft) {
			da -= keyRotateStep
		}
		if rl.IsKeyDown(rl.KeyRight) {
			da += keyRotateStep
		}
		if rl.IsKeyDown(rl.KeyUp) {
			db -= keyRotateStep
		}
		if rl.IsKeyDown(rl.KeyDown) {
			db += keyRotateStep
		}
		if da != 0 || db != 0 {
			c.orbit.RotateAngles(da, db)
		}
	}
	c.sync()
}

func (c *Camera) sync() {
	c.rl.Position = vec3(c.orbit.Position())
	c.rl.Target = vec3(c.orbit.Target)
	c.rl.Up = vec3(c.orbit.Up())
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
