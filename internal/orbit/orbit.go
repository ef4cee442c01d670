// Package orbit implements the arc-rotate camera model: a camera that sits on a
// sphere around a target point and is steered by two angles and a radius.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// betaEpsilon keeps beta away from the poles, where the view direction and the
// up vector become parallel.
const betaEpsilon = 0.01

// Params is the initial placement of a camera.
type Params struct {
	Alpha  float32 // longitudinal angle, radians
	Beta   float32 // latitudinal angle from +Y, radians
	Radius float32
	Target mgl32.Vec3
}

// Camera is an arc-rotate camera.
// Zero LowerRadius/UpperRadius mean no radius limit beyond staying positive.
type Camera struct {
	Alpha  float32
	Beta   float32
	Radius float32
	Target mgl32.Vec3

	LowerRadius float32
	UpperRadius float32

	// Sensitivities: radians per pixel for Rotate, fraction of radius per wheel step for Zoom.
	AngularSensitivity float32
	WheelPrecision     float32
}

// New returns a Camera placed at p with default input sensitivities.
func New(p Params) *Camera {
	c := &Camera{
		Alpha:              p.Alpha,
		Target:             p.Target,
		Radius:             p.Radius,
		Beta:               p.Beta,
		LowerRadius:        1,
		AngularSensitivity: 0.005,
		WheelPrecision:     0.1,
	}
	c.clamp()
	return c
}

// Position returns the camera position in world space:
// target + radius * (cos α sin β, cos β, sin α sin β).
func (c *Camera) Position() mgl32.Vec3 {
	// SphericalToCartesian is Z-up; swap Y and Z for a Y-up world.
	v := mgl32.SphericalToCartesian(c.Radius, c.Beta, c.Alpha)
	return c.Target.Add(mgl32.Vec3{v.X(), v.Z(), v.Y()})
}

// Up returns the camera up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// Rotate turns the camera by a pointer movement of dx, dy pixels.
func (c *Camera) Rotate(dx, dy float32) {
	c.Alpha -= dx * c.AngularSensitivity
	c.Beta -= dy * c.AngularSensitivity
	c.clamp()
}

// RotateAngles turns the camera by raw angles in radians.
func (c *Camera) RotateAngles(dAlpha, dBeta float32) {
	c.Alpha += dAlpha
	c.Beta += dBeta
	c.clamp()
}

// Zoom moves the camera toward the target for positive steps and away for negative ones.
func (c *Camera) Zoom(steps float32) {
	c.Radius -= steps * c.WheelPrecision * c.Radius
	c.clamp()
}

func (c *Camera) clamp() {
	c.Beta = mgl32.Clamp(c.Beta, betaEpsilon, math32.Pi-betaEpsilon)
	c.Alpha = wrapAngle(c.Alpha)
	if c.LowerRadius > 0 {
		c.Radius = math32.Max(c.Radius, c.LowerRadius)
	}
	if c.UpperRadius > 0 {
		c.Radius = math32.Min(c.Radius, c.UpperRadius)
	}
	if c.Radius <= 0 {
		c.Radius = betaEpsilon
	}
}

// wrapAngle maps a into (-2π, 2π) so repeated rotation does not lose precision.
func wrapAngle(a float32) float32 {
	const tau = 2 * math32.Pi
	if math32.Abs(a) < tau {
		return a
	}
	return math32.Mod(a, tau)
}
