package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// HemisphericLight lights every surface with a blend of Sky and Ground colors,
// weighted by how much the surface normal faces Direction.
type HemisphericLight struct {
	name      string
	Direction mgl32.Vec3
	Sky       mgl32.Vec3
	Ground    mgl32.Vec3
	Intensity float32
}

// Name returns the light name.
func (l *HemisphericLight) Name() string { return l.name }

// PointLight emits from Position in every direction.
type PointLight struct {
	name      string
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Name returns the light name.
func (l *PointLight) Name() string { return l.name }
