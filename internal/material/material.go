// Package material resolves remote material definitions into values a scene can draw with.
package material

import (
	"context"
	"image/color"
	"time"
)

// Material describes a mesh surface. When VertexShader and FragmentShader are
// both empty the scene draws with its built-in lit shader, tinted by Diffuse.
type Material struct {
	Name string

	VertexShader   string
	FragmentShader string

	Diffuse          color.RGBA
	SpecularPower    float32
	SpecularStrength float32

	// Uniforms are extra float uniforms set on the shader every frame.
	// Slices of length 1 to 4 map to float, vec2, vec3 and vec4.
	Uniforms map[string][]float32
}

// HasShader reports whether m carries its own shader program.
func (m *Material) HasShader() bool {
	return m.VertexShader != "" && m.FragmentShader != ""
}

// Loader resolves a material id into a Material.
type Loader interface {
	Load(ctx context.Context, id string) (*Material, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, id string) (*Material, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, id string) (*Material, error) {
	return f(ctx, id)
}

// WithTimeout bounds every Load on l by d. A non-positive d returns l unchanged.
func WithTimeout(l Loader, d time.Duration) Loader {
	if d <= 0 {
		return l
	}
	return LoaderFunc(func(ctx context.Context, id string) (*Material, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return l.Load(ctx, id)
	})
}

var defaultDiffuse = color.RGBA{R: 200, G: 200, B: 200, A: 255}

const (
	defaultSpecularPower    = 48
	defaultSpecularStrength = 0.35
)

// Definition is the JSON form of a material inside a snippet payload.
type Definition struct {
	Name             string               `json:"name"`
	VertexShader     string               `json:"vertexShader,omitempty"`
	FragmentShader   string               `json:"fragmentShader,omitempty"`
	DiffuseColor     []float32            `json:"diffuseColor,omitempty"`
	SpecularPower    *float32             `json:"specularPower,omitempty"`
	SpecularStrength *float32             `json:"specularStrength,omitempty"`
	Uniforms         map[string][]float32 `json:"uniforms,omitempty"`
}

// Material builds a Material from d, filling defaults for absent fields.
// DiffuseColor components are 0-1; a missing alpha means opaque.
func (d *Definition) Material() *Material {
	m := &Material{
		Name:             d.Name,
		VertexShader:     d.VertexShader,
		FragmentShader:   d.FragmentShader,
		Diffuse:          defaultDiffuse,
		SpecularPower:    defaultSpecularPower,
		SpecularStrength: defaultSpecularStrength,
	}
	if len(d.DiffuseColor) >= 3 {
		m.Diffuse = color.RGBA{
			R: unit8(d.DiffuseColor[0]),
			G: unit8(d.DiffuseColor[1]),
			B: unit8(d.DiffuseColor[2]),
			A: 255,
		}
		if len(d.DiffuseColor) >= 4 {
			m.Diffuse.A = unit8(d.DiffuseColor[3])
		}
	}
	if d.SpecularPower != nil {
		m.SpecularPower = *d.SpecularPower
	}
	if d.SpecularStrength != nil {
		m.SpecularStrength = *d.SpecularStrength
	}
	for name, v := range d.Uniforms {
		if len(v) == 0 || len(v) > 4 {
			continue
		}
		if m.Uniforms == nil {
			m.Uniforms = make(map[string][]float32)
		}
		m.Uniforms[name] = append([]float32(nil), v...)
	}
	return m
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
