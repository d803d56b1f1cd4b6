package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrInvalidCoefficient reports a negative or non-finite material coefficient
var ErrInvalidCoefficient = errors.New("invalid material coefficient")

// Material describes how a surface responds to light. It is an immutable
// value attached to a surface at construction time.
type Material struct {
	Color     core.Color // Base color, modulated by the lighting intensity
	Diffuse   float64    // Lambertian coefficient
	Specular  float64    // Blinn-Phong highlight coefficient
	Shininess float64    // Blinn-Phong exponent
	Mirror    float64    // Weight of the recursively traced reflection
}

// NewMaterial creates a material from its coefficients
func NewMaterial(color core.Color, diffuse, specular, shininess, mirror float64) Material {
	return Material{
		Color:     color,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
		Mirror:    mirror,
	}
}

// NewMatte creates a purely diffuse material
func NewMatte(color core.Color) Material {
	return Material{Color: color, Diffuse: 1}
}

// NewMirror creates a perfectly reflective material that still receives
// diffuse light so its base color shows through
func NewMirror(color core.Color) Material {
	return Material{Color: color, Diffuse: 1, Mirror: 1}
}

// Validate rejects negative or non-finite coefficients
func (m Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
		{"mirror", m.Mirror},
	}

	for _, c := range coefficients {
		if c.value < 0 || math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s = %g", ErrInvalidCoefficient, c.name, c.value)
		}
	}
	return nil
}
