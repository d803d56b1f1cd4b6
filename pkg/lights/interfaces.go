package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Light is a source of direct illumination
type Light interface {
	// DirectionFrom returns the unit direction the light travels when it
	// reaches point, i.e. pointing away from the light. Shading negates it
	// to get the direction toward the light.
	DirectionFrom(point core.Vec3) core.Vec3

	// Color returns the constant color of the light
	Color() core.Color
}
