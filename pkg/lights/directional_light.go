package lights

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// DirectionalLight is a light infinitely far away whose rays are all
// parallel, like sunlight
type DirectionalLight struct {
	Direction core.Vec3  // Unit direction of travel
	Emission  core.Color // Light color
}

// NewDirectionalLight creates a directional light, normalizing direction.
// A zero-length direction fails with core.ErrDegenerateDirection.
func NewDirectionalLight(direction core.Vec3, color core.Color) (*DirectionalLight, error) {
	unit, ok := direction.Normalized()
	if !ok {
		return nil, core.ErrDegenerateDirection
	}
	return &DirectionalLight{Direction: unit, Emission: color}, nil
}

// DirectionFrom implements Light; the direction is the same everywhere
func (l *DirectionalLight) DirectionFrom(core.Vec3) core.Vec3 {
	return l.Direction
}

// Color implements Light
func (l *DirectionalLight) Color() core.Color {
	return l.Emission
}
