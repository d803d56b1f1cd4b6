package geometry

import (
	"errors"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// ErrInvalidRadius reports a sphere with a non-positive radius
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// MinHitDistance is the smallest ray parameter accepted as a hit. Rays
// spawned on a surface carry rounding error far above core.Epsilon at
// scene scale, and roots below this are that surface again.
const MinHitDistance = 1e-9

// Intersection describes where a ray meets a surface
type Intersection struct {
	Material material.Material // Material of the surface that was hit
	Normal   core.Vec3         // Unit outward normal at the hit point
	T        float64           // Parameter along the ray
}

// Surface is anything a ray can be intersected with.
// Intersect reports false when the ray misses.
type Surface interface {
	Intersect(ray core.Ray) (*Intersection, bool)
}
