package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane, normalizing the normal.
// A zero-length normal fails with core.ErrDegenerateDirection.
func NewPlane(point, normal core.Vec3, mat material.Material) (*Plane, error) {
	unit, ok := normal.Normalized()
	if !ok {
		return nil, core.ErrDegenerateDirection
	}
	return &Plane{
		Point:    point,
		Normal:   unit,
		Material: mat,
	}, nil
}

// Intersect tests if a ray intersects with the plane.
// The normal is reported as constructed regardless of which side the ray
// comes from.
func (p *Plane) Intersect(ray core.Ray) (*Intersection, bool) {
	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / ray.Direction.Dot(p.Normal)

	// A parallel ray divides by zero; NaN and ±Inf both count as a miss
	if math.IsNaN(t) || math.IsInf(t, 0) || t < MinHitDistance {
		return nil, false
	}

	return &Intersection{
		Material: p.Material,
		Normal:   p.Normal,
		T:        t,
	}, true
}
