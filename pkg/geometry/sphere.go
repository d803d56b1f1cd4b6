package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Intersect tests if a ray intersects with the sphere.
// The nearest root at or beyond MinHitDistance wins, so a ray starting on
// the surface does not hit the sphere at its own origin.
func (s *Sphere) Intersect(ray core.Ray) (*Intersection, bool) {
	// Vector from ray origin to sphere center
	toCenter := s.Center.Subtract(ray.Origin)
	dirLenSq := ray.Direction.LengthSquared()

	// |d|²r² − |(c−o)×d|²
	discriminant := dirLenSq*s.Radius*s.Radius - toCenter.Cross(ray.Direction).LengthSquared()
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	projection := toCenter.Dot(ray.Direction)

	// Try the closer intersection point first
	root := (projection - sqrtD) / dirLenSq
	if !(root >= MinHitDistance) {
		// Ray starts inside the sphere or the near hit is behind it
		root = (projection + sqrtD) / dirLenSq
		if !(root >= MinHitDistance) {
			return nil, false
		}
	}

	normal := ray.At(root).Subtract(s.Center).NormalizedOrZero()

	return &Intersection{
		Material: s.Material,
		Normal:   normal,
		T:        root,
	}, true
}
