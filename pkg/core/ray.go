package core

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray, normalizing direction.
// Fails with ErrDegenerateDirection for a zero-length direction.
func NewRay(origin, direction Vec3) (Ray, error) {
	unit, ok := direction.Normalized()
	if !ok {
		return Ray{}, ErrDegenerateDirection
	}
	return Ray{Origin: origin, Direction: unit}, nil
}

// NewRayBetween creates a ray starting at from and passing through to
func NewRayBetween(from, to Vec3) (Ray, error) {
	return NewRay(from, to.Subtract(from))
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
