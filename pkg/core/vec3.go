package core

import (
	"fmt"
	"math"
)

// Epsilon is the double precision machine epsilon (2^-52)
const Epsilon = 0x1p-52

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized returns a unit vector in the same direction.
// The second result is false when the vector is shorter than Epsilon.
func (v Vec3) Normalized() (Vec3, bool) {
	length := v.Length()
	if length < Epsilon {
		return Vec3{}, false
	}
	return v.Divide(length), true
}

// NormalizedOrZero is Normalized but returns the zero vector on failure
func (v Vec3) NormalizedOrZero() Vec3 {
	n, _ := v.Normalized()
	return n
}

// IsZeroApprox reports whether the squared length is within Epsilon of zero
func (v Vec3) IsZeroApprox() bool {
	return v.LengthSquared() <= Epsilon
}

// Reflect mirrors the vector about axis. The axis must be unit length.
func (v Vec3) Reflect(axis Vec3) Vec3 {
	return v.Subtract(axis.Multiply(2 * v.Dot(axis)))
}

// Rotate rotates the vector by angle radians around axis (Rodrigues).
// A zero-approximate axis leaves the vector unchanged.
func (v Vec3) Rotate(angle float64, axis Vec3) Vec3 {
	if axis.IsZeroApprox() {
		return v
	}
	k := axis.NormalizedOrZero()

	sin, cos := math.Sincos(angle)
	t := 1 - cos

	row0 := Vec3{cos + k.X*k.X*t, k.X*k.Y*t - k.Z*sin, k.X*k.Z*t + k.Y*sin}
	row1 := Vec3{k.Y*k.X*t + k.Z*sin, cos + k.Y*k.Y*t, k.Y*k.Z*t - k.X*sin}
	row2 := Vec3{k.Z*k.X*t - k.Y*sin, k.Z*k.Y*t + k.X*sin, cos + k.Z*k.Z*t}

	return Vec3{v.Dot(row0), v.Dot(row1), v.Dot(row2)}
}

// String formats the vector as (x, y, z)
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
