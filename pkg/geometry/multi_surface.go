package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// MultiSurface groups surfaces into one with nearest-hit semantics.
//
// It does not own its children: the caller keeps the referenced surfaces
// alive and unmodified for as long as the MultiSurface is in use.
type MultiSurface struct {
	surfaces []Surface
}

// NewMultiSurface creates a view over the given surfaces
func NewMultiSurface(surfaces ...Surface) *MultiSurface {
	return &MultiSurface{surfaces: surfaces}
}

// Intersect tests every child and returns the closest hit with a strictly
// positive, finite T. On an exact tie the earlier child wins.
func (m *MultiSurface) Intersect(ray core.Ray) (*Intersection, bool) {
	var closest *Intersection

	for _, surface := range m.surfaces {
		hit, ok := surface.Intersect(ray)
		if !ok || !(hit.T > 0) || math.IsInf(hit.T, 0) {
			continue
		}
		if closest == nil || hit.T < closest.T {
			closest = hit
		}
	}

	return closest, closest != nil
}

// Len returns the number of child surfaces
func (m *MultiSurface) Len() int {
	return len(m.surfaces)
}

// Surfaces returns the child surfaces in evaluation order
func (m *MultiSurface) Surfaces() []Surface {
	return m.surfaces
}
