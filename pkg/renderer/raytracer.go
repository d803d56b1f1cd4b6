package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
)

// LightRay is the light leaving a surface point back along the incoming ray
type LightRay struct {
	Point     core.Vec3  // Where the light leaves the surface
	Direction core.Vec3  // Reverse of the incoming ray direction
	Color     core.Color // Shaded color carried by the ray
}

// tracer carries the per-frame context of the recursive shading algorithm.
// Only stats is mutated; colors depend on the inputs alone.
type tracer struct {
	eye     core.Vec3
	surface geometry.Surface
	light   lights.Light
	stats   *RenderStats
}

func (c *Camera) newTracer(surface geometry.Surface, light lights.Light, stats *RenderStats) *tracer {
	return &tracer{
		eye:     c.Position,
		surface: surface,
		light:   light,
		stats:   stats,
	}
}

// trace follows ray through at most budget surface interactions.
// It reports false when the budget is exhausted or the ray escapes.
func (tr *tracer) trace(ray core.Ray, budget int) (LightRay, bool) {
	if budget <= 0 {
		return LightRay{}, false
	}

	hit, ok := tr.surface.Intersect(ray)
	if !ok {
		return LightRay{}, false
	}

	mat := hit.Material
	normal := hit.Normal
	point := ray.At(hit.T)

	// Specular and mirror geometry are measured from the eye, not from the
	// origin of the current bounce
	fromEye := point.Subtract(tr.eye).NormalizedOrZero()

	toLight := tr.light.DirectionFrom(point).Negate()
	lightMultiplier := tr.shadowMultiplier(point, toLight)

	diffuse := mat.Diffuse * math.Max(0, normal.Dot(toLight))

	bisector := fromEye.Negate().Add(toLight).NormalizedOrZero()
	specular := mat.Specular * math.Pow(math.Max(0, bisector.Dot(normal)), mat.Shininess)

	// The last interaction of the budget spawns no mirror ray
	reflection := core.Transparent
	if budget > 1 {
		if mirrorRay, err := core.NewRay(point, fromEye.Reflect(normal)); err == nil {
			tr.stats.ReflectionRays++
			if bounced, ok := tr.trace(mirrorRay, budget-1); ok {
				reflection = bounced.Color.Scale(mat.Mirror)
			}
		}
	}

	received := tr.light.Color().Scale(lightMultiplier)
	color := core.Mix(mat.Color, received.Add(reflection).Scale(diffuse+specular))

	return LightRay{
		Point:     point,
		Direction: ray.Direction.Negate(),
		Color:     color,
	}, true
}

// shadowMultiplier is 1 when nothing blocks point from the light and 0
// otherwise. Shadows are hard: no penumbra, no attenuation.
func (tr *tracer) shadowMultiplier(point, toLight core.Vec3) float64 {
	shadowRay, err := core.NewRay(point, toLight)
	if err != nil {
		return 0
	}

	tr.stats.ShadowRays++
	if _, blocked := tr.surface.Intersect(shadowRay); blocked {
		tr.stats.ShadowedHits++
		return 0
	}
	return 1
}
