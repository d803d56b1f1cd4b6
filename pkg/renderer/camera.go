package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
)

// DefaultMaxBounces is the reflection budget used for every primary ray
const DefaultMaxBounces = 3

// Camera is a pinhole camera with a rectangular virtual sensor placed
// FocalLength behind the eye along W. It looks along -W.
type Camera struct {
	Basis         core.Basis
	Position      core.Vec3 // Eye position
	FocalLength   float64
	SensorExtents core.Vec3 // Half width and half height of the sensor
	MaxBounces    int       // Reflection budget per primary ray
}

// NewCamera creates a camera at position looking along lookDirection.
// It fails exactly when the viewing basis cannot be built.
func NewCamera(position, upDirection, lookDirection core.Vec3, focalLength float64, sensorSize core.Vec3) (*Camera, error) {
	basis, err := core.NewBasis(lookDirection.Negate(), upDirection)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	return &Camera{
		Basis:         basis,
		Position:      position,
		FocalLength:   focalLength,
		SensorExtents: sensorSize.Divide(2),
		MaxBounces:    DefaultMaxBounces,
	}, nil
}

// PixelExtents returns the half size of one pixel on the sensor
func (c *Camera) PixelExtents(width, height int) core.Vec3 {
	return core.NewVec3(c.SensorExtents.X/float64(width), c.SensorExtents.Y/float64(height), 0)
}

// PixelWorldPosition maps pixel (px, py) to the center of its cell on the
// sensor plane. The grid is symmetric about the optical axis.
func (c *Camera) PixelWorldPosition(px, py, width, height int, pixelExtents core.Vec3) core.Vec3 {
	offsetU := pixelExtents.X * float64(2*px-width+1)
	offsetV := pixelExtents.Y * float64(2*py-height+1)

	return c.Position.
		Subtract(c.Basis.U.Multiply(offsetU)).
		Subtract(c.Basis.V.Multiply(offsetV)).
		Subtract(c.Basis.W.Multiply(c.FocalLength))
}

// PrimaryRay returns the ray from the eye through pixel (px, py).
// It only fails when the pixel position coincides with the eye.
func (c *Camera) PrimaryRay(px, py, width, height int) (core.Ray, error) {
	pixelPosition := c.PixelWorldPosition(px, py, width, height, c.PixelExtents(width, height))
	return core.NewRayBetween(c.Position, pixelPosition)
}

// RenderPixel computes the color of a single pixel. A primary ray that
// escapes the scene yields black.
func (c *Camera) RenderPixel(px, py, width, height int, surface geometry.Surface, light lights.Light) core.Color {
	var stats RenderStats
	return c.renderPixel(px, py, width, height, c.PixelExtents(width, height), c.newTracer(surface, light, &stats))
}

func (c *Camera) renderPixel(px, py, width, height int, pixelExtents core.Vec3, tr *tracer) core.Color {
	tr.stats.TotalPixels++

	ray, err := core.NewRayBetween(c.Position, c.PixelWorldPosition(px, py, width, height, pixelExtents))
	if err != nil {
		tr.stats.PrimaryMisses++
		return core.Black
	}

	result, ok := tr.trace(ray, c.MaxBounces)
	if !ok {
		tr.stats.PrimaryMisses++
		return core.Black
	}

	tr.stats.PrimaryHits++
	return result.Color
}

// RenderFrame renders every pixel of raster in its row-major order.
// Rendering is single threaded and deterministic; a Paint error aborts
// the frame.
func (c *Camera) RenderFrame(surface geometry.Surface, light lights.Light, raster Raster) (RenderStats, error) {
	start := time.Now()
	width, height := raster.Resolution()
	pixelExtents := c.PixelExtents(width, height)

	var stats RenderStats
	tr := c.newTracer(surface, light, &stats)

	for px, py := range raster.Pixels() {
		color := c.renderPixel(px, py, width, height, pixelExtents, tr)
		if err := raster.Paint(px, py, color); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, fmt.Errorf("paint pixel (%d, %d): %w", px, py, err)
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}
