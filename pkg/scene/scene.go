package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// Default output resolution, matching the 16:9 sensor of the default camera
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Camera      *renderer.Camera
	Surfaces    []geometry.Surface     // Objects in the scene, in intersection order
	World       *geometry.MultiSurface // Composite over Surfaces
	Light       lights.Light
	Width       int
	Height      int
}

// New assembles a scene; World is built from surfaces in the given order
func New(name string, camera *renderer.Camera, light lights.Light, width, height int, surfaces ...geometry.Surface) *Scene {
	return &Scene{
		Name:     name,
		Camera:   camera,
		Surfaces: surfaces,
		World:    geometry.NewMultiSurface(surfaces...),
		Light:    light,
		Width:    width,
		Height:   height,
	}
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetSurface implements renderer.Scene
func (s *Scene) GetSurface() geometry.Surface {
	return s.World
}

// GetLight implements renderer.Scene
func (s *Scene) GetLight() lights.Light {
	return s.Light
}

// GetResolution implements renderer.Scene
func (s *Scene) GetResolution() (int, int) {
	return s.Width, s.Height
}

// WithResolution returns a shallow copy rendering at width x height.
// Non-positive values keep the scene's own resolution.
func (s *Scene) WithResolution(width, height int) *Scene {
	copied := *s
	if width > 0 {
		copied.Width = width
	}
	if height > 0 {
		copied.Height = height
	}
	return &copied
}
