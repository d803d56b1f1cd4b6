package renderer

import (
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

const tolerance = 1e-9

func vecNear(a, b core.Vec3) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

func colorNear(a, b core.Color) bool {
	return math.Abs(a.R-b.R) < tolerance && math.Abs(a.G-b.G) < tolerance &&
		math.Abs(a.B-b.B) < tolerance && math.Abs(a.A-b.A) < tolerance
}

// testCamera sits at the origin looking down +z with y up
func testCamera(t *testing.T) *Camera {
	t.Helper()
	camera, err := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1), 8, core.NewVec3(16, 9, 0))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	return camera
}

func testLight(t *testing.T, direction core.Vec3) *lights.DirectionalLight {
	t.Helper()
	light, err := lights.NewDirectionalLight(direction, core.White)
	if err != nil {
		t.Fatalf("NewDirectionalLight failed: %v", err)
	}
	return light
}

func testSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return sphere
}

func testPlane(t *testing.T, point, normal core.Vec3, mat material.Material) *geometry.Plane {
	t.Helper()
	plane, err := geometry.NewPlane(point, normal, mat)
	if err != nil {
		t.Fatalf("NewPlane failed: %v", err)
	}
	return plane
}

// testScene implements Scene for the renderer tests
type testScene struct {
	camera        *Camera
	surface       geometry.Surface
	light         lights.Light
	width, height int
}

func (s *testScene) GetCamera() *Camera                 { return s.camera }
func (s *testScene) GetSurface() geometry.Surface       { return s.surface }
func (s *testScene) GetLight() lights.Light             { return s.light }
func (s *testScene) GetResolution() (width, height int) { return s.width, s.height }

// threeSphereScene is a small version of the default composition
func threeSphereScene(t *testing.T, width, height int) *testScene {
	t.Helper()
	world := geometry.NewMultiSurface(
		testSphere(t, core.NewVec3(0, -5, 30), 10, material.NewMaterial(core.NewColor(0, 1, 0, 1), 1, 1, 10, 1)),
		testSphere(t, core.NewVec3(-16, 0, 30), 6, material.NewMaterial(core.NewColor(1, 0.25, 0.125, 1), 1, 0.4, 2, 0.1)),
		testSphere(t, core.NewVec3(0, 10, 30), 5, material.NewMaterial(core.NewColor(0.35, 0.15, 0.8, 1), 1, 1, 100, 1)),
		testPlane(t, core.NewVec3(0, -4, 0), core.NewVec3(0, 1, 0), material.NewMaterial(core.NewColor(0.3, 0.3, 0.3, 1), 1, 1, 10, 1)),
	)
	return &testScene{
		camera:  testCamera(t),
		surface: world,
		light:   testLight(t, core.NewVec3(-1, -1, 0)),
		width:   width,
		height:  height,
	}
}

func TestNewCamera_Basis(t *testing.T) {
	camera := testCamera(t)

	if !vecNear(camera.Basis.W, core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected W (0, 0, -1), got %v", camera.Basis.W)
	}
	if !vecNear(camera.Basis.U, core.NewVec3(-1, 0, 0)) {
		t.Errorf("Expected U (-1, 0, 0), got %v", camera.Basis.U)
	}
	if !vecNear(camera.Basis.V, core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected V (0, 1, 0), got %v", camera.Basis.V)
	}
	if !vecNear(camera.SensorExtents, core.NewVec3(8, 4.5, 0)) {
		t.Errorf("Expected sensor extents (8, 4.5, 0), got %v", camera.SensorExtents)
	}
	if camera.MaxBounces != DefaultMaxBounces {
		t.Errorf("Expected %d bounces, got %d", DefaultMaxBounces, camera.MaxBounces)
	}
}

func TestNewCamera_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		up   core.Vec3
		look core.Vec3
	}{
		{"zero look", core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 0)},
		{"zero up", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)},
		{"up parallel to look", core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(core.NewVec3(0, 0, 0), tt.up, tt.look, 8, core.NewVec3(16, 9, 0))
			if camera != nil {
				t.Errorf("Expected nil camera, got %+v", camera)
			}
			if !errors.Is(err, core.ErrDegenerate) {
				t.Errorf("Expected ErrDegenerate, got %v", err)
			}
		})
	}
}

func TestCamera_PixelWorldPosition(t *testing.T) {
	camera := testCamera(t)
	extents := camera.PixelExtents(4, 2)

	if !vecNear(extents, core.NewVec3(2, 2.25, 0)) {
		t.Fatalf("Expected pixel extents (2, 2.25, 0), got %v", extents)
	}

	tests := []struct {
		px, py   int
		expected core.Vec3
	}{
		{0, 0, core.NewVec3(-6, 2.25, 8)},
		{3, 0, core.NewVec3(6, 2.25, 8)},
		{1, 1, core.NewVec3(-2, -2.25, 8)},
		{2, 1, core.NewVec3(2, -2.25, 8)},
	}

	for _, tt := range tests {
		got := camera.PixelWorldPosition(tt.px, tt.py, 4, 2, extents)
		if !vecNear(got, tt.expected) {
			t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.px, tt.py, tt.expected, got)
		}
	}
}

func TestCamera_PrimaryRayCenterPixel(t *testing.T) {
	camera := testCamera(t)

	ray, err := camera.PrimaryRay(1, 1, 3, 3)
	if err != nil {
		t.Fatalf("PrimaryRay failed: %v", err)
	}
	if !vecNear(ray.Origin, camera.Position) {
		t.Errorf("Expected origin at the eye, got %v", ray.Origin)
	}
	if !vecNear(ray.Direction, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected direction (0, 0, 1), got %v", ray.Direction)
	}
}

func TestCamera_RenderPixelSingleSphere(t *testing.T) {
	camera := testCamera(t)
	base := core.NewColor(0.3, 0.6, 0.9, 1)
	sphere := testSphere(t, core.NewVec3(0, 0, 30), 10, material.NewMatte(base))
	// Light travels away from the eye, so the visible face is fully lit
	light := testLight(t, core.NewVec3(0, 0, 1))

	center := camera.RenderPixel(1, 1, 3, 3, sphere, light)
	if !colorNear(center, base) {
		t.Errorf("Expected center pixel %v, got %v", base, center)
	}

	for _, corner := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		got := camera.RenderPixel(corner[0], corner[1], 3, 3, sphere, light)
		if got != core.Black {
			t.Errorf("Expected black at corner %v, got %v", corner, got)
		}
	}
}

func TestCamera_RenderFrameEmptySceneIsBlack(t *testing.T) {
	camera := testCamera(t)
	screen := NewScreen(4, 3, core.White)

	stats, err := camera.RenderFrame(geometry.NewMultiSurface(), testLight(t, core.NewVec3(0, -1, 0)), screen)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	for x, y := range screen.Pixels() {
		if c, _ := screen.ColorAt(x, y); c != core.Black {
			t.Errorf("Expected black at (%d, %d), got %v", x, y, c)
		}
	}
	if stats.TotalPixels != 12 || stats.PrimaryMisses != 12 || stats.PrimaryHits != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestCamera_RenderFrameIsDeterministic(t *testing.T) {
	scene := threeSphereScene(t, 32, 18)

	first := NewScreen(32, 18, core.Black)
	second := NewScreen(32, 18, core.Black)
	if _, err := scene.camera.RenderFrame(scene.surface, scene.light, first); err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	if _, err := scene.camera.RenderFrame(scene.surface, scene.light, second); err != nil {
		t.Fatalf("Second render failed: %v", err)
	}

	for x, y := range first.Pixels() {
		a, _ := first.ColorAt(x, y)
		b, _ := second.ColorAt(x, y)
		if a != b {
			t.Fatalf("Pixel (%d, %d) differs between renders: %v vs %v", x, y, a, b)
		}
	}
}

// recordingRaster remembers the order pixels were painted in
type recordingRaster struct {
	*Screen
	painted [][2]int
}

func (r *recordingRaster) Paint(x, y int, c core.Color) error {
	r.painted = append(r.painted, [2]int{x, y})
	return r.Screen.Paint(x, y, c)
}

func TestCamera_RenderFramePaintsRowMajor(t *testing.T) {
	scene := threeSphereScene(t, 3, 2)
	raster := &recordingRaster{Screen: NewScreen(3, 2, core.Black)}

	if _, err := scene.camera.RenderFrame(scene.surface, scene.light, raster); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	expected := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	if len(raster.painted) != len(expected) {
		t.Fatalf("Expected %d paints, got %d", len(expected), len(raster.painted))
	}
	for i, p := range expected {
		if raster.painted[i] != p {
			t.Errorf("Paint %d: expected %v, got %v", i, p, raster.painted[i])
		}
	}
}

// overflowRaster yields one coordinate past the right edge
type overflowRaster struct {
	*Screen
}

func (r overflowRaster) Pixels() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		width, _ := r.Resolution()
		yield(width, 0)
	}
}

func TestCamera_RenderFramePropagatesPaintError(t *testing.T) {
	scene := threeSphereScene(t, 2, 2)

	_, err := scene.camera.RenderFrame(scene.surface, scene.light, overflowRaster{NewScreen(2, 2, core.Black)})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}
