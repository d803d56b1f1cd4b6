package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrOutOfBounds reports a pixel coordinate outside the raster
var ErrOutOfBounds = errors.New("pixel out of bounds")

// Raster is the sink a frame is rendered into
type Raster interface {
	// Resolution returns the raster size in pixels
	Resolution() (width, height int)

	// Paint stores color at (x, y); out-of-bounds coordinates return
	// ErrOutOfBounds instead of panicking
	Paint(x, y int, color core.Color) error

	// Pixels yields every valid (x, y) in row-major order starting at (0, 0)
	Pixels() iter.Seq2[int, int]
}

// Screen is an in-memory Raster backed by a flat slice of colors
type Screen struct {
	width  int
	height int
	pixels []core.Color
}

// NewScreen creates a width x height screen filled with fill
func NewScreen(width, height int, fill core.Color) *Screen {
	width, height = max(width, 0), max(height, 0)
	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = fill
	}
	return &Screen{width: width, height: height, pixels: pixels}
}

// Resolution implements Raster
func (s *Screen) Resolution() (int, int) {
	return s.width, s.height
}

// IsValid reports whether (x, y) lies inside the screen
func (s *Screen) IsValid(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// Paint implements Raster
func (s *Screen) Paint(x, y int, c core.Color) error {
	if !s.IsValid(x, y) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, s.width, s.height)
	}
	s.pixels[y*s.width+x] = c
	return nil
}

// ColorAt returns the color at (x, y); false when out of bounds
func (s *Screen) ColorAt(x, y int) (core.Color, bool) {
	if !s.IsValid(x, y) {
		return core.Color{}, false
	}
	return s.pixels[y*s.width+x], true
}

// Pixels implements Raster
func (s *Screen) Pixels() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// Image converts the screen to an opaque 8-bit image using Color.RGB8
func (s *Screen) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.drawInto(img, img.Bounds())
	return img
}

// SubImage converts only the pixels inside bounds
func (s *Screen) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, s.width, s.height))
	img := image.NewRGBA(bounds)
	s.drawInto(img, bounds)
	return img
}

func (s *Screen) drawInto(img *image.RGBA, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := s.pixels[y*s.width+x].RGB8()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
}
