package output

import (
	"image"
	"image/color"
	"testing"
)

func uniformImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestResize(t *testing.T) {
	gray := color.RGBA{100, 100, 100, 255}
	got := Resize(uniformImage(8, 6, gray), 4, 3)

	if got.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("Unexpected bounds %v", got.Bounds())
	}
	// A uniform image stays uniform under any filter
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if c := got.RGBAAt(x, y); c != gray {
				t.Errorf("Pixel (%d, %d) = %v, want %v", x, y, c, gray)
			}
		}
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		maxWidth       int
		expectedWidth  int
		expectedHeight int
	}{
		{"downscale keeps aspect", 1920, 1080, 320, 320, 180},
		{"already small", 100, 50, 320, 100, 50},
		{"no limit", 64, 36, 0, 64, 36},
		{"very wide keeps one row", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Thumbnail(uniformImage(tt.width, tt.height, color.RGBA{0, 0, 0, 255}), tt.maxWidth)
			if got.Bounds().Dx() != tt.expectedWidth || got.Bounds().Dy() != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %v", tt.expectedWidth, tt.expectedHeight, got.Bounds())
			}
		})
	}
}
