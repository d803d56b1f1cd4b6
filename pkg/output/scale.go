package output

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales img to width x height with Catmull-Rom filtering
func Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Thumbnail scales img down to at most maxWidth pixels wide, keeping the
// aspect ratio. Images that already fit are copied unscaled.
func Thumbnail(img image.Image, maxWidth int) *image.RGBA {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	height := max(1, b.Dy()*maxWidth/b.Dx())
	return Resize(img, maxWidth, height)
}
