package output

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Frame is a rendered picture that can be written out
type Frame interface {
	Resolution() (width, height int)
	ColorAt(x, y int) (core.Color, bool)
	Image() *image.RGBA
}

// WritePPM writes frame as a plain (P3) PPM: a "P3", "<width> <height>"
// and "255" header, then one "R G B" line per pixel in row-major order
func WritePPM(w io.Writer, frame Frame) error {
	width, height := frame.Resolution()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, _ := frame.ColorAt(x, y)
			if _, err := fmt.Fprintln(bw, c.PPM()); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
