package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetSurface() geometry.Surface
	GetLight() lights.Light
	GetResolution() (width, height int)
}

// RenderScene renders a whole scene into a new black screen
func RenderScene(scene Scene, logger core.Logger) (*Screen, RenderStats, error) {
	width, height := scene.GetResolution()
	screen := NewScreen(width, height, core.Black)

	logger.Printf("Rendering %dx%d with %d bounces...\n", width, height, scene.GetCamera().MaxBounces)
	stats, err := scene.GetCamera().RenderFrame(scene.GetSurface(), scene.GetLight(), screen)
	if err != nil {
		return nil, stats, err
	}
	logger.Printf("Rendered %s\n", stats)

	return screen, stats, nil
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	RowsPerBand int // Rows rendered between callbacks
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{RowsPerBand: 16}
}

// BandResult describes a finished band of rows
type BandResult struct {
	Bounds     image.Rectangle // Pixels painted by this band
	BandNumber int             // 1-based
	TotalBands int
	Stats      RenderStats // Cumulative over all bands so far
	IsLast     bool
}

// RenderProgressive renders the frame in horizontal bands, calling onBand
// after each one. Pixels are visited in the same order as RenderFrame and
// receive identical colors. Cancellation is checked between bands; a
// callback error stops rendering and is returned.
func (c *Camera) RenderProgressive(ctx context.Context, surface geometry.Surface, light lights.Light, raster Raster,
	config ProgressiveConfig, onBand func(BandResult) error) (RenderStats, error) {
	start := time.Now()
	width, height := raster.Resolution()
	pixelExtents := c.PixelExtents(width, height)

	rows := config.RowsPerBand
	if rows <= 0 {
		rows = DefaultProgressiveConfig().RowsPerBand
	}
	totalBands := (height + rows - 1) / rows

	var stats RenderStats
	tr := c.newTracer(surface, light, &stats)

	for band := 0; band < totalBands; band++ {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, err
		}

		bounds := image.Rect(0, band*rows, width, min((band+1)*rows, height))
		for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
			for px := 0; px < width; px++ {
				color := c.renderPixel(px, py, width, height, pixelExtents, tr)
				if err := raster.Paint(px, py, color); err != nil {
					stats.Elapsed = time.Since(start)
					return stats, fmt.Errorf("paint pixel (%d, %d): %w", px, py, err)
				}
			}
		}

		stats.Elapsed = time.Since(start)
		if onBand == nil {
			continue
		}
		result := BandResult{
			Bounds:     bounds,
			BandNumber: band + 1,
			TotalBands: totalBands,
			Stats:      stats,
			IsLast:     band == totalBands-1,
		}
		if err := onBand(result); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
