package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Pixels rendered
	PrimaryHits    int           // Primary rays that hit a surface
	PrimaryMisses  int           // Primary rays that escaped (painted black)
	ShadowRays     int           // Shadow rays cast toward the light
	ShadowedHits   int           // Shadow rays that were blocked
	ReflectionRays int           // Mirror rays traced (within the bounce budget)
	Elapsed        time.Duration // Wall time spent rendering
}

// Merge adds other's counters to s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryHits += other.PrimaryHits
	s.PrimaryMisses += other.PrimaryMisses
	s.ShadowRays += other.ShadowRays
	s.ShadowedHits += other.ShadowedHits
	s.ReflectionRays += other.ReflectionRays
	s.Elapsed += other.Elapsed
}

// HitRatio returns the fraction of pixels whose primary ray hit a surface
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PrimaryHits) / float64(s.TotalPixels)
}

// String summarizes the stats on one line
func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels (%.1f%% hit), %d shadow rays (%d blocked), %d reflection rays in %v",
		s.TotalPixels, 100*s.HitRatio(), s.ShadowRays, s.ShadowedHits, s.ReflectionRays, s.Elapsed.Round(time.Millisecond))
}
