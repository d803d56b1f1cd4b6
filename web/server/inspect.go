package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	SurfaceIndex int                    `json:"surfaceIndex"` // Position in the scene's surface list, -1 on a miss
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	PixelColor   string                 `json:"pixelColor"` // Final shaded color as #rrggbb
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the surface hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Ray          core.Ray
	Intersection *geometry.Intersection
	Surface      geometry.Surface // The surface that produced Intersection
	SurfaceIndex int
}

// inspectPixel casts the primary ray of a pixel and finds the surface it
// hits, using the same nearest-hit rule as geometry.MultiSurface
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	ray, err := sceneObj.Camera.PrimaryRay(pixelX, pixelY, sceneObj.Width, sceneObj.Height)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{Ray: ray, SurfaceIndex: -1}
	for i, surface := range sceneObj.Surfaces {
		hit, ok := surface.Intersect(ray)
		if !ok || !(hit.T > 0) || math.IsInf(hit.T, 0) {
			continue
		}
		if result.Intersection == nil || hit.T < result.Intersection.T {
			result.Hit = true
			result.Intersection = hit
			result.Surface = surface
			result.SurfaceIndex = i
		}
	}
	return result, nil
}

// extractMaterialInfo lists the coefficients of a material
func (s *Server) extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color":     hexColor(mat.Color),
		"rgba":      [4]float64{mat.Color.R, mat.Color.G, mat.Color.B, mat.Color.A},
		"diffuse":   mat.Diffuse,
		"specular":  mat.Specular,
		"shininess": mat.Shininess,
		"mirror":    mat.Mirror,
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	color := sceneObj.Camera.RenderPixel(pixelX, pixelY, sceneObj.Width, sceneObj.Height, sceneObj.World, sceneObj.Light)

	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{
			Hit:          false,
			SurfaceIndex: -1,
			PixelColor:   hexColor(color),
		})
		return
	}

	geometryType, geometryProps := s.extractGeometryInfo(result.Surface)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		SurfaceIndex: result.SurfaceIndex,
		GeometryType: geometryType,
		Point:        vecArray(result.Ray.At(result.Intersection.T)),
		Normal:       vecArray(result.Intersection.Normal),
		Distance:     result.Intersection.T,
		PixelColor:   hexColor(color),
		Properties: map[string]interface{}{
			"material": s.extractMaterialInfo(result.Intersection.Material),
			"geometry": geometryProps,
		},
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
