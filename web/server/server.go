package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Limits for query parameters shared by every endpoint
const (
	minResolution = 1
	maxResolution = 2000
	maxBounces    = 16
	maxThumbWidth = 4000
)

// Server handles web requests for the recursive raytracer
type Server struct {
	port      int
	scenesDir string      // Directory searched for file scenes; "" disables them
	staticDir string      // Directory served at /; "" disables it
	logger    core.Logger // Used by non-streaming renders
}

// NewServer creates a new web server
func NewServer(port int, scenesDir, staticDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		staticDir: staticDir,
		logger:    renderer.NewDefaultLogger(),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string `json:"scene"`       // Scene ID (e.g., "default", "file:mirrors")
	Width       int    `json:"width"`       // Image width; 0 keeps the scene's own
	Height      int    `json:"height"`      // Image height; 0 keeps the scene's own
	MaxBounces  int    `json:"maxBounces"`  // Reflection budget; 0 keeps the scene's own
	RowsPerBand int    `json:"rowsPerBand"` // Rows per streamed update
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	PrimaryHits    int     `json:"primaryHits"`
	ShadowRays     int     `json:"shadowRays"`
	ShadowedHits   int     `json:"shadowedHits"`
	ReflectionRays int     `json:"reflectionRays"`
	HitRatio       float64 `json:"hitRatio"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

func newStats(s renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    s.TotalPixels,
		PrimaryHits:    s.PrimaryHits,
		ShadowRays:     s.ShadowRays,
		ShadowedHits:   s.ShadowedHits,
		ReflectionRays: s.ReflectionRays,
		HitRatio:       s.HitRatio(),
		ElapsedMs:      s.Elapsed.Milliseconds(),
	}
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/ws", s.handleRenderWS)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := scene.Resolve(sceneID, s.scenesDir)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":       sceneID,
		"name":        sceneObj.Name,
		"description": sceneObj.Description,
		"defaults": map[string]interface{}{
			"width":       sceneObj.Width,
			"height":      sceneObj.Height,
			"maxBounces":  sceneObj.Camera.MaxBounces,
			"rowsPerBand": renderer.DefaultProgressiveConfig().RowsPerBand,
			"surfaces":    len(sceneObj.Surfaces),
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minResolution, "max": maxResolution},
			"height":     map[string]int{"min": minResolution, "max": maxResolution},
			"maxBounces": map[string]int{"min": 1, "max": maxBounces},
		},
		"formats": output.Formats(),
	})
}

// handleImage renders a whole frame and returns it encoded in one response
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	format := output.FormatPNG
	if name := r.URL.Query().Get("format"); name != "" {
		if format, err = output.ParseFormat(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	maxWidth, err := parseIntParam(r.URL.Query(), "maxWidth", 0, 0, maxThumbWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	screen, _, err := renderer.RenderScene(sceneObj, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if maxWidth > 0 {
		err = output.EncodeImage(&buf, output.Thumbnail(screen.Image(), maxWidth), format)
	} else {
		err = output.Encode(&buf, screen, format)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", output.ContentType(format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.RowsPerBand, err = parseIntParam(r.URL.Query(), "rowsPerBand", renderer.DefaultProgressiveConfig().RowsPerBand, 1, maxResolution); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1920*1080 && req.MaxBounces > 8 {
		log.Printf("Render warning: Large image with a deep bounce budget may render slowly")
	}

	return req, nil
}

// parseCommonSceneParams reads the parameters every scene endpoint accepts
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minResolution, maxResolution); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minResolution, maxResolution); err != nil {
		return err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", 0, 1, maxBounces); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves the requested scene and applies the overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Resolve(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}

	// Resolve builds a fresh camera, so overriding it here is safe
	if req.MaxBounces > 0 {
		sceneObj.Camera.MaxBounces = req.MaxBounces
	}
	return sceneObj.WithResolution(req.Width, req.Height), nil
}

// sceneErrorStatus maps scene resolution failures to HTTP status codes
func sceneErrorStatus(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
