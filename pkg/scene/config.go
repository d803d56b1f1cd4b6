package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// ErrInvalidConfig reports a scene file that cannot be built
var ErrInvalidConfig = errors.New("invalid scene config")

// Vec3Cfg is a vector written as [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorCfg is a color written as [r, g, b] or [r, g, b, a]; alpha defaults to 1
type ColorCfg []float64

func (c ColorCfg) Color() (core.Color, error) {
	switch len(c) {
	case 3:
		return core.NewColor(c[0], c[1], c[2], 1), nil
	case 4:
		return core.NewColor(c[0], c[1], c[2], c[3]), nil
	}
	return core.Color{}, fmt.Errorf("%w: color needs 3 or 4 channels, got %d", ErrInvalidConfig, len(c))
}

type CameraCfg struct {
	Position    Vec3Cfg    `json:"position"`
	Up          Vec3Cfg    `json:"up"`
	Look        Vec3Cfg    `json:"look"`
	FocalLength float64    `json:"focalLength"`
	Sensor      [2]float64 `json:"sensor"`
	// Rotates the up hint about the look direction (degrees)
	RollDeg float64 `json:"rollDeg,omitempty"`
}

type MaterialCfg struct {
	Color     ColorCfg `json:"color"`
	Diffuse   float64  `json:"diffuse"`
	Specular  float64  `json:"specular"`
	Shininess float64  `json:"shininess"`
	Mirror    float64  `json:"mirror"`
}

type LightCfg struct {
	Direction Vec3Cfg  `json:"direction"`
	Color     ColorCfg `json:"color,omitempty"` // defaults to white
}

// SurfaceCfg describes one sphere or plane. Only the fields of its Type are read.
type SurfaceCfg struct {
	Type     string      `json:"type"` // "sphere" or "plane"
	Center   Vec3Cfg     `json:"center"`
	Radius   float64     `json:"radius,omitempty"`
	Point    Vec3Cfg     `json:"point"`
	Normal   Vec3Cfg     `json:"normal"`
	Material MaterialCfg `json:"material"`
}

// Config is the JSON form of a scene
type Config struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	MaxBounces  int          `json:"maxBounces,omitempty"`
	Camera      CameraCfg    `json:"camera"`
	Light       LightCfg     `json:"light"`
	Surfaces    []SurfaceCfg `json:"surfaces"`
}

// Load reads a JSON scene file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadScene reads and builds a JSON scene file
func LoadScene(path string) (*Scene, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("scene: build %s: %w", path, err)
	}
	return s, nil
}

// Build validates the config and constructs the scene. Zero width,
// height and bounce budget fall back to the defaults.
func (c Config) Build() (*Scene, error) {
	width, height := c.Width, c.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, width, height)
	}
	if c.MaxBounces < 0 {
		return nil, fmt.Errorf("%w: maxBounces %d", ErrInvalidConfig, c.MaxBounces)
	}

	camera, err := c.Camera.Build()
	if err != nil {
		return nil, err
	}
	if c.MaxBounces > 0 {
		camera.MaxBounces = c.MaxBounces
	}

	light, err := c.Light.Build()
	if err != nil {
		return nil, err
	}

	surfaces := make([]geometry.Surface, 0, len(c.Surfaces))
	for i, sc := range c.Surfaces {
		surface, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		surfaces = append(surfaces, surface)
	}

	s := New(c.Name, camera, light, width, height, surfaces...)
	s.Description = c.Description
	return s, nil
}

func (c CameraCfg) Build() (*renderer.Camera, error) {
	if !(c.FocalLength > 0) {
		return nil, fmt.Errorf("camera: %w: focalLength %g", ErrInvalidConfig, c.FocalLength)
	}
	if !(c.Sensor[0] > 0 && c.Sensor[1] > 0) {
		return nil, fmt.Errorf("camera: %w: sensor %v", ErrInvalidConfig, c.Sensor)
	}

	look := c.Look.Vec3()
	up := c.Up.Vec3()
	if c.RollDeg != 0 {
		up = up.Rotate(c.RollDeg*math.Pi/180, look)
	}

	return renderer.NewCamera(c.Position.Vec3(), up, look, c.FocalLength, core.NewVec3(c.Sensor[0], c.Sensor[1], 0))
}

func (c LightCfg) Build() (lights.Light, error) {
	color := core.White
	if c.Color != nil {
		var err error
		if color, err = c.Color.Color(); err != nil {
			return nil, fmt.Errorf("light: %w", err)
		}
	}

	light, err := lights.NewDirectionalLight(c.Direction.Vec3(), color)
	if err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}
	return light, nil
}

func (c MaterialCfg) Build() (material.Material, error) {
	color, err := c.Color.Color()
	if err != nil {
		return material.Material{}, fmt.Errorf("material: %w", err)
	}

	mat := material.NewMaterial(color, c.Diffuse, c.Specular, c.Shininess, c.Mirror)
	if err := mat.Validate(); err != nil {
		return material.Material{}, fmt.Errorf("material: %w", err)
	}
	return mat, nil
}

func (c SurfaceCfg) Build() (geometry.Surface, error) {
	mat, err := c.Material.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Type, err)
	}

	switch c.Type {
	case "sphere":
		sphere, err := geometry.NewSphere(c.Center.Vec3(), c.Radius, mat)
		if err != nil {
			return nil, fmt.Errorf("sphere at %v: %w", c.Center.Vec3(), err)
		}
		return sphere, nil
	case "plane":
		plane, err := geometry.NewPlane(c.Point.Vec3(), c.Normal.Vec3(), mat)
		if err != nil {
			return nil, fmt.Errorf("plane through %v: %w", c.Point.Vec3(), err)
		}
		return plane, nil
	}
	return nil, fmt.Errorf("%w: unknown surface type %q", ErrInvalidConfig, c.Type)
}
