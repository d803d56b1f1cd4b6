package scene

// defaultCamera sits at the origin looking down +z with a 16:9 sensor
var defaultCamera = CameraCfg{
	Position:    Vec3Cfg{0, 0, 0},
	Up:          Vec3Cfg{0, 1, 0},
	Look:        Vec3Cfg{0, 0, 1},
	FocalLength: 8,
	Sensor:      [2]float64{16, 9},
}

// DefaultConfig describes the reference composition: three spheres above
// a grey floor, lit from the upper right
func DefaultConfig() Config {
	return Config{
		Name:        "default",
		Description: "Three spheres above a reflective floor",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Camera:      defaultCamera,
		Light:       LightCfg{Direction: Vec3Cfg{-1, -1, 0}, Color: ColorCfg{1, 1, 1, 1}},
		Surfaces: []SurfaceCfg{
			{
				Type:     "sphere",
				Center:   Vec3Cfg{0, 10, 30},
				Radius:   5,
				Material: MaterialCfg{Color: ColorCfg{0.35, 0.15, 0.8, 1}, Diffuse: 1, Specular: 1, Shininess: 100, Mirror: 1},
			},
			{
				Type:     "sphere",
				Center:   Vec3Cfg{0, -5, 30},
				Radius:   10,
				Material: MaterialCfg{Color: ColorCfg{0, 1, 0, 1}, Diffuse: 1, Specular: 1, Shininess: 10, Mirror: 1},
			},
			{
				Type:     "sphere",
				Center:   Vec3Cfg{-16, 0, 30},
				Radius:   6,
				Material: MaterialCfg{Color: ColorCfg{1, 0.25, 0.125, 1}, Diffuse: 1, Specular: 0.4, Shininess: 2, Mirror: 0.1},
			},
			{
				Type:     "plane",
				Point:    Vec3Cfg{0, -4, 0},
				Normal:   Vec3Cfg{0, 1, 0},
				Material: MaterialCfg{Color: ColorCfg{0.3, 0.3, 0.3, 1}, Diffuse: 1, Specular: 1, Shininess: 10, Mirror: 1},
			},
		},
	}
}

// SingleSphereConfig is one matte sphere on the optical axis, lit from
// behind the camera
func SingleSphereConfig() Config {
	return Config{
		Name:        "single-sphere",
		Description: "One matte sphere lit head on",
		Width:       320,
		Height:      180,
		Camera:      defaultCamera,
		Light:       LightCfg{Direction: Vec3Cfg{0, 0, 1}},
		Surfaces: []SurfaceCfg{
			{
				Type:     "sphere",
				Center:   Vec3Cfg{0, 0, 30},
				Radius:   10,
				Material: MaterialCfg{Color: ColorCfg{0.3, 0.6, 0.9}, Diffuse: 1},
			},
		},
	}
}

// MirrorsConfig places a sphere between two facing mirrors, so every
// primary ray that reaches a mirror uses the full bounce budget
func MirrorsConfig() Config {
	return Config{
		Name:        "mirrors",
		Description: "A sphere between two facing mirrors",
		Width:       640,
		Height:      360,
		Camera: CameraCfg{
			Position:    Vec3Cfg{0, 2, -8},
			Up:          Vec3Cfg{0, 1, 0},
			Look:        Vec3Cfg{0, -0.1, 1},
			FocalLength: 8,
			Sensor:      [2]float64{16, 9},
		},
		Light: LightCfg{Direction: Vec3Cfg{-1, -2, 1}},
		Surfaces: []SurfaceCfg{
			{
				Type:     "sphere",
				Center:   Vec3Cfg{0, 0, 4},
				Radius:   3,
				Material: MaterialCfg{Color: ColorCfg{0.9, 0.2, 0.2}, Diffuse: 1, Specular: 0.6, Shininess: 40, Mirror: 0.2},
			},
			{
				Type:     "plane",
				Point:    Vec3Cfg{0, -3, 0},
				Normal:   Vec3Cfg{0, 1, 0},
				Material: MaterialCfg{Color: ColorCfg{0.5, 0.5, 0.5}, Diffuse: 1},
			},
			{
				Type:     "plane",
				Point:    Vec3Cfg{0, 0, 12},
				Normal:   Vec3Cfg{0, 0, -1},
				Material: MaterialCfg{Color: ColorCfg{0.9, 0.95, 1}, Diffuse: 1, Mirror: 0.9},
			},
			{
				Type:     "plane",
				Point:    Vec3Cfg{0, 0, -12},
				Normal:   Vec3Cfg{0, 0, 1},
				Material: MaterialCfg{Color: ColorCfg{0.9, 0.95, 1}, Diffuse: 1, Mirror: 0.9},
			},
		},
	}
}

// NewDefaultScene builds the reference scene
func NewDefaultScene() (*Scene, error) {
	return DefaultConfig().Build()
}

// NewSingleSphereScene builds the single sphere scene
func NewSingleSphereScene() (*Scene, error) {
	return SingleSphereConfig().Build()
}

// NewMirrorsScene builds the facing mirrors scene
func NewMirrorsScene() (*Scene, error) {
	return MirrorsConfig().Build()
}
