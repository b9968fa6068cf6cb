package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dimension/dimension/color"
	"github.com/dimension/dimension/math/lin"
	"github.com/dimension/dimension/scene"
)

// config is the minimal YAML scene description this driver understands:
// one camera, spheres, point lights, and a solid background -- enough
// surface to drive a real render end to end without a full
// scene-description language.
type config struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Reclimit   int      `yaml:"reclimit"`
	ADCBailout *float64 `yaml:"adc_bailout"`
	NThreads   int      `yaml:"nthreads"`

	Camera struct {
		Location [3]float64 `yaml:"location"`
		Scale    [3]float64 `yaml:"scale"`
		// Rotation is an optional axis-angle orientation (x, y, z, radians);
		// the zero value is no rotation.
		Rotation [4]float64 `yaml:"rotation"`
	} `yaml:"camera"`

	Background [3]float64 `yaml:"background"`

	Spheres []sphereConfig `yaml:"spheres"`
	Lights  []lightConfig  `yaml:"lights"`
}

type sphereConfig struct {
	Center [3]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
	Color  [3]float64 `yaml:"color"`
	Ambient  float64 `yaml:"ambient"`
	Diffuse  float64 `yaml:"diffuse"`
	Specular float64 `yaml:"specular"`
	Shininess float64 `yaml:"shininess"`
}

type lightConfig struct {
	Origin [3]float64 `yaml:"origin"`
	Color  [3]float64 `yaml:"color"`
}

// loadConfig reads and parses a YAML scene description from path.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	if cfg.Width == 0 {
		cfg.Width = 320
	}
	if cfg.Height == 0 {
		cfg.Height = 240
	}
	return &cfg, nil
}

// v3 converts a YAML [3]float64 triple to a *lin.V3.
func v3(a [3]float64) *lin.V3 { return &lin.V3{X: a[0], Y: a[1], Z: a[2]} }

// build converts the parsed config into a scene.Scene ready for
// Precompute; the camera's scale is taken from the config as given.
func (cfg *config) build() *scene.Scene {
	sc := scene.NewScene(cfg.Width, cfg.Height)

	if cfg.Reclimit > 0 {
		sc.Reclimit = cfg.Reclimit
	}
	if cfg.ADCBailout != nil {
		sc.ADCBailout = *cfg.ADCBailout
	}
	sc.NThreads = cfg.NThreads

	loc := cfg.Camera.Location
	scl := cfg.Camera.Scale
	if scl == ([3]float64{}) {
		scl = [3]float64{1, 1, 1}
	}
	translate := lin.NewAffineI().SetTranslate(loc[0], loc[1], loc[2])
	scale := lin.NewAffineI().SetScale(scl[0], scl[1], scl[2])
	trans := lin.NewAffineI().Mult(translate, scale)

	if rot := cfg.Camera.Rotation; rot != ([4]float64{}) {
		q := (&lin.Q{}).SetAa(rot[0], rot[1], rot[2], rot[3])
		rotate := lin.NewAffineI().SetRotate(q)
		trans = lin.NewAffineI().Mult(translate, lin.NewAffineI().Mult(rotate, scale))
	}
	sc.Camera = scene.NewPerspectiveCamera(trans)

	bg := cfg.Background
	sc.Background = &scene.SolidPigment{Color: color.New(bg[0], bg[1], bg[2])}

	for _, s := range cfg.Spheres {
		obj := scene.NewObject()
		obj.Shape = &scene.Sphere{}
		obj.Trans = lin.NewAffineI().Mult(
			lin.NewAffineI().SetTranslate(s.Center[0], s.Center[1], s.Center[2]),
			lin.NewAffineI().SetScale(s.Radius, s.Radius, s.Radius),
		)
		obj.Texture = &scene.Texture{
			Pigment: &scene.SolidPigment{Color: color.New(s.Color[0], s.Color[1], s.Color[2])},
			Finish: scene.Finish{
				Ambient:  &scene.Ambient{Light: color.New(s.Ambient, s.Ambient, s.Ambient)},
				Diffuse:  &scene.Lambertian{Coeff: s.Diffuse},
				Specular: &scene.Phong{Coeff: s.Specular, Exp: s.Shininess},
			},
		}
		sc.Objects = append(sc.Objects, obj)
	}

	for _, l := range cfg.Lights {
		sc.Lights = append(sc.Lights, &scene.PointLight{
			Origin: v3(l.Origin),
			Color:  color.New(l.Color[0], l.Color[1], l.Color[2]),
		})
	}

	return sc
}
