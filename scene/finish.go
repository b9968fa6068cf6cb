package scene

import (
	"math"

	"github.com/dimension/dimension/color"
	"github.com/dimension/dimension/math/lin"
)

// Ambient is the finish component contributing a flat multiple of the
// pigment color regardless of lighting.
type Ambient struct {
	Light color.Tcolor
}

// Apply returns the ambient contribution given the surface's pigment
// color.
func (a *Ambient) Apply(pigment color.Tcolor) color.Tcolor {
	return color.Illuminate(a.Light, pigment)
}

// Diffuse is the finish component scattering light evenly in all
// directions, proportional to the cosine of the angle between the
// surface normal and the light direction.
type Diffuse interface {
	Apply(light, pigment color.Tcolor, toLight, normal *lin.V3) color.Tcolor
}

// Lambertian is the standard cosine-law diffuse model.
type Lambertian struct {
	Coeff float64
}

func (d *Lambertian) Apply(light, pigment color.Tcolor, toLight, normal *lin.V3) color.Tcolor {
	factor := math.Abs(d.Coeff * toLight.Dot(normal))
	return color.Illuminate(light, pigment).Mul(factor)
}

// Specular is the finish component producing view-dependent highlights.
type Specular interface {
	Apply(light, pigment color.Tcolor, toLight, normal, viewer *lin.V3) color.Tcolor
}

// Phong is the classic specular-highlight model: reflect the
// light direction about the normal and raise the cosine to the surface's
// specular exponent.
type Phong struct {
	Coeff float64
	Exp   float64
}

func (s *Phong) Apply(light, pigment color.Tcolor, toLight, normal, viewer *lin.V3) color.Tcolor {
	proj := &lin.V3{}
	proj.Scale(normal, 2*toLight.Dot(normal))
	reflected := &lin.V3{}
	reflected.Sub(proj, toLight)

	factor := reflected.Dot(viewer)
	if factor < 0 {
		return color.Black
	}
	factor = math.Pow(factor, s.Exp)
	return light.Mul(s.Coeff * factor)
}

// Reflection is the finish component attenuating a reflected ray's color
// -- applied both to reflected light contributions and, via the same
// function, to attenuate shadow-ray light crossing a reflective occluder.
type Reflection interface {
	Apply(light, pigment color.Tcolor, reflected, normal *lin.V3) color.Tcolor
}

// MetallicReflection blends between a flat reflection coefficient and one
// tinted by the surface's own pigment (a "metallic" highlight), the way a
// mirror (Metallic=0) differs from brushed metal (Metallic=1). The light
// is scaled by Max alone: Min is not used, and the result does not depend
// on the angle between the reflected ray and the normal.
type MetallicReflection struct {
	Min, Max float64
	Metallic float64
}

func (r *MetallicReflection) Apply(light, pigment color.Tcolor, reflected, normal *lin.V3) color.Tcolor {
	tinted := color.Gradient(color.White, pigment, r.Metallic)
	return color.Illuminate(light, tinted).Mul(r.Max)
}

// Finish bundles the four orthogonal shading components named by the
// object model; any of them may be nil, in which case that contribution
// is skipped entirely (no ambient term, no specular highlight, etc).
type Finish struct {
	Ambient    *Ambient
	Diffuse    Diffuse
	Specular   Specular
	Reflection Reflection
}

// cascadeFinish fills in any nil component of finish from def, in place,
// matching dmnsn_finish_cascade exactly (field by field, never
// wholesale).
func cascadeFinish(def, finish *Finish) *Finish {
	if finish == nil {
		finish = &Finish{}
	}
	if finish.Ambient == nil {
		finish.Ambient = def.Ambient
	}
	if finish.Diffuse == nil {
		finish.Diffuse = def.Diffuse
	}
	if finish.Specular == nil {
		finish.Specular = def.Specular
	}
	if finish.Reflection == nil {
		finish.Reflection = def.Reflection
	}
	return finish
}
