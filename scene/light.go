package scene

import (
	"math"

	"github.com/dimension/dimension/color"
	"github.com/dimension/dimension/math/lin"
)

// Light is a light source callback bundle: Direction returns the
// (unnormalized) shadow-ray direction from a surface point toward the
// light, Illumination returns the light's color as seen from that point,
// and Shadow reports whether a shadow caster found at parametric distance
// t along that direction actually sits between the surface and the light.
//
// Direction's magnitude matters: for a point light it is exactly the
// distance to the light, so a shadow-ray hit at t>=1 is beyond the light
// and must not occlude it -- Shadow encodes that per-light, since a
// directional light has no such cutoff.
type Light interface {
	Direction(p *lin.V3) *lin.V3
	Illumination(p *lin.V3) color.Tcolor
	Shadow(t float64) bool
}

// PointLight radiates a constant color equally in all directions from a
// fixed origin.
type PointLight struct {
	Origin *lin.V3
	Color  color.Tcolor
}

func (l *PointLight) Direction(p *lin.V3) *lin.V3 {
	d := &lin.V3{}
	d.Sub(l.Origin, p)
	return d
}

func (l *PointLight) Illumination(*lin.V3) color.Tcolor { return l.Color }
func (l *PointLight) Shadow(t float64) bool              { return t < 1.0 }

// DirectionalLight illuminates uniformly from a fixed direction with no
// falloff, as if from an infinitely distant source (the sun). Every
// shadow caster at any positive t occludes it, since there is no light
// position for the caster to fall beyond.
type DirectionalLight struct {
	Dir   *lin.V3 // points FROM the scene TOWARD the light.
	Color color.Tcolor
}

func (l *DirectionalLight) Direction(*lin.V3) *lin.V3 {
	d := &lin.V3{}
	d.Scale(l.Dir, lin.Large)
	return d
}

func (l *DirectionalLight) Illumination(*lin.V3) color.Tcolor { return l.Color }
func (l *DirectionalLight) Shadow(t float64) bool              { return true }

// SpotLight is a point light whose illumination falls away outside a
// cone: full Color inside the Radius angle, zero beyond the Falloff angle,
// and in between Color scaled by ((Falloff-angle)/(Falloff-Radius)) raised
// to Tightness -- the same origin/shadow
// behavior as PointLight, extended with POV-Ray's radius/falloff/tightness
// shape since the reference renderer has no cone light of its own.
type SpotLight struct {
	Origin    *lin.V3
	Dir       *lin.V3 // unit vector, the cone's axis, pointing away from Origin.
	Color     color.Tcolor
	Radius    float64 // half-angle (radians) of the fully-lit inner cone.
	Falloff   float64 // half-angle (radians) beyond which illumination is zero.
	Tightness float64 // exponent controlling the edge's softness.
}

func (l *SpotLight) Direction(p *lin.V3) *lin.V3 {
	d := &lin.V3{}
	d.Sub(l.Origin, p)
	return d
}

func (l *SpotLight) Illumination(p *lin.V3) color.Tcolor {
	toSurface := &lin.V3{}
	toSurface.Sub(p, l.Origin)
	toSurface = toSurface.Unit()

	cos := toSurface.Dot(l.Dir)
	angle := math.Acos(math.Min(1.0, math.Max(-1.0, cos)))

	switch {
	case angle <= l.Radius:
		return l.Color
	case angle >= l.Falloff:
		return color.Tcolor{}
	default:
		span := l.Falloff - l.Radius
		t := (l.Falloff - angle) / span
		return l.Color.Mul(math.Pow(t, l.Tightness))
	}
}

func (l *SpotLight) Shadow(t float64) bool { return t < 1.0 }
