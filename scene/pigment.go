package scene

import (
	"math"

	"github.com/dimension/dimension/color"
	"github.com/dimension/dimension/math/lin"
)

// Pigment maps a point in pattern space to a color. Patterns are
// evaluated in the space produced by Object.PigmentPoint, which already
// accounts for the pigment's own transform cascaded through precompute.
type Pigment interface {
	At(p *lin.V3) color.Tcolor
	// QuickColor is the flat color substituted when the scene's quality
	// bitset omits DMNSN_RENDER_PIGMENT-equivalent detail, matching the
	// reference renderer's quick_color fast path for preview renders.
	QuickColor() color.Tcolor
}

// SolidPigment is a constant color everywhere in pattern space.
type SolidPigment struct {
	Color color.Tcolor
}

func (p *SolidPigment) At(*lin.V3) color.Tcolor  { return p.Color }
func (p *SolidPigment) QuickColor() color.Tcolor { return p.Color }

// CheckerPigment alternates between two colors by octant of the unit
// grid cell containing p, the classic 3D checkerboard pattern.
type CheckerPigment struct {
	Even, Odd color.Tcolor
}

func (p *CheckerPigment) At(v *lin.V3) color.Tcolor {
	parity := int(math.Floor(v.X))+int(math.Floor(v.Y))+int(math.Floor(v.Z))
	if parity%2 == 0 {
		return p.Even
	}
	return p.Odd
}

func (p *CheckerPigment) QuickColor() color.Tcolor { return p.Even }

// GradientPigment blends linearly between two colors along an axis,
// repeating with period 1, mirroring dmnsn_color_gradient's role in the
// reference's color_map/gradient pigment.
type GradientPigment struct {
	From, To color.Tcolor
	Axis     *lin.V3 // unit vector; only one of X/Y/Z is expected nonzero.
}

func (p *GradientPigment) At(v *lin.V3) color.Tcolor {
	d := v.Dot(p.Axis)
	frac := d - math.Floor(d)
	return color.Gradient(p.From, p.To, frac)
}

func (p *GradientPigment) QuickColor() color.Tcolor { return p.From }

// evaluatePigment honors the scene's pigment quality flag: full pattern
// evaluation, or the pigment's cheap quick_color.
func evaluatePigment(p Pigment, point *lin.V3, fullDetail bool) color.Tcolor {
	if !fullDetail {
		return p.QuickColor()
	}
	return p.At(point)
}
