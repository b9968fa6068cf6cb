// Package color implements the linear-light color model used throughout
// the renderer: RGB plus a filter/transmit pair describing how much light
// a surface lets through and how much of that passed-through light keeps
// the surface's own tint. The arithmetic mirrors libdimension's dmnsn_color
// exactly, including its "switch into absolute filter/transmittance space,
// combine, switch back" pattern for Add/Sub/Gradient.
package color

import (
	"math"

	"github.com/dimension/dimension/math/lin"
)

// Tcolor is a linear-light color with a filter/transmit pair layered on
// top of RGB. Trans is how much light passes straight through the surface;
// Filter is, of the light that passes through, how much keeps the
// surface's own color rather than passing unchanged. The invariant
// Filter*Trans + (Trans-Filter*Trans) == Trans always holds by
// construction -- Filter and Trans are independent in [0,1], their
// product is never required to be <= either factor beyond what real
// numbers in [0,1] already guarantee.
type Tcolor struct {
	R, G, B float64
	Filter  float64
	Trans   float64
}

// New returns an opaque (Filter=0, Trans=0) color.
func New(r, g, b float64) Tcolor { return Tcolor{R: r, G: g, B: b} }

// New5 returns a color with explicit filter and transmit channels.
func New5(r, g, b, filter, trans float64) Tcolor {
	return Tcolor{R: r, G: g, B: b, Filter: filter, Trans: trans}
}

var (
	Black   = Tcolor{}
	White   = Tcolor{R: 1, G: 1, B: 1}
	Clear   = Tcolor{Trans: 1}
	Red     = Tcolor{R: 1}
	Green   = Tcolor{G: 1}
	Blue    = Tcolor{B: 1}
	Magenta = Tcolor{R: 1, B: 1}
	Yellow  = Tcolor{R: 1, G: 1}
	Cyan    = Tcolor{G: 1, B: 1}
)

const epsilon = lin.Epsilon

// Intensity returns the perceptual (Rec. 709-weighted) greyscale
// intensity of c, used to blend filter channels during Add/Sub and to
// compare against the scene's adaptive-depth-control bailout.
func (c Tcolor) Intensity() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Add returns c+o, combining their filter/transmit channels in absolute
// filter/transmittance space rather than averaging Filter and Trans
// directly -- two colors that are each half-transparent don't become a
// color that is also half-transparent once their light is actually
// summed.
func (c Tcolor) Add(o Tcolor) Tcolor {
	ret := Tcolor{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}

	n1, n2 := c.Intensity(), o.Intensity()
	f1, f2 := c.Filter*c.Trans, o.Filter*o.Trans
	t1, t2 := c.Trans-f1, o.Trans-f2
	f := 0.0
	if n1+n2 >= epsilon {
		f = (n1*f1 + n2*f2) / (n1 + n2)
	}
	t := t1 + t2

	ret.Trans = f + t
	if ret.Trans >= epsilon {
		ret.Filter = f / ret.Trans
	}
	return ret
}

// Sub returns c-o, the inverse of Add.
func (c Tcolor) Sub(o Tcolor) Tcolor {
	ret := Tcolor{R: c.R - o.R, G: c.G - o.G, B: c.B - o.B}

	n1, n2 := c.Intensity(), o.Intensity()
	f1, f2 := c.Filter*c.Trans, o.Filter*o.Trans
	t1, t2 := c.Trans-f1, o.Trans-f2
	f := 0.0
	if n1-n2 >= epsilon {
		f = (n1*f1 - n2*f2) / (n1 - n2)
	}
	t := t1 - t2

	ret.Trans = f + t
	if ret.Trans >= epsilon {
		ret.Filter = f / ret.Trans
	}
	return ret
}

// Mul scales c's RGB and Trans channels by n. Filter is left as-is:
// scaling a light contribution scales how much of it there is, not the
// fraction of it that keeps a surface's tint.
func (c Tcolor) Mul(n float64) Tcolor {
	return Tcolor{R: c.R * n, G: c.G * n, B: c.B * n, Filter: c.Filter, Trans: c.Trans * n}
}

// Gradient linearly interpolates between c and o by n in [0, 1].
func Gradient(c, o Tcolor, n float64) Tcolor {
	ret := Tcolor{
		R: n*(o.R-c.R) + c.R,
		G: n*(o.G-c.G) + c.G,
		B: n*(o.B-c.B) + c.B,
	}

	f1, f2 := c.Filter*c.Trans, o.Filter*o.Trans
	t1, t2 := c.Trans-f1, o.Trans-f2
	f := n*(f2-f1) + f1
	t := n*(t2-t1) + t1

	ret.Trans = f + t
	if ret.Trans >= epsilon {
		ret.Filter = f / ret.Trans
	}
	return ret
}

// Illuminate returns color modulated by light, component-wise in RGB,
// keeping color's own filter/transmit channels.
func Illuminate(light, c Tcolor) Tcolor {
	return New5(light.R*c.R, light.G*c.G, light.B*c.B, c.Filter, c.Trans)
}

// FilterLight returns the result of light passing through filter: the
// fraction (1-filter.Filter)*filter.Trans of light passes straight
// through unchanged, and the fraction filter.Filter*filter.Trans passes
// through tinted by filter's own color.
func FilterLight(light, filter Tcolor) Tcolor {
	transmitted := light.Mul((1.0 - filter.Filter) * filter.Trans)
	filtered := Illuminate(filter, light).Mul(filter.Filter * filter.Trans)

	ret := Tcolor{
		R: transmitted.R + filtered.R,
		G: transmitted.G + filtered.G,
		B: transmitted.B + filtered.B,
	}

	lf, ff := light.Filter*light.Trans, filter.Filter*filter.Trans
	lt, ft := light.Trans-lf, filter.Trans-ff
	f := lf*(filtered.Intensity()+ft) + lt*ff
	t := ft * lt

	ret.Trans = f + t
	if ret.Trans >= epsilon {
		ret.Filter = f / ret.Trans
	}
	return ret
}

// ApplyTransparency adds the background contribution of filter (scaled by
// how much of filter's own light does NOT pass through, 1-filter.Trans) to
// the already-filtered foreground color, keeping the foreground's own
// filter/transmit channels in the result.
func ApplyTransparency(filtered, filter Tcolor) Tcolor {
	ret := filter.Mul(1.0 - filter.Trans).Add(filtered)
	ret.Trans = filtered.Trans
	ret.Filter = filtered.Filter
	return ret
}

// ApplyFilter composes FilterLight and ApplyTransparency: the standard way
// a shadow feeler or reflection ray attenuates a color as it passes
// through a transparent occluder.
func ApplyFilter(c, filter Tcolor) Tcolor {
	return ApplyTransparency(FilterLight(c, filter), filter)
}

// RemoveFilter collapses the filter channel into an equivalent pure
// transmit value, used before handing a color to a sink (canvas) that
// only understands straight transparency, not tinted transparency.
func RemoveFilter(c Tcolor) Tcolor {
	intensity := c.Intensity()
	newTrans := (1.0 - (1.0-intensity)*c.Filter) * c.Trans
	if 1.0-newTrans >= epsilon {
		c = c.Mul((1.0 - c.Trans) / (1.0 - newTrans))
	}
	c.Trans = newTrans
	c.Filter = 0
	return c
}

// sRGBCInv is the inverse of the sRGB transfer function, converting a
// single sRGB-encoded channel to linear light.
func sRGBCInv(c float64) float64 {
	switch {
	case c == 1.0:
		return 1.0
	case c <= 0.040449936:
		return c / 12.92
	default:
		return math.Pow((c+0.055)/1.055, 2.4)
	}
}

// sRGBC is the sRGB transfer function, converting a single linear channel
// to sRGB-encoded space.
func sRGBC(c float64) float64 {
	switch {
	case c == 1.0:
		return 1.0
	case c <= 0.0031308:
		return 12.92 * c
	default:
		return 1.055*math.Pow(c, 1.0/2.4) - 0.055
	}
}

// FromSRGB converts a color whose RGB channels are sRGB-encoded (as read
// from an 8-bit image file) into this renderer's linear-light space.
func FromSRGB(c Tcolor) Tcolor {
	return Tcolor{R: sRGBCInv(c.R), G: sRGBCInv(c.G), B: sRGBCInv(c.B), Filter: c.Filter, Trans: c.Trans}
}

// ToSRGB converts a linear-light color to sRGB-encoded space, the final
// step before a canvas optimizer quantizes to 8 or 16 bits per channel.
func ToSRGB(c Tcolor) Tcolor {
	return Tcolor{R: sRGBC(c.R), G: sRGBC(c.G), B: sRGBC(c.B), Filter: c.Filter, Trans: c.Trans}
}

// Clamp returns c with each RGB channel clamped to [0, 1], applied only at
// the final canvas-write boundary -- intermediate shading math is allowed
// to exceed [0, 1] (a bright highlight, an additive light sum) and relies
// on that headroom.
func (c Tcolor) Clamp() Tcolor {
	return Tcolor{
		R:      lin.Clamp(c.R, 0, 1),
		G:      lin.Clamp(c.G, 0, 1),
		B:      lin.Clamp(c.B, 0, 1),
		Filter: lin.Clamp(c.Filter, 0, 1),
		Trans:  lin.Clamp(c.Trans, 0, 1),
	}
}
