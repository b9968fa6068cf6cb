package render

import (
	"image"
	"image/color/palette"

	"golang.org/x/image/draw"

	"github.com/dimension/dimension/color"
)

// Canvas is the pixel sink a render writes into: a plain set_pixel
// surface plus an ordered list of optimizers invoked synchronously after
// every pixel write, matching spec.md §6's external interface exactly
// (no canvas storage format is mandated by the core itself).
type Canvas struct {
	width, height int
	pixels        []color.Tcolor

	optimizers []Optimizer
}

// NewCanvas returns a canvas of the given pixel dimensions, every pixel
// initially color.Black.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]color.Tcolor, width*height),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// At returns the color currently stored at (x, y).
func (c *Canvas) At(x, y int) color.Tcolor {
	return c.pixels[y*c.width+x]
}

// SetPixel is the sink's one write operation: store the color and run
// every registered optimizer over it in registration order, on the
// calling (writing) goroutine -- optimizers are synchronous observers,
// never a separate pipeline stage.
func (c *Canvas) SetPixel(x, y int, tc color.Tcolor) {
	c.pixels[y*c.width+x] = tc
	for _, opt := range c.optimizers {
		opt.Observe(c, x, y)
	}
}

// Optimizer is a synchronous observer run after every SetPixel, given the
// canvas and the coordinate that just changed; it reads back through
// Canvas.At rather than receiving the color directly, so it sees exactly
// what was stored (post any future canvas-side clamping).
type Optimizer interface {
	Observe(c *Canvas, x, y int)
}

// Register appends opt to the canvas's optimizer list. Order matters:
// optimizers run in registration order on every pixel write.
func (c *Canvas) Register(opt Optimizer) {
	c.optimizers = append(c.optimizers, opt)
}

// RGBA8Optimizer maintains an *image.RGBA mirror of the canvas, converting
// each linear-light Tcolor to clamped 8-bit sRGB as it is written -- the
// standard transcode spec.md §6 calls out for PNG/GL export.
type RGBA8Optimizer struct {
	Image *image.RGBA
}

// NewRGBA8Optimizer allocates the backing image at the canvas's own
// dimensions.
func NewRGBA8Optimizer(c *Canvas) *RGBA8Optimizer {
	return &RGBA8Optimizer{Image: image.NewRGBA(image.Rect(0, 0, c.width, c.height))}
}

func (o *RGBA8Optimizer) Observe(c *Canvas, x, y int) {
	tc := color.ToSRGB(color.RemoveFilter(c.At(x, y)).Clamp())
	o.Image.Set(x, y, rgba8(tc))
}

func rgba8(tc color.Tcolor) imageColor {
	return imageColor{
		R: uint8(tc.R*255 + 0.5),
		G: uint8(tc.G*255 + 0.5),
		B: uint8(tc.B*255 + 0.5),
		A: uint8((1.0 - tc.Trans) * 255 + 0.5),
	}
}

// imageColor implements color.Color (the standard library's, not this
// renderer's) for rgba8's return value.
type imageColor struct {
	R, G, B, A uint8
}

func (c imageColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// RGBA16Optimizer is RGBA8Optimizer's 16-bit-per-channel counterpart, for
// higher-precision PNG export.
type RGBA16Optimizer struct {
	Image *image.RGBA64
}

func NewRGBA16Optimizer(c *Canvas) *RGBA16Optimizer {
	return &RGBA16Optimizer{Image: image.NewRGBA64(image.Rect(0, 0, c.width, c.height))}
}

func (o *RGBA16Optimizer) Observe(c *Canvas, x, y int) {
	tc := color.ToSRGB(color.RemoveFilter(c.At(x, y)).Clamp())
	o.Image.Set(x, y, rgba16(tc))
}

type imageColor16 struct {
	R, G, B, A uint16
}

func (c imageColor16) RGBA() (r, g, b, a uint32) {
	return uint32(c.R), uint32(c.G), uint32(c.B), uint32(c.A)
}

func rgba16(tc color.Tcolor) imageColor16 {
	return imageColor16{
		R: uint16(tc.R*65535 + 0.5),
		G: uint16(tc.G*65535 + 0.5),
		B: uint16(tc.B*65535 + 0.5),
		A: uint16((1.0 - tc.Trans) * 65535 + 0.5),
	}
}

// PalettedPreview draws src (typically an RGBA8Optimizer's Image, mid
// render) down to a web-safe palette using x/image/draw, for a cheap
// live preview thumbnail without pulling in a full PNG encoder.
func PalettedPreview(src image.Image) *image.Paletted {
	bounds := src.Bounds()
	dst := image.NewPaletted(bounds, palette.WebSafe)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
