package render

import (
	"testing"

	"github.com/dimension/dimension/color"
)

func TestCanvasSetPixelAndAt(t *testing.T) {
	c := NewCanvas(4, 3)
	c.SetPixel(1, 2, color.White)
	if got := c.At(1, 2); got != color.White {
		t.Errorf("At(1,2) = %v, want white", got)
	}
	if got := c.At(0, 0); got != color.Black {
		t.Errorf("untouched pixel = %v, want black", got)
	}
}

func TestCanvasRunsOptimizersInRegistrationOrder(t *testing.T) {
	c := NewCanvas(2, 2)
	var order []int
	first := &orderOptimizer{id: 1, order: &order}
	second := &orderOptimizer{id: 2, order: &order}
	c.Register(first)
	c.Register(second)

	c.SetPixel(0, 0, color.White)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("observe order = %v, want [1 2]", order)
	}
}

type orderOptimizer struct {
	id    int
	order *[]int
}

func (o *orderOptimizer) Observe(c *Canvas, x, y int) {
	*o.order = append(*o.order, o.id)
}

func TestRGBA8OptimizerMirrorsCanvas(t *testing.T) {
	c := NewCanvas(2, 2)
	opt := NewRGBA8Optimizer(c)
	c.Register(opt)

	c.SetPixel(1, 0, color.White)

	r, g, b, a := opt.Image.At(1, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("RGBA = (%d,%d,%d), want (255,255,255)", r>>8, g>>8, b>>8)
	}
	if a>>8 != 255 {
		t.Errorf("alpha = %d, want 255 for an opaque pixel", a>>8)
	}
}
