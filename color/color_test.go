package color

import "testing"

func TestIntensityOfWhiteIsOne(t *testing.T) {
	if !closeEnough(White.Intensity(), 1.0) {
		t.Error("Intensity")
	}
}

func TestAddOpaqueColorsStaysOpaque(t *testing.T) {
	sum := Red.Add(Green)
	if sum.Trans != 0 || sum.Filter != 0 {
		t.Error("Add")
	}
	if sum.R != 1 || sum.G != 1 {
		t.Error("Add")
	}
}

func TestAddKeepsTransAndFilterInZeroOne(t *testing.T) {
	half := Tcolor{R: 1, Filter: 0.5, Trans: 0.5}
	sum := half.Add(half)
	if sum.Trans < 0 || sum.Trans > 1 {
		t.Error("Add trans out of range")
	}
	if sum.Filter < 0 || sum.Filter > 1 {
		t.Error("Add filter out of range")
	}
}

func TestGradientAtZeroAndOneReturnsEndpoints(t *testing.T) {
	g0 := Gradient(Red, Blue, 0)
	g1 := Gradient(Red, Blue, 1)
	if !closeEnough(g0.R, 1) || !closeEnough(g0.B, 0) {
		t.Error("Gradient n=0")
	}
	if !closeEnough(g1.R, 0) || !closeEnough(g1.B, 1) {
		t.Error("Gradient n=1")
	}
}

func TestFilterLightOpaqueFilterBlocksAllLight(t *testing.T) {
	// An opaque (Trans=0) filter passes nothing through.
	opaque := Tcolor{R: 1, G: 1, B: 1}
	lit := FilterLight(White, opaque)
	if lit.R != 0 || lit.G != 0 || lit.B != 0 {
		t.Error("FilterLight through opaque filter should be black")
	}
}

func TestRemoveFilterDropsFilterChannel(t *testing.T) {
	c := Tcolor{R: 1, Filter: 0.5, Trans: 0.5}
	out := RemoveFilter(c)
	if out.Filter != 0 {
		t.Error("RemoveFilter should zero Filter")
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	c := Tcolor{R: 0.5, G: 0.25, B: 0.75}
	back := FromSRGB(ToSRGB(c))
	if !closeEnough(back.R, c.R) || !closeEnough(back.G, c.G) || !closeEnough(back.B, c.B) {
		t.Error("sRGB round trip")
	}
}

func TestSRGBMapsOneToOne(t *testing.T) {
	if ToSRGB(Tcolor{R: 1}).R != 1 {
		t.Error("ToSRGB(1) != 1")
	}
	if FromSRGB(Tcolor{R: 1}).R != 1 {
		t.Error("FromSRGB(1) != 1")
	}
}

func TestClampBoundsChannels(t *testing.T) {
	c := Tcolor{R: 2, G: -1, B: 0.5}.Clamp()
	if c.R != 1 || c.G != 0 || c.B != 0.5 {
		t.Error("Clamp")
	}
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
