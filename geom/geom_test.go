package geom

import (
	"math"
	"testing"

	"github.com/dimension/dimension/math/lin"
)

func TestRayPointAtZeroIsOrigin(t *testing.T) {
	r := NewRay(&lin.V3{X: 1, Y: 2, Z: 3}, &lin.V3{X: 0, Y: 0, Z: 1})
	p := r.Point(0)
	if !p.Eq(r.Origin) {
		t.Errorf("Point(0) = %v, want origin %v", p, r.Origin)
	}
}

func TestRayTransformAppliesAffine(t *testing.T) {
	r := NewRay(&lin.V3{}, &lin.V3{X: 0, Y: 0, Z: 1})
	f := lin.NewAffineI().SetTranslate(5, 0, 0)
	out := r.Transform(f)
	if out.Origin.X != 5 {
		t.Errorf("transformed origin.X = %v, want 5", out.Origin.X)
	}
	if !out.Dir.Eq(r.Dir) {
		t.Errorf("translation should not affect direction, got %v", out.Dir)
	}
}

func TestAABBOverlapsAndContains(t *testing.T) {
	a := NewAABB(&lin.V3{X: -1, Y: -1, Z: -1}, &lin.V3{X: 1, Y: 1, Z: 1})
	b := NewAABB(&lin.V3{X: 0.5, Y: 0.5, Z: 0.5}, &lin.V3{X: 2, Y: 2, Z: 2})
	if !a.Overlaps(b) {
		t.Error("expected overlapping boxes")
	}
	if !a.Contains(&lin.V3{}) {
		t.Error("origin should be contained in box centered at origin")
	}
	if a.Contains(&lin.V3{X: 5}) {
		t.Error("far point should not be contained")
	}
}

func TestAABBUnionCoversBoth(t *testing.T) {
	a := NewAABB(&lin.V3{X: -1, Y: -1, Z: -1}, &lin.V3{X: 0, Y: 0, Z: 0})
	b := NewAABB(&lin.V3{X: 0, Y: 0, Z: 0}, &lin.V3{X: 2, Y: 2, Z: 2})
	u := Union(a, b)
	if u.Min.X != -1 || u.Max.X != 2 {
		t.Errorf("union X range = [%v, %v], want [-1, 2]", u.Min.X, u.Max.X)
	}
}

func TestAABBIntersectHitsCenteredBox(t *testing.T) {
	box := NewAABB(&lin.V3{X: -1, Y: -1, Z: -1}, &lin.V3{X: 1, Y: 1, Z: 1})
	r := NewRay(&lin.V3{X: 0, Y: 0, Z: -5}, &lin.V3{X: 0, Y: 0, Z: 1})
	hit, tmin, tmax := box.Intersect(r, 0, math.Inf(1))
	if !hit {
		t.Fatal("expected a hit")
	}
	if tmin > tmax {
		t.Errorf("tmin %v should not exceed tmax %v", tmin, tmax)
	}
}

func TestAABBIntersectMissesParallelBox(t *testing.T) {
	box := NewAABB(&lin.V3{X: 5, Y: -1, Z: -1}, &lin.V3{X: 6, Y: 1, Z: 1})
	r := NewRay(&lin.V3{X: 0, Y: 0, Z: -5}, &lin.V3{X: 0, Y: 0, Z: 1})
	hit, _, _ := box.Intersect(r, 0, math.Inf(1))
	if hit {
		t.Error("expected a miss")
	}
}

