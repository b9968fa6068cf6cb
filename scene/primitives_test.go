package scene

import (
	"math"
	"testing"

	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

func aeq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSphereIntersectFromOutside(t *testing.T) {
	s := Sphere{}
	r := geom.NewRay(&lin.V3{X: 0, Y: 0, Z: -5}, &lin.V3{X: 0, Y: 0, Z: 1})
	tt, normal, hit := s.Intersect(r)
	if !hit {
		t.Fatal("expected a hit")
	}
	if !aeq(tt, 4) {
		t.Errorf("t = %v, want 4", tt)
	}
	if !aeq(normal.Z, -1) {
		t.Errorf("normal = %v, want (0,0,-1)", normal)
	}
}

func TestSphereMissesWhenRayPassesOutside(t *testing.T) {
	s := Sphere{}
	r := geom.NewRay(&lin.V3{X: 5, Y: 5, Z: -5}, &lin.V3{X: 0, Y: 0, Z: 1})
	if _, _, hit := s.Intersect(r); hit {
		t.Error("expected a miss")
	}
}

func TestSphereInside(t *testing.T) {
	s := Sphere{}
	if !s.Inside(&lin.V3{}) {
		t.Error("origin should be inside unit sphere")
	}
	if s.Inside(&lin.V3{X: 2}) {
		t.Error("(2,0,0) should be outside unit sphere")
	}
}

func TestCubeIntersectFromOutside(t *testing.T) {
	c := Cube{}
	r := geom.NewRay(&lin.V3{X: 0, Y: 0, Z: -5}, &lin.V3{X: 0, Y: 0, Z: 1})
	tt, _, hit := c.Intersect(r)
	if !hit {
		t.Fatal("expected a hit")
	}
	if !aeq(tt, 4) {
		t.Errorf("t = %v, want 4", tt)
	}
}

func TestTorusBoundIntersectionRejectsFarRay(t *testing.T) {
	tor := &Torus{Major: 2, Minor: 0.5}
	r := geom.NewRay(&lin.V3{X: 0, Y: 100, Z: 0}, &lin.V3{X: 0, Y: 1, Z: 0})
	if tor.boundIntersection(r) {
		t.Error("a ray along the torus's axis, starting far above it and pointing away, should be rejected by the bound check")
	}
}

func TestTorusIntersectThroughCenter(t *testing.T) {
	tor := &Torus{Major: 2, Minor: 0.5}
	// Fired along the major radius through the tube cross-section at x=2.
	r := geom.NewRay(&lin.V3{X: 2, Y: 0, Z: -5}, &lin.V3{X: 0, Y: 0, Z: 1})
	_, _, hit := tor.Intersect(r)
	if !hit {
		t.Fatal("expected the ray through the tube's cross-section to hit")
	}
}

func TestTorusInside(t *testing.T) {
	tor := &Torus{Major: 2, Minor: 0.5}
	if !tor.Inside(&lin.V3{X: 2, Y: 0, Z: 0}) {
		t.Error("a point on the major circle should be inside the tube")
	}
	if tor.Inside(&lin.V3{}) {
		t.Error("the donut hole's center should not be inside the tube")
	}
}
