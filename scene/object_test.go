package scene

import (
	"testing"

	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

func sphereObject() *Object {
	o := NewObject()
	o.Shape = Sphere{}
	return o
}

func TestObjectPrecomputeAndIntersectRoundTripsWorldSpace(t *testing.T) {
	o := sphereObject()
	o.Trans = lin.NewAffineI().Mult(
		lin.NewAffineI().SetTranslate(5, 0, 0),
		lin.NewAffineI().SetScale(2, 2, 2),
	)
	o.Precompute(o.Trans.Inv())

	// The sphere is now a radius-2 ball centered at (5,0,0); a ray along
	// +x starting at the world origin should hit its near surface at x=3.
	r := geom.NewRay(&lin.V3{}, &lin.V3{X: 1, Y: 0, Z: 0})
	isect, hit := o.Intersect(r)
	if !hit {
		t.Fatal("expected a hit")
	}
	if !aeq(isect.T, 3) {
		t.Errorf("T = %v, want 3", isect.T)
	}
	if !aeq(isect.Normal.X, -1) {
		t.Errorf("world normal = %v, want (-1,0,0)", isect.Normal)
	}
}

func TestObjectIntersectMissesOutsideTransformedBounds(t *testing.T) {
	o := sphereObject()
	o.Trans = lin.NewAffineI().SetTranslate(5, 0, 0)
	o.Precompute(o.Trans.Inv())

	r := geom.NewRay(&lin.V3{}, &lin.V3{X: 0, Y: 1, Z: 0})
	if _, hit := o.Intersect(r); hit {
		t.Error("expected a miss: ray along +y never approaches the translated sphere")
	}
}

func TestObjectInsideUsesWorldSpacePoint(t *testing.T) {
	o := sphereObject()
	o.Trans = lin.NewAffineI().SetTranslate(5, 0, 0)
	o.Precompute(o.Trans.Inv())

	if !o.Inside(&lin.V3{X: 5, Y: 0, Z: 0}) {
		t.Error("translated sphere's own center should be inside it")
	}
	if o.Inside(&lin.V3{}) {
		t.Error("world origin should be outside the translated sphere")
	}
}

func TestObjectPigmentPointUsesCascadedPigmentTrans(t *testing.T) {
	o := sphereObject()
	o.Trans = lin.NewAffineI().SetTranslate(5, 0, 0)
	o.Precompute(o.Trans.Inv())

	p := o.PigmentPoint(&lin.V3{X: 5, Y: 0, Z: 0})
	if !p.Eq(&lin.V3{}) {
		t.Errorf("pigment point for the translated center = %v, want origin", p)
	}
}

func twoSpheres(sepX float64) (*Object, *Object) {
	// Left un-precomputed: the CSG or union parent precomputes its
	// children, and precomputing a node twice is fatal.
	a := sphereObject()

	b := sphereObject()
	b.Trans = lin.NewAffineI().SetTranslate(sepX, 0, 0)
	return a, b
}

func TestCSGIntersectionOnlyHitsOverlap(t *testing.T) {
	a, b := twoSpheres(1)
	csg := NewIntersection(a, b)
	csg.Precompute(lin.NewAffineI())

	// Overlap region spans x in (0, 1) on the x axis; a ray starting well
	// to the left should hit the overlap's near face at x=0.
	r := geom.NewRay(&lin.V3{X: -5, Y: 0, Z: 0}, &lin.V3{X: 1, Y: 0, Z: 0})
	isect, hit := csg.Intersect(r)
	if !hit {
		t.Fatal("expected the overlapping region to be hit")
	}
	if !aeq(isect.T, 5) {
		t.Errorf("T = %v, want 5 (hit at world x=0)", isect.T)
	}
}

func TestCSGDifferenceExcludesOverlap(t *testing.T) {
	a, b := twoSpheres(1)
	csg := NewDifference(a, b)
	csg.Precompute(lin.NewAffineI())

	if csg.Inside(&lin.V3{X: 0.6, Y: 0, Z: 0}) {
		t.Error("point inside both spheres should not be inside a-b")
	}
	if !csg.Inside(&lin.V3{X: -0.5, Y: 0, Z: 0}) {
		t.Error("point only inside a should be inside a-b")
	}
}

func TestCSGMergeIsInsideEither(t *testing.T) {
	a, b := twoSpheres(5)
	csg := NewMerge(a, b)
	csg.Precompute(lin.NewAffineI())

	if !csg.Inside(&lin.V3{}) {
		t.Error("a's center should be inside the merge")
	}
	if !csg.Inside(&lin.V3{X: 5, Y: 0, Z: 0}) {
		t.Error("b's center should be inside the merge")
	}
	if csg.Inside(&lin.V3{X: 2.5, Y: 0, Z: 0}) {
		t.Error("the gap between the two spheres should not be inside the merge")
	}
}

func TestUnionHitsNearestChild(t *testing.T) {
	a, b := twoSpheres(10)
	u := NewUnion([]*Object{a, b})
	u.Precompute(lin.NewAffineI())

	r := geom.NewRay(&lin.V3{X: -5, Y: 0, Z: 0}, &lin.V3{X: 1, Y: 0, Z: 0})
	isect, hit := u.Intersect(r)
	if !hit {
		t.Fatal("expected a hit")
	}
	if isect.Object != a {
		t.Error("expected the nearer sphere (a) to win the union hit")
	}
}
