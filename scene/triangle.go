package scene

import (
	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

// triangleBasis builds the change-of-basis affine transform that carries
// the canonical right triangle with corners at the origin, <1,0,0>, and
// <0,1,0> onto the triangle with the given world vertices. Intersection
// against the canonical triangle reduces to trivial barycentric-style
// arithmetic (see (*Triangle).Intersect), and any triangle becomes that
// canonical one by using this as its IntrinsicTrans.
func triangleBasis(a, b, c *lin.V3) *lin.Affine {
	ab := &lin.V3{}
	ab.Sub(b, a)
	ac := &lin.V3{}
	ac.Sub(c, a)
	normal := &lin.V3{}
	normal.Cross(ab, ac)

	linear := lin.NewM3().SetS(
		ab.X, ac.X, normal.X,
		ab.Y, ac.Y, normal.Y,
		ab.Z, ac.Z, normal.Z,
	)
	move := &lin.V3{}
	move.Set(a)
	return &lin.Affine{Linear: linear, Move: move}
}

// Triangle is a flat triangle, expressed in the canonical basis produced
// by triangleBasis and baked into the object's IntrinsicTrans: the actual
// intersection test never sees the real vertex coordinates.
type Triangle struct{}

// rayTriangleIntersect performs the optimized ray/triangle test against
// the canonical triangle (corners at 0, <1,0,0>, <0,1,0>, lying in the
// z=0 plane) that a triangle's IntrinsicTrans maps any real triangle onto.
func rayTriangleIntersect(r *geom.Ray) (t, u, v float64, hit bool) {
	t = -r.Origin.Z / r.Dir.Z
	u = r.Origin.X + t*r.Dir.X
	v = r.Origin.Y + t*r.Dir.Y
	hit = t >= 0.0 && u >= 0.0 && v >= 0.0 && u+v <= 1.0
	return
}

func (Triangle) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	t, _, _, hit = rayTriangleIntersect(r)
	if !hit {
		return 0, nil, false
	}
	return t, &lin.V3{Z: 1}, true
}

func (Triangle) Inside(*lin.V3) bool { return false }

// Bounding bounds the world-space triangle by transforming its three
// canonical corners directly, rather than the generic 8-corner box
// transform (a flat triangle's own local AABB is degenerate).
func (Triangle) Bounding(total *lin.Affine) *geom.AABB {
	a := total.Point(&lin.V3{})
	b := total.Point(&lin.V3{X: 1})
	c := total.Point(&lin.V3{Y: 1})

	box := geom.NewAABB(&lin.V3{}, &lin.V3{})
	box.Min.Set(a)
	box.Max.Set(a)
	swallow := func(p *lin.V3) {
		box.Min.Min(box.Min, p)
		box.Max.Max(box.Max, p)
	}
	swallow(b)
	swallow(c)
	return box
}

// NewTriangle builds a flat triangle from its three world-space vertices.
func NewTriangle(a, b, c *lin.V3) *Object {
	o := NewObject()
	o.Shape = Triangle{}
	o.IntrinsicTrans = triangleBasis(a, b, c)
	return o
}

// SmoothTriangle is a triangle whose normal is Phong-interpolated across
// the three (already basis-transformed, unit) per-vertex normals using
// the same barycentric u/v the intersection test already computes.
type SmoothTriangle struct {
	Na, Nab, Nac *lin.V3
}

func (s *SmoothTriangle) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	var u, v float64
	t, u, v, hit = rayTriangleIntersect(r)
	if !hit {
		return 0, nil, false
	}
	n := &lin.V3{}
	scaledAb := &lin.V3{}
	scaledAb.Scale(s.Nab, u)
	scaledAc := &lin.V3{}
	scaledAc.Scale(s.Nac, v)
	n.Add(s.Na, scaledAb)
	n.Add(n, scaledAc)
	return t, n, true
}

func (s *SmoothTriangle) Inside(*lin.V3) bool { return false }

func (s *SmoothTriangle) Bounding(total *lin.Affine) *geom.AABB {
	return Triangle{}.Bounding(total)
}

// NewSmoothTriangle builds a triangle whose shading normal is interpolated
// across the three given vertex normals, which need not match the
// triangle's own geometric (flat) normal.
func NewSmoothTriangle(vertices, normals [3]*lin.V3) *Object {
	basis := triangleBasis(vertices[0], vertices[1], vertices[2])

	na := basis.Normal(normals[0]).Unit()
	nb := basis.Normal(normals[1]).Unit()
	nc := basis.Normal(normals[2]).Unit()

	nab := &lin.V3{}
	nab.Sub(nb, na)
	nac := &lin.V3{}
	nac.Sub(nc, na)

	o := NewObject()
	o.Shape = &SmoothTriangle{Na: na, Nab: nab, Nac: nac}
	o.IntrinsicTrans = basis
	return o
}
