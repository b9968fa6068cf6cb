package scene

import (
	"math"

	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

// Sphere is the unit ball centered at the origin.
type Sphere struct{}

func (Sphere) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	// Solve (x0 + n*t)^2 == 1.
	poly := []float64{
		r.Origin.Dot(r.Origin) - 1.0,
		2.0 * r.Dir.Dot(r.Origin),
		r.Dir.Dot(r.Dir),
	}
	var x [2]float64
	n := lin.SolvePoly(poly, 2, x[:])
	if n == 0 {
		return 0, nil, false
	}

	tt := x[0]
	if n == 2 {
		tt = math.Min(x[0], x[1])
		if tt < 0.0 {
			tt = math.Max(x[0], x[1])
		}
	}
	if tt < 0.0 {
		return 0, nil, false
	}
	p := r.Point(tt)
	return tt, p, true
}

func (Sphere) Inside(p *lin.V3) bool {
	return p.X*p.X+p.Y*p.Y+p.Z*p.Z < 1.0
}

// Bounding computes the exact bounding box of a transformed unit sphere
// directly from the transform's rows, without resorting to the generic
// 8-corner transform -- the quadric form of a sphere makes this exact.
func (Sphere) Bounding(total *lin.Affine) *geom.AABB {
	l := total.Linear
	m := total.Move

	dx := math.Sqrt(l.Xx*l.Xx + l.Xy*l.Xy + l.Xz*l.Xz)
	dy := math.Sqrt(l.Yx*l.Yx + l.Yy*l.Yy + l.Yz*l.Yz)
	dz := math.Sqrt(l.Zx*l.Zx + l.Zy*l.Zy + l.Zz*l.Zz)

	return &geom.AABB{
		Min: &lin.V3{X: m.X - dx, Y: m.Y - dy, Z: m.Z - dz},
		Max: &lin.V3{X: m.X + dx, Y: m.Y + dy, Z: m.Z + dz},
	}
}

// Cube is the axis-aligned box [-1,1]^3.
type Cube struct{}

func (Cube) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	var tmin, tmax float64
	var nmin, nmax *lin.V3

	tx1 := (-1.0 - r.Origin.X) / r.Dir.X
	tx2 := (1.0 - r.Origin.X) / r.Dir.X
	if tx1 < tx2 {
		tmin, tmax = tx1, tx2
		nmin, nmax = &lin.V3{X: -1}, &lin.V3{X: 1}
	} else {
		tmin, tmax = tx2, tx1
		nmin, nmax = &lin.V3{X: 1}, &lin.V3{X: -1}
	}
	if tmin > tmax {
		return 0, nil, false
	}

	ty1 := (-1.0 - r.Origin.Y) / r.Dir.Y
	ty2 := (1.0 - r.Origin.Y) / r.Dir.Y
	if ty1 < ty2 {
		if ty1 > tmin {
			tmin, nmin = ty1, &lin.V3{Y: -1}
		}
		if ty2 < tmax {
			tmax, nmax = ty2, &lin.V3{Y: 1}
		}
	} else {
		if ty2 > tmin {
			tmin, nmin = ty2, &lin.V3{Y: 1}
		}
		if ty1 < tmax {
			tmax, nmax = ty1, &lin.V3{Y: -1}
		}
	}
	if tmin > tmax {
		return 0, nil, false
	}

	tz1 := (-1.0 - r.Origin.Z) / r.Dir.Z
	tz2 := (1.0 - r.Origin.Z) / r.Dir.Z
	if tz1 < tz2 {
		if tz1 > tmin {
			tmin, nmin = tz1, &lin.V3{Z: -1}
		}
		if tz2 < tmax {
			tmax, nmax = tz2, &lin.V3{Z: 1}
		}
	} else {
		if tz2 > tmin {
			tmin, nmin = tz2, &lin.V3{Z: 1}
		}
		if tz1 < tmax {
			tmax, nmax = tz1, &lin.V3{Z: -1}
		}
	}
	if tmin > tmax {
		return 0, nil, false
	}

	if tmin < 0.0 {
		tmin, nmin = tmax, nmax
	}
	if tmin < 0.0 {
		return 0, nil, false
	}
	return tmin, nmin, true
}

func (Cube) Inside(p *lin.V3) bool {
	return p.X > -1.0 && p.X < 1.0 &&
		p.Y > -1.0 && p.Y < 1.0 &&
		p.Z > -1.0 && p.Z < 1.0
}

func (Cube) Bounding(total *lin.Affine) *geom.AABB {
	box := geom.SymmetricAABB(&lin.V3{X: 1, Y: 1, Z: 1})
	return geom.Transform(total, box)
}

// Plane is the half-space behind the plane through the origin with the
// given normal; it has no finite extent so its bounding box is infinite.
type Plane struct {
	Normal *lin.V3
}

func (p *Plane) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	den := r.Dir.Dot(p.Normal)
	if den == 0.0 {
		return 0, nil, false
	}
	tt := -r.Origin.Dot(p.Normal) / den
	if tt < 0.0 {
		return 0, nil, false
	}
	return tt, p.Normal, true
}

func (p *Plane) Inside(point *lin.V3) bool {
	return point.Dot(p.Normal) < 0.0
}

func (p *Plane) Bounding(*lin.Affine) *geom.AABB {
	return geom.InfiniteAABB()
}

// Cone is the frustum between y=-1 (radius R1) and y=+1 (radius R2),
// open at both ends; a cylinder is the special case R1 == R2.
type Cone struct {
	R1, R2 float64
}

func (c *Cone) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	r1, r2 := c.R1, c.R2
	dr := r2 - r1

	poly := []float64{
		r.Origin.X*r.Origin.X + r.Origin.Z*r.Origin.Z -
			sq((r.Origin.Y*dr+r1+r2))/4.0,
		2.0*(r.Dir.X*r.Origin.X+r.Dir.Z*r.Origin.Z) -
			r.Dir.Y*dr*(r.Origin.Y*dr+r2+r1)/2.0,
		r.Dir.X*r.Dir.X + r.Dir.Z*r.Dir.Z - r.Dir.Y*r.Dir.Y*dr*dr/4.0,
	}

	var x [2]float64
	n := lin.SolvePoly(poly, 2, x[:])
	if n == 0 {
		return 0, nil, false
	}

	tt := x[0]
	var p *lin.V3
	if n == 2 {
		tt = math.Min(x[0], x[1])
		p = r.Point(tt)
		if p.Y <= -1.0 || p.Y >= 1.0 {
			tt = math.Max(x[0], x[1])
			p = r.Point(tt)
		}
	} else {
		p = r.Point(tt)
	}

	if tt >= 0.0 && p.Y >= -1.0 && p.Y <= 1.0 {
		radius := (dr*p.Y + r1 + r2) / 2.0
		norm := &lin.V3{X: p.X, Y: -radius * dr / 2.0, Z: p.Z}
		return tt, norm, true
	}
	return 0, nil, false
}

func (c *Cone) Inside(p *lin.V3) bool {
	r := (p.Y*(c.R2-c.R1) + c.R1 + c.R2) / 2.0
	return p.X*p.X+p.Z*p.Z < r*r && p.Y > -1.0 && p.Y < 1.0
}

func (c *Cone) Bounding(total *lin.Affine) *geom.AABB {
	rmax := math.Max(c.R1, c.R2)
	box := geom.SymmetricAABB(&lin.V3{X: rmax, Y: 1, Z: rmax})
	return geom.Transform(total, box)
}

// ConeCap is the flat disc of radius R at y=0, used (via translation
// IntrinsicTrans) to close off a Cone's two ends.
type ConeCap struct {
	R float64
}

func (c *ConeCap) Intersect(r *geom.Ray) (t float64, normal *lin.V3, hit bool) {
	if r.Dir.Y == 0.0 {
		return 0, nil, false
	}
	tt := -r.Origin.Y / r.Dir.Y
	p := r.Point(tt)
	if tt >= 0.0 && p.X*p.X+p.Z*p.Z <= c.R*c.R {
		return tt, &lin.V3{Y: -1}, true
	}
	return 0, nil, false
}

func (c *ConeCap) Inside(*lin.V3) bool { return false }

func (c *ConeCap) Bounding(total *lin.Affine) *geom.AABB {
	box := geom.SymmetricAABB(&lin.V3{X: c.R, Y: 0, Z: c.R})
	return geom.Transform(total, box)
}

// NewCone builds a cone/cylinder frustum between radius r1 at y=-1 and
// r2 at y=+1. When open is false the two ends are capped with discs,
// assembled as a union the way dmnsn_new_cone does.
func NewCone(r1, r2 float64, open bool) *Object {
	body := NewObject()
	body.Shape = &Cone{R1: r1, R2: r2}
	if open {
		return body
	}

	cap1 := NewObject()
	cap1.Shape = &ConeCap{R: r1}
	cap1.IntrinsicTrans = lin.NewAffineI().SetTranslate(0, -1, 0)

	cap2 := NewObject()
	cap2.Shape = &ConeCap{R: r2}
	capTrans := lin.NewAffineI().SetTranslate(0, 1, 0)
	capTrans.Linear.Yy = -1.0 // flip the normal around for the top cap.
	cap2.IntrinsicTrans = capTrans

	return NewUnion([]*Object{body, cap1, cap2})
}

// Torus is the surface swept by a circle of radius Minor whose center
// travels around a circle of radius Major in the xz-plane, centered on
// the origin with its axis along y.
type Torus struct {
	Major, Minor float64
}

// boundIntersection is a cheap necessary (not sufficient) pre-check that
// rejects rays that cannot possibly hit the torus before paying for the
// quartic solve, exactly like dmnsn_torus_bound_intersection: it first
// tries the two horizontal planes y=-minor and y=+minor bounding the
// torus's cross-section, and falls back to the cylindrical shell between
// the inner and outer equators only if neither cap lies within it.
func (t *Torus) boundIntersection(r *geom.Ray) bool {
	R, minor := t.Major, t.Minor
	rmax, rmin := R+minor, R-minor
	rmax2, rmin2 := rmax*rmax, rmin*rmin

	tlower := (-minor - r.Origin.Y) / r.Dir.Y
	tupper := (minor - r.Origin.Y) / r.Dir.Y
	lower := r.Point(tlower)
	upper := r.Point(tupper)
	ldist2 := lower.X*lower.X + lower.Z*lower.Z
	udist2 := upper.X*upper.X + upper.Z*upper.Z
	if (ldist2 >= rmin2 && ldist2 <= rmax2) || (udist2 >= rmin2 && udist2 <= rmax2) {
		return true
	}

	dist2 := r.Origin.X*r.Origin.X + r.Origin.Z*r.Origin.Z
	nxz := r.Dir.X*r.Dir.X + r.Dir.Z*r.Dir.Z
	nx0xz := 2.0 * (r.Dir.X*r.Origin.X + r.Dir.Z*r.Origin.Z)

	bigCyl := []float64{dist2 - rmax2, nx0xz, nxz}
	smallCyl := []float64{dist2 - rmin2, nx0xz, nxz}

	var x [4]float64
	n := lin.SolvePoly(bigCyl, 2, x[:])
	n += lin.SolvePoly(smallCyl, 2, x[n:])

	for i := 0; i < n; i++ {
		p := r.Point(x[i])
		if p.Y >= -minor && p.Y <= minor {
			return true
		}
	}
	return false
}

func (t *Torus) Intersect(r *geom.Ray) (tHit float64, normal *lin.V3, hit bool) {
	if !t.boundIntersection(r) {
		return 0, nil, false
	}

	R, minor := t.Major, t.Minor
	RR, rr := R*R, minor*minor

	x0mod := &lin.V3{X: r.Origin.X, Y: -r.Origin.Y, Z: r.Origin.Z}
	nmod := &lin.V3{X: r.Dir.X, Y: -r.Dir.Y, Z: r.Dir.Z}
	nn := r.Dir.Dot(r.Dir)
	nx0 := r.Dir.Dot(r.Origin)
	x0x0 := r.Origin.Dot(r.Origin)
	x0x0mod := r.Origin.Dot(x0mod)
	nx0mod := r.Dir.Dot(x0mod)
	nnmod := r.Dir.Dot(nmod)

	poly := []float64{
		x0x0*x0x0 + RR*(RR-2.0*x0x0mod) - rr*(2.0*(RR+x0x0)-rr),
		4.0 * (nx0*(x0x0-rr) - RR*nx0mod),
		2.0 * (nn*(x0x0-rr) + 2.0*nx0*nx0 - RR*nnmod),
		4 * nn * nx0,
		nn * nn,
	}

	var x [4]float64
	n := lin.SolvePoly(poly, 4, x[:])
	if n == 0 {
		return 0, nil, false
	}

	tt := x[0]
	for i := 1; i < n; i++ {
		tt = math.Min(tt, x[i])
	}
	if tt < 0.0 {
		return 0, nil, false
	}

	p := r.Point(tt)
	radial := &lin.V3{X: p.X, Z: p.Z}
	center := radial.Unit()
	center.Scale(center, R)
	n3 := &lin.V3{}
	n3.Sub(p, center)
	return tt, n3, true
}

func (t *Torus) Inside(p *lin.V3) bool {
	dmajor := t.Major - math.Sqrt(p.X*p.X+p.Z*p.Z)
	return dmajor*dmajor+p.Y*p.Y < t.Minor*t.Minor
}

func (t *Torus) Bounding(total *lin.Affine) *geom.AABB {
	extent := t.Major + t.Minor
	box := geom.SymmetricAABB(&lin.V3{X: extent, Y: t.Minor, Z: extent})
	return geom.Transform(total, box)
}

func sq(x float64) float64 { return x * x }
