package geom

import (
	"math"

	"github.com/dimension/dimension/math/lin"
)

// AABB is an axis-aligned bounding box, min/max corners. An unbounded
// object (an infinite plane, say) reports an AABB with +/-Inf extent in the
// unbounded axes rather than a sentinel flag, so the tree code never needs
// a special case -- Overlaps and Intersect both already do the right thing
// with infinities.
type AABB struct {
	Min *lin.V3
	Max *lin.V3
}

// NewAABB returns the AABB with the given min/max corners.
func NewAABB(min, max *lin.V3) *AABB { return &AABB{Min: min, Max: max} }

// InfiniteAABB returns an AABB that contains all of space, used by object
// types like infinite planes that have no finite bound.
func InfiniteAABB() *AABB {
	return &AABB{
		Min: &lin.V3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
		Max: &lin.V3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
	}
}

// SymmetricAABB returns the AABB [-extent, extent], the common case for
// objects centered at the origin before any transform is applied.
func SymmetricAABB(extent *lin.V3) *AABB {
	neg := &lin.V3{}
	neg.Neg(extent)
	return &AABB{Min: neg, Max: extent}
}

// Transform returns the AABB of box after applying affine f, computed by
// transforming all 8 corners and taking their bounds. This is the generic
// fallback; object types whose shape allows a tighter closed-form bound
// (the sphere's quadric trick, the plane's infinite box) override it
// directly instead of calling this.
func Transform(f *lin.Affine, box *AABB) *AABB {
	if math.IsInf(box.Min.X, -1) || math.IsInf(box.Max.X, 1) {
		return InfiniteAABB()
	}
	corners := [8]*lin.V3{}
	i := 0
	for _, x := range [2]float64{box.Min.X, box.Max.X} {
		for _, y := range [2]float64{box.Min.Y, box.Max.Y} {
			for _, z := range [2]float64{box.Min.Z, box.Max.Z} {
				corners[i] = f.Point(&lin.V3{X: x, Y: y, Z: z})
				i++
			}
		}
	}
	min := corners[0].Min(corners[0], corners[1])
	max := &lin.V3{}
	max.Max(corners[0], corners[1])
	for _, c := range corners[2:] {
		min.Min(min, c)
		max.Max(max, c)
	}
	return &AABB{Min: min, Max: max}
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b *AABB) *AABB {
	min := &lin.V3{}
	min.Min(a.Min, b.Min)
	max := &lin.V3{}
	max.Max(a.Max, b.Max)
	return &AABB{Min: min, Max: max}
}

// Overlaps reports whether the two boxes share any volume.
func (b *AABB) Overlaps(o *AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Contains reports whether point p lies within b.
func (b *AABB) Contains(p *lin.V3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the midpoint of b. (The PR-tree's six comparators sort
// on the box's own Min and Max coordinates, not on Center.)
func (b *AABB) Center() *lin.V3 {
	c := &lin.V3{}
	c.Add(b.Min, b.Max)
	c.Scale(c, 0.5)
	return c
}

// Intersect performs the slab-method ray/box test and returns whether the
// ray hits the box within [tmin, tmax], narrowing tmin/tmax to the hit
// interval's bounds on success.
//
// The reciprocal of each ray direction component is computed once up
// front. When a component of Dir is exactly zero, IEEE-754 division gives
// +Inf or -Inf for n_inv, and the subsequent min/max comparisons against
// +-Inf correctly treat that axis as unbounded instead of requiring a
// separate "is this ray parallel to the slab" branch -- this mirrors
// dmnsn_ray_box_intersection in the reference renderer exactly.
func (b *AABB) Intersect(r *Ray, tmin, tmax float64) (bool, float64, float64) {
	nInvX := 1 / r.Dir.X
	nInvY := 1 / r.Dir.Y
	nInvZ := 1 / r.Dir.Z

	tx1 := (b.Min.X - r.Origin.X) * nInvX
	tx2 := (b.Max.X - r.Origin.X) * nInvX
	ty1 := (b.Min.Y - r.Origin.Y) * nInvY
	ty2 := (b.Max.Y - r.Origin.Y) * nInvY
	tz1 := (b.Min.Z - r.Origin.Z) * nInvZ
	tz2 := (b.Max.Z - r.Origin.Z) * nInvZ

	tmin = math.Max(tmin, math.Max(math.Min(tx1, tx2), math.Max(math.Min(ty1, ty2), math.Min(tz1, tz2))))
	tmax = math.Min(tmax, math.Min(math.Max(tx1, tx2), math.Min(math.Max(ty1, ty2), math.Max(tz1, tz2))))

	return tmax >= tmin, tmin, tmax
}
