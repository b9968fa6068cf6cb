package scene

import (
	"github.com/dimension/dimension/bvh"
	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/internal/fatal"
	"github.com/dimension/dimension/math/lin"
)

// csgPair intersects two world-space objects A and B along ray, each
// walking past occluders that don't satisfy the other operand's
// inside/outside membership test, exactly like dmnsn_csg_intersection_fn:
// A's surface is kept only where B.Inside equals inside2, and B's surface
// only where A.Inside equals inside1 (intersection passes true/true,
// difference true/false, merge false/false). When both operands hit at
// the same T, A's intersection is returned.
func csgPair(a, b *Object, ray *geom.Ray, inside1, inside2 bool) (Intersection, bool) {
	i1, isI1 := a.Intersect(ray)
	i2, isI2 := b.Intersect(ray)

	oldt := 0.0
	for isI1 {
		i1.T += oldt
		oldt = i1.T + lin.Epsilon

		point := ray.Point(i1.T)
		if inside2 != b.Inside(point) {
			newRay := geom.NewRay(ray.Point(i1.T), ray.Dir).AddEpsilon()
			i1, isI1 = a.Intersect(newRay)
		} else {
			break
		}
	}

	oldt = 0.0
	for isI2 {
		i2.T += oldt
		oldt = i2.T + lin.Epsilon

		point := ray.Point(i2.T)
		if inside1 != a.Inside(point) {
			newRay := geom.NewRay(ray.Point(i2.T), ray.Dir).AddEpsilon()
			i2, isI2 = b.Intersect(newRay)
		} else {
			break
		}
	}

	switch {
	case isI1 && isI2:
		if i1.T <= i2.T {
			return i1, true
		}
		return i2, true
	case isI1:
		return i1, true
	case isI2:
		return i2, true
	default:
		return Intersection{}, false
	}
}

// csgShape implements a two-operand CSG rule (intersection/difference/
// merge) as a WorldShape: these nodes recurse straight into their two
// world-space child objects rather than evaluating a single local-space
// ray, and their Precompute sets trans_inv to identity the way the
// reference's combinator vtables do.
type csgShape struct {
	inside1, inside2 bool
	insideFn         func(a, b *Object, p *lin.V3) bool
	aabbFn           func(a, b *geom.AABB) *geom.AABB
}

func (*csgShape) Intersect(*geom.Ray) (float64, *lin.V3, bool) {
	fatal.Fatalf("csg combinator shape invoked in local space")
	return 0, nil, false
}

func (*csgShape) Inside(*lin.V3) bool {
	fatal.Fatalf("csg combinator shape invoked in local space")
	return false
}

func (c *csgShape) IntersectWorld(ray *geom.Ray, o *Object) (Intersection, bool) {
	a, b := o.Children[0], o.Children[1]
	isect, ok := csgPair(a, b, ray, c.inside1, c.inside2)
	if ok {
		isect.Object = o
	}
	return isect, ok
}

func (c *csgShape) InsideWorld(p *lin.V3, o *Object) bool {
	a, b := o.Children[0], o.Children[1]
	return c.insideFn(a, b, p)
}

func (c *csgShape) Precompute(o *Object) {
	fatal.Assert(len(o.Children) == 2, "CSG combinator requires exactly two children")
	o.transInv = lin.NewAffineI()
	a, b := o.Children[0], o.Children[1]
	o.aabb = c.aabbFn(a.AABB(), b.AABB())
}

func combinator(a, b *Object, inside1, inside2 bool, insideFn func(a, b *Object, p *lin.V3) bool, aabbFn func(a, b *geom.AABB) *geom.AABB) *Object {
	o := NewObject()
	o.Children = []*Object{a, b}
	o.Shape = &csgShape{inside1: inside1, inside2: inside2, insideFn: insideFn, aabbFn: aabbFn}
	return o
}

// NewIntersection returns the CSG intersection of a and b: the solid
// region both occupy.
func NewIntersection(a, b *Object) *Object {
	return combinator(a, b, true, true,
		func(a, b *Object, p *lin.V3) bool { return a.Inside(p) && b.Inside(p) },
		func(ba, bb *geom.AABB) *geom.AABB {
			min := &lin.V3{}
			min.Max(ba.Min, bb.Min)
			max := &lin.V3{}
			max.Min(ba.Max, bb.Max)
			return geom.NewAABB(min, max)
		})
}

// NewDifference returns the CSG difference a - b: the part of a not
// covered by b.
func NewDifference(a, b *Object) *Object {
	return combinator(a, b, true, false,
		func(a, b *Object, p *lin.V3) bool { return a.Inside(p) && !b.Inside(p) },
		func(ba, _ *geom.AABB) *geom.AABB { return ba })
}

// NewMerge returns the CSG merge of a and b: like a union, but with the
// internal surfaces where the two solids overlap removed.
func NewMerge(a, b *Object) *Object {
	return combinator(a, b, false, false,
		func(a, b *Object, p *lin.V3) bool { return a.Inside(p) || b.Inside(p) },
		func(ba, bb *geom.AABB) *geom.AABB { return geom.Union(ba, bb) })
}

// unionShape is the bulk-loaded many-child union: its Intersect/Inside
// walk a bounding volume hierarchy over its children rather than the
// two-operand csgPair recursion the other combinators use.
type unionShape struct {
	tree *bvh.Tree
}

func (*unionShape) Intersect(*geom.Ray) (float64, *lin.V3, bool) {
	fatal.Fatalf("union shape invoked in local space")
	return 0, nil, false
}

func (*unionShape) Inside(*lin.V3) bool {
	fatal.Fatalf("union shape invoked in local space")
	return false
}

func (u *unionShape) IntersectWorld(ray *geom.Ray, o *Object) (Intersection, bool) {
	var best Intersection
	found := false
	u.tree.Traverse(ray, 0, bvh.Infinity, func(item bvh.Bounded) (float64, bool) {
		obj := item.(*Object)
		if isect, ok := obj.Intersect(ray); ok {
			if !found || isect.T < best.T {
				best, found = isect, true
			}
			return best.T, true
		}
		return 0, false
	})
	return best, found
}

func (u *unionShape) InsideWorld(p *lin.V3, o *Object) bool {
	return u.tree.Inside(p, func(item bvh.Bounded) bool {
		return item.(*Object).Inside(p)
	})
}

func (u *unionShape) Precompute(o *Object) {
	items := make([]bvh.Bounded, len(o.Children))
	for i, c := range o.Children {
		items[i] = c
	}
	u.tree = bvh.Build(items)
	o.transInv = lin.NewAffineI()
	o.aabb = u.tree.AABB()
}

// NewUnion bulk-loads a bounding volume hierarchy over the given objects
// and returns a single CSG object whose surface is their union, the way
// dmnsn_new_csg_union does for potentially large object counts (an
// explicit list of children, rather than the two-operand shapes above).
func NewUnion(objects []*Object) *Object {
	o := NewObject()
	o.Children = objects
	o.SplitChildren = true
	o.Shape = &unionShape{}
	return o
}
