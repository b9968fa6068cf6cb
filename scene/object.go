// Package scene implements the renderable object model: primitives, CSG
// composition, pigments/finishes/textures/interiors, lights, cameras, and
// the scene aggregate itself. The object precompute cascade is ported
// directly from libdimension's dmnsn_object_precompute_recursive.
package scene

import (
	"github.com/dimension/dimension/bvh"
	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/internal/fatal"
	"github.com/dimension/dimension/math/lin"
)

// Intersection describes where and how a ray hit an object, in world
// space. Ray is kept alongside T so shading code can reconstruct the hit
// point without recomputing Origin+T*Dir redundantly when it already has
// the ray on hand.
type Intersection struct {
	T        float64
	Normal   *lin.V3
	Ray      *geom.Ray
	Object   *Object
	Texture  *Texture
	Interior *Interior
}

// Shape is the per-object-type intersection vtable, always evaluated in
// the object's own local space (the unit sphere centered at the origin,
// the [-1,1]^3 cube, and so on) -- Object.Intersect and Object.Inside
// transform into and back out of that space around every Shape call, so
// individual shapes never have to know about the scene graph's transform
// stack.
type Shape interface {
	// Intersect tests localRay against the shape, returning the local
	// parametric t and local-space normal on a hit.
	Intersect(localRay *geom.Ray) (t float64, normal *lin.V3, hit bool)
	// Inside reports whether localPoint lies inside the shape.
	Inside(localPoint *lin.V3) bool
}

// Bounder is implemented by shapes with a closed-form bounding box,
// computed directly from the object's total (intrinsic*extrinsic)
// transform for a tighter fit than transforming 8 local corners would
// give (the sphere's quadric trick is the prototypical example).
type Bounder interface {
	Bounding(total *lin.Affine) *geom.AABB
}

// Precomputer is implemented by composite shapes (CSG nodes) that derive
// their own bounding box and any other precomputed state from their
// children during precompute, instead of from a Bounder's closed form.
type Precomputer interface {
	Precompute(o *Object)
}

// WorldShape is implemented by composite shapes (CSG combinators and
// unions) whose intersection test recurses directly into their own
// world-space child objects instead of evaluating a single local-space
// ray -- it bypasses Object.Intersect/Inside's usual local-space
// transform entirely, the way the reference's CSG vtables call
// dmnsn_object_intersection on their children directly rather than going
// through a shape-level intersection_fn in local space.
type WorldShape interface {
	IntersectWorld(ray *geom.Ray, o *Object) (Intersection, bool)
	InsideWorld(p *lin.V3, o *Object) bool
}

// Object is one node in the scene graph: a shape (leaf) or a composite
// (CSG union/intersection/difference/merge), with its own transform,
// texture, and interior, any of which may be inherited from a parent
// during precompute.
type Object struct {
	Shape Shape

	Texture  *Texture
	Interior *Interior

	// Trans is the transform an author places on this node; IntrinsicTrans
	// is baked in by the constructor (e.g. the triangle's vertex-basis
	// change of basis) and is always applied first.
	Trans          *lin.Affine
	IntrinsicTrans *lin.Affine

	Children      []*Object
	SplitChildren bool // true for CSG unions: children flatten into one BVH.

	precomputed  bool
	pigmentTrans *lin.Affine
	transInv     *lin.Affine
	aabb         *geom.AABB
}

// NewObject returns an object with identity transforms and no shape set;
// callers finish construction by assigning Shape (and, for leaves, calling
// one of the primitive constructors in primitives.go instead of this
// directly).
func NewObject() *Object {
	return &Object{Trans: lin.NewAffineI(), IntrinsicTrans: lin.NewAffineI()}
}

// AABB returns the object's world-space bounding box. Valid only after
// Precompute.
func (o *Object) AABB() *geom.AABB { return o.aabb }

// Split satisfies bvh.Splittable: a CSG union's children flatten directly
// into the surrounding hierarchy instead of nesting as one opaque leaf,
// matching the reference's object->split_children flag.
func (o *Object) Split() ([]bvh.Bounded, bool) {
	if !o.SplitChildren {
		return nil, false
	}
	out := make([]bvh.Bounded, len(o.Children))
	for i, c := range o.Children {
		out[i] = c
	}
	return out, true
}

// TransInv returns the inverse of the object's total (own*intrinsic,
// cascaded with ancestors) transform. Valid only after Precompute.
func (o *Object) TransInv() *lin.Affine { return o.transInv }

// Precompute walks the object graph exactly once, cascading texture and
// interior down to children that don't set their own, composing
// transforms, and computing each node's world-space bounding box. It must
// be called once per root object before any Intersect/Inside call; calling
// it twice on the same node is a programming error.
//
// parentPigmentTrans is the pigment-space transform inherited from the
// parent -- the root call passes the inverse of the root's own transform,
// matching dmnsn_object_precompute's entry point.
func (o *Object) Precompute(parentPigmentTrans *lin.Affine) {
	fatal.Assert(!o.precomputed, "object double-precomputed")
	o.precomputed = true

	fatal.Assert(o.Shape != nil, "object missing a shape")
	_, isBounder := o.Shape.(Bounder)
	_, isPrecomputer := o.Shape.(Precomputer)
	fatal.Assert(isBounder || isPrecomputer, "object shape has neither Bounding nor Precompute")

	if o.Texture == nil {
		o.Texture = &Texture{}
	}
	if !o.Texture.initialized {
		o.Texture.initialize()
	}

	total := lin.NewAffineI().Mult(o.Trans, o.IntrinsicTrans)

	for _, child := range o.Children {
		saved := child.Trans
		child.Trans = lin.NewAffineI().Mult(total, saved)

		var childPigmentTrans *lin.Affine
		if child.Texture == nil || child.Texture.Pigment == nil {
			childPigmentTrans = parentPigmentTrans
		} else {
			childPigmentTrans = child.Trans.Inv()
		}

		child.Texture = cascadeTexture(o.Texture, child.Texture)
		child.Interior = cascadeInterior(o.Interior, child.Interior)
		child.Precompute(childPigmentTrans)
		child.Trans = saved
	}

	o.pigmentTrans = parentPigmentTrans
	o.transInv = total.Inv()
	if b, ok := o.Shape.(Bounder); ok {
		o.aabb = b.Bounding(total)
	}
	if p, ok := o.Shape.(Precomputer); ok {
		p.Precompute(o)
	}
}

// Intersect transforms ray into the object's local space, evaluates the
// shape, and transforms the resulting normal back to world space.
// Intersection.T needs no inverse transform: because the object's
// transform is affine (never projective), a parametric hit distance
// computed in local space along the correspondingly-transformed ray is
// numerically identical to the world-space distance along the original
// ray.
func (o *Object) Intersect(ray *geom.Ray) (Intersection, bool) {
	if ws, ok := o.Shape.(WorldShape); ok {
		return ws.IntersectWorld(ray, o)
	}
	local := ray.Transform(o.transInv)
	t, normal, hit := o.Shape.Intersect(local)
	if !hit {
		return Intersection{}, false
	}
	worldNormal := o.transInv.Normal(normal).Unit()
	return Intersection{
		T:        t,
		Normal:   worldNormal,
		Ray:      ray,
		Object:   o,
		Texture:  o.Texture,
		Interior: o.Interior,
	}, true
}

// Inside reports whether world-space point p lies inside the object.
func (o *Object) Inside(p *lin.V3) bool {
	if ws, ok := o.Shape.(WorldShape); ok {
		return ws.InsideWorld(p, o)
	}
	local := o.transInv.Point(p)
	return o.Shape.Inside(local)
}

// PigmentPoint maps a world-space hit point into the pigment's pattern
// space, using the cascaded pigment_trans computed during Precompute.
func (o *Object) PigmentPoint(worldPoint *lin.V3) *lin.V3 {
	return o.pigmentTrans.Point(worldPoint)
}
