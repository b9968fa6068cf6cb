// Package bvh implements the bounding volume hierarchy used to accelerate
// ray/scene intersection: a bulk-loaded Priority R-tree (see prtree.go),
// flattened into a single pre-order array with skip pointers so traversal
// needs no recursion and no pointer chasing, ported from the reference
// renderer's dmnsn_bvh/dmnsn_flatten_bvh.
package bvh

import (
	"log/slog"
	"math"
	"time"

	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

// Infinity is the sentinel upper bound passed to Traverse for an
// unbounded search (find the closest hit at any distance), as opposed to
// a shadow feeler's search which bounds the search at the light's own
// parametric distance.
var Infinity = math.Inf(1)

// Bounded is anything that can be placed in the hierarchy: it must report
// its own world-space bounding box.
type Bounded interface {
	AABB() *geom.AABB
}

// Splittable is implemented by composite items (CSG unions) whose
// children should be flattened directly into the surrounding hierarchy
// instead of being nested as one opaque leaf, mirroring the reference's
// object->split_children flag and dmnsn_split_objects.
type Splittable interface {
	Split() ([]Bounded, bool)
}

// flatNode is one entry of the flattened pre-order array.
type flatNode struct {
	box  *geom.AABB
	item Bounded // nil for internal (non-leaf) nodes.
	skip int     // how far to advance when this node's box is missed.
}

// Tree is a built, query-ready hierarchy.
type Tree struct {
	nodes     []flatNode
	unbounded []Bounded
}

// Build flattens any Splittable items, bulk-loads a Priority R-tree over
// the items with a finite bounding box, and keeps unbounded items (an
// infinite plane, say) in a separate linear list searched unconditionally
// -- exactly the bounded/unbounded split dmnsn_new_bvh performs before
// ever constructing a tree.
func Build(items []Bounded) *Tree {
	start := time.Now()

	flat := splitItems(items)

	var bounded, unbounded []Bounded
	for _, it := range flat {
		if isInfinite(it.AABB()) {
			unbounded = append(unbounded, it)
		} else {
			bounded = append(bounded, it)
		}
	}

	root := newPRTree(bounded)
	tree := &Tree{nodes: flattenTree(root), unbounded: unbounded}

	slog.Debug("pr-tree built",
		"items", len(flat),
		"bounded", len(bounded),
		"unbounded", len(unbounded),
		"elapsed", time.Since(start),
	)
	return tree
}

func splitItems(items []Bounded) []Bounded {
	out := make([]Bounded, 0, len(items))
	for _, it := range items {
		if s, ok := it.(Splittable); ok {
			if children, split := s.Split(); split {
				out = append(out, splitItems(children)...)
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func isInfinite(box *geom.AABB) bool {
	return math.IsInf(box.Min.X, -1) || math.IsInf(box.Max.X, 1) ||
		math.IsInf(box.Min.Y, -1) || math.IsInf(box.Max.Y, 1) ||
		math.IsInf(box.Min.Z, -1) || math.IsInf(box.Max.Z, 1)
}

// AABB returns the bounding box of the whole hierarchy: infinite if any
// unbounded item was included, the root node's box otherwise, matching
// dmnsn_bvh_bounding_box.
func (t *Tree) AABB() *geom.AABB {
	if len(t.unbounded) > 0 {
		return geom.InfiniteAABB()
	}
	if len(t.nodes) > 0 {
		return t.nodes[0].box
	}
	return geom.SymmetricAABB(&lin.V3{})
}

// boxHit is the slab-method ray/box test used during traversal, testing
// only against a single upper bound t (the closest hit found so far)
// rather than a [tmin,tmax] window -- this mirrors
// dmnsn_ray_box_intersection exactly, including relying on IEEE-754
// +-Inf from dividing by a zero ray direction component to make
// axis-parallel rays behave correctly without a special case.
func boxHit(box *geom.AABB, origin, nInv *lin.V3, t float64) bool {
	tx1 := (box.Min.X - origin.X) * nInv.X
	tx2 := (box.Max.X - origin.X) * nInv.X
	tmin := math.Min(tx1, tx2)
	tmax := math.Max(tx1, tx2)

	ty1 := (box.Min.Y - origin.Y) * nInv.Y
	ty2 := (box.Max.Y - origin.Y) * nInv.Y
	tmin = math.Max(tmin, math.Min(ty1, ty2))
	tmax = math.Min(tmax, math.Max(ty1, ty2))

	tz1 := (box.Min.Z - origin.Z) * nInv.Z
	tz2 := (box.Max.Z - origin.Z) * nInv.Z
	tmin = math.Max(tmin, math.Min(tz1, tz2))
	tmax = math.Min(tmax, math.Max(tz1, tz2))

	return tmax >= math.Max(0, tmin) && tmin < t
}

// Traverse walks the hierarchy in pre-order, calling visit for every leaf
// item whose box the ray could still plausibly hit given the best bound
// found so far. visit returns the new upper bound to narrow the search to
// (typically the hit's own t) and whether it counts as a hit at all;
// returning ok=false leaves the bound unchanged, matching how the
// reference keeps searching past a leaf whose object the ray missed.
//
// Internal nodes are visited too (with a nil item, skipped over silently)
// since the flattened array makes no distinction in its walk order --
// only the skip distance differs between a box hit (advance by 1, into
// the first child) and a box miss (advance by skip, past the whole
// subtree).
func (t *Tree) Traverse(r *geom.Ray, tmin, tmax float64, visit func(Bounded) (float64, bool)) {
	_ = tmin // the reference's search has no lower bound, only an upper one.
	best := tmax

	for _, item := range t.unbounded {
		if newT, ok := visit(item); ok {
			best = newT
		}
	}

	if len(t.nodes) == 0 {
		return
	}

	nInv := &lin.V3{X: 1 / r.Dir.X, Y: 1 / r.Dir.Y, Z: 1 / r.Dir.Z}

	i := 0
	for i < len(t.nodes) {
		node := &t.nodes[i]
		if boxHit(node.box, r.Origin, nInv, best) {
			if node.item != nil {
				if newT, ok := visit(node.item); ok {
					best = newT
				}
			}
			i++
		} else {
			i += node.skip
		}
	}
}

// Inside reports whether point p lies inside any item in the hierarchy,
// via the supplied per-item test (since Bounded alone carries no notion
// of point containment).
func (t *Tree) Inside(p *lin.V3, inside func(Bounded) bool) bool {
	for _, item := range t.unbounded {
		if inside(item) {
			return true
		}
	}

	i := 0
	for i < len(t.nodes) {
		node := &t.nodes[i]
		if node.box.Contains(p) {
			if node.item != nil && inside(node.item) {
				return true
			}
			i++
		} else {
			i += node.skip
		}
	}
	return false
}
