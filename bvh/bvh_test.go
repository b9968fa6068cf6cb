package bvh

import (
	"testing"

	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

// boxItem is a minimal Bounded whose "intersection" is just: does the ray
// hit its box at all, reporting the box's near distance as t.
type boxItem struct {
	box *geom.AABB
}

func (b *boxItem) AABB() *geom.AABB { return b.box }

func boxAt(center float64) *boxItem {
	return &boxItem{box: geom.NewAABB(
		&lin.V3{X: center - 0.5, Y: -0.5, Z: -0.5},
		&lin.V3{X: center + 0.5, Y: 0.5, Z: 0.5},
	)}
}

func visitBox(r *geom.Ray, tmax float64) func(Bounded) (float64, bool) {
	return func(item Bounded) (float64, bool) {
		hit, tmin, t := item.AABB().Intersect(r, 0, tmax)
		if !hit {
			return 0, false
		}
		if tmin < 0 {
			tmin = t
		}
		return tmin, true
	}
}

func TestTraverseFindsNearestBox(t *testing.T) {
	items := []Bounded{boxAt(5), boxAt(10), boxAt(20)}
	tree := Build(items)

	r := geom.NewRay(&lin.V3{X: 0, Y: 0, Z: 0}, &lin.V3{X: 1, Y: 0, Z: 0})

	var found Bounded
	best := Infinity
	tree.Traverse(r, 0, Infinity, func(item Bounded) (float64, bool) {
		newT, ok := visitBox(r, best)(item)
		if ok && newT < best {
			best, found = newT, item
		}
		return best, ok
	})

	if found == nil {
		t.Fatal("expected a hit")
	}
	if found.(*boxItem) != items[0].(*boxItem) {
		t.Error("expected nearest box (at x=5) to win")
	}
}

func TestTraverseMissesWhenRayPointsAway(t *testing.T) {
	items := []Bounded{boxAt(5), boxAt(10)}
	tree := Build(items)

	r := geom.NewRay(&lin.V3{X: 0, Y: 0, Z: 0}, &lin.V3{X: -1, Y: 0, Z: 0})

	hitAny := false
	tree.Traverse(r, 0, Infinity, func(item Bounded) (float64, bool) {
		hit, _, _ := item.AABB().Intersect(r, 0, Infinity)
		if hit {
			hitAny = true
		}
		return 0, false
	})
	if hitAny {
		t.Error("expected no hits for a ray pointing away from every box")
	}
}

func TestIntersectCachedMatchesTraverse(t *testing.T) {
	items := []Bounded{boxAt(5), boxAt(10), boxAt(20)}
	tree := Build(items)
	cache := &Cache{}

	r := geom.NewRay(&lin.V3{X: 0, Y: 0, Z: 0}, &lin.V3{X: 1, Y: 0, Z: 0})

	for i := 0; i < 3; i++ { // repeat to exercise the cache-hit fast path too
		cache.Reset()
		var found Bounded
		tree.IntersectCached(r, Infinity, cache, func(item Bounded) (float64, bool) {
			hit, tmin, tmax := item.AABB().Intersect(r, 0, Infinity)
			if !hit {
				return 0, false
			}
			t := tmin
			if t < 0 {
				t = tmax
			}
			found = item
			return t, true
		})
		if found != items[0] {
			t.Fatalf("iteration %d: expected nearest box to win, got %v", i, found)
		}
	}
}

func TestSplittableItemsFlattenIntoHierarchy(t *testing.T) {
	leaf := boxAt(1)
	union := &splittableItem{children: []Bounded{leaf, boxAt(2)}}
	tree := Build([]Bounded{union})

	box := tree.AABB()
	if box == nil {
		t.Fatal("expected a non-nil overall bounding box")
	}
	if !box.Contains(&lin.V3{X: 1, Y: 0, Z: 0}) {
		t.Error("flattened tree's box should contain the first child's center")
	}
}

type splittableItem struct {
	children []Bounded
}

func (s *splittableItem) AABB() *geom.AABB { return nil }
func (s *splittableItem) Split() ([]Bounded, bool) {
	return s.children, true
}
