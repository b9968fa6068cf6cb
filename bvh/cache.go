package bvh

import (
	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

// cacheSize is the number of recent hits remembered per cache, matching
// DMNSN_INTERSECTION_CACHE_SIZE.
const cacheSize = 32

// Cache exploits ray coherence across neighboring pixels: a primary ray
// through one pixel very often hits the same object as its neighbor, so
// testing the previous hit first -- before walking the tree at all --
// frequently narrows the search bound enough to prune most of it. Unlike
// the reference's pthread_key_t-indexed thread-local cache, a Cache here
// is just a value a caller owns and threads explicitly: one per render
// worker goroutine, matching how the rest of this renderer passes
// per-thread state as explicit parameters instead of thread-locals.
type Cache struct {
	i       int
	objects [cacheSize]Bounded
}

// Reset rewinds the cache's ring position to the start, called once per
// primary ray the way dmnsn_bvh_intersection's reset flag does -- a
// reflection or shadow ray fired from within the same pixel's shading
// continues consuming the ring instead of resetting it, so its coherence
// with the *previous* secondary ray along the same path is exploited too.
func (c *Cache) Reset() { c.i = 0 }

func (c *Cache) get() Bounded {
	if c.i < cacheSize {
		return c.objects[c.i]
	}
	return nil
}

func (c *Cache) put(item Bounded) {
	if c.i < cacheSize {
		c.objects[c.i] = item
		c.i++
	}
}

// IntersectCached is Traverse plus the cache-hit fast path: it tests the
// object that won the previous call at this ring position before the
// main tree walk (narrowing best immediately on a hit), skips re-testing
// that same object when the main walk reaches it, and then records
// whichever object actually won this call into the same ring slot --
// exactly dmnsn_bvh_intersection's cache dance.
func (t *Tree) IntersectCached(r *geom.Ray, tmax float64, cache *Cache, visit func(Bounded) (float64, bool)) {
	best := tmax

	for _, item := range t.unbounded {
		if newT, ok := visit(item); ok {
			best = newT
		}
	}

	nInv := &lin.V3{X: 1 / r.Dir.X, Y: 1 / r.Dir.Y, Z: 1 / r.Dir.Z}

	cached := cache.get()
	var found Bounded
	if cached != nil && boxHit(cached.AABB(), r.Origin, nInv, best) {
		if newT, ok := visit(cached); ok && newT < best {
			best, found = newT, cached
		}
	}

	i := 0
	for i < len(t.nodes) {
		node := &t.nodes[i]
		if boxHit(node.box, r.Origin, nInv, best) {
			if node.item != nil && node.item != cached {
				if newT, ok := visit(node.item); ok && newT < best {
					best, found = newT, node.item
				}
			}
			i++
		} else {
			i += node.skip
		}
	}

	cache.put(found)
}
