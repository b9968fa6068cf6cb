package render

import (
	"math"
	"sync/atomic"

	"github.com/dimension/dimension/bvh"
	"github.com/dimension/dimension/color"
	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
	"github.com/dimension/dimension/scene"
)

// epsilon is the same adaptive-depth-control/trans threshold the
// reference renderer compares color intensities and transmit channels
// against throughout raytrace.c.
const epsilon = lin.Epsilon

// Stats accumulates the reflection/refraction ray counts a single render
// fires, shared by every row worker and read back once the render completes
// for the post-render summary log (see Scene).
type Stats struct {
	Reflections atomic.Uint64
	Refractions atomic.Uint64
}

// state carries everything the recursive shader threads through a chain
// of shoot calls: the current intersection's derived vectors, the
// accumulated shading result, and (via parent) the stack of refractive
// indices a transparency ray has passed through so far -- a direct port
// of dmnsn_raytrace_state.
type state struct {
	parent *state

	sc    *scene.Scene
	cache *bvh.Cache
	stats *Stats

	reclevel int
	ior      float64
	adcValue color.Tcolor

	intersection scene.Intersection
	texture      *scene.Texture
	interior     *scene.Interior

	r         *lin.V3
	pigmentR  *lin.V3
	viewer    *lin.V3
	reflected *lin.V3
	light     *lin.V3

	pigment    color.Tcolor
	diffuse    color.Tcolor
	additional color.Tcolor
}

// Shade fires one primary ray into sc and returns the resulting pixel
// color, resetting cache at the start (a fresh primary ray has no
// coherence with whatever the previous pixel's secondary rays hit).
// stats may be nil, in which case reflection/refraction rays fired while
// shading this ray go uncounted.
func Shade(sc *scene.Scene, ray *geom.Ray, cache *bvh.Cache, stats *Stats) color.Tcolor {
	st := &state{
		sc:       sc,
		cache:    cache,
		stats:    stats,
		reclevel: sc.Reclimit,
		ior:      1.0,
		adcValue: color.White,
	}
	return shoot(st, ray)
}

func intersectScene(sc *scene.Scene, ray *geom.Ray, cache *bvh.Cache) (scene.Intersection, bool) {
	var best scene.Intersection
	found := false
	tree := sc.Tree()
	if tree == nil {
		return scene.Intersection{}, false
	}
	tree.IntersectCached(ray, bvh.Infinity, cache, func(item bvh.Bounded) (float64, bool) {
		obj := item.(*scene.Object)
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

func isBlack(c color.Tcolor) bool {
	return math.Abs(c.R) < epsilon && math.Abs(c.G) < epsilon && math.Abs(c.B) < epsilon
}

// shoot is dmnsn_raytrace_shoot: bail out on recursion/ADC exhaustion,
// otherwise query the BVH and either run the full shading pipeline on a
// hit or fall back to the background pigment on a miss.
func shoot(st *state, ray *geom.Ray) color.Tcolor {
	if st.reclevel == 0 || st.adcValue.Intensity() < st.sc.ADCBailout {
		return color.Black
	}
	st.reclevel--

	if st.reclevel == st.sc.Reclimit-1 {
		st.cache.Reset()
	}

	isect, hit := intersectScene(st.sc, ray, st.cache)
	if !hit {
		return background(st, ray)
	}

	initIntersection(st, isect)
	shadePigment(st)

	if st.sc.Quality.Has(scene.QualityLights) {
		lighting(st)
	}
	if st.sc.Quality.Has(scene.QualityReflection) {
		st.additional = reflection(st).Add(st.additional)
	}
	if st.sc.Quality.Has(scene.QualityTransparency) {
		transparency(st)
	}

	return st.diffuse.Add(st.additional)
}

func background(st *state, ray *geom.Ray) color.Tcolor {
	bg := st.sc.Background
	if bg == nil {
		return color.Black
	}
	if st.sc.Quality.Has(scene.QualityPigment) {
		dir := &lin.V3{}
		dir.Set(ray.Dir)
		return bg.At(dir.Unit())
	}
	return bg.QuickColor()
}

// initIntersection fills in the hit-point-derived vectors state needs
// for shading, matching dmnsn_initialize_raytrace_state.
func initIntersection(st *state, isect scene.Intersection) {
	st.intersection = isect
	st.texture = isect.Texture
	if st.texture == nil {
		st.texture = &scene.Texture{}
	}
	st.interior = isect.Interior

	st.r = isect.Ray.Point(isect.T)
	st.pigmentR = isect.Object.PigmentPoint(st.r)

	viewer := &lin.V3{}
	viewer.Scale(isect.Ray.Dir, -1)
	st.viewer = viewer.Unit()

	reflected := &lin.V3{}
	reflected.Scale(isect.Normal, 2*st.viewer.Dot(isect.Normal))
	reflected.Sub(reflected, st.viewer)
	st.reflected = reflected

	st.pigment = color.Black
	st.diffuse = color.Black
	st.additional = color.Black
}

func shadePigment(st *state) {
	p := st.texture.Pigment
	if p == nil {
		st.pigment = color.Black
	} else if st.sc.Quality.Has(scene.QualityPigment) {
		st.pigment = p.At(st.pigmentR)
	} else {
		st.pigment = p.QuickColor()
	}
	st.diffuse = st.pigment
}

// lightRay computes one light's contribution at the current hit point,
// walking through any transparent shadow casters in the way exactly like
// dmnsn_raytrace_light_ray.
func lightRay(st *state, light scene.Light) color.Tcolor {
	dir := light.Direction(st.r)
	shadowRay := geom.NewRay(st.r, dir)

	lightDir := &lin.V3{}
	lightDir.Set(dir)
	st.light = lightDir.Unit()

	shadowRay = shadowRay.AddEpsilon()

	if shadowRay.Dir.Dot(st.intersection.Normal)*st.viewer.Dot(st.intersection.Normal) < 0.0 {
		return color.Black
	}

	lcolor := light.Illumination(st.r)

	reclevel := st.reclevel
	for reclevel > 0 && lcolor.Intensity() >= st.sc.ADCBailout {
		reclevel--

		caster, cast := intersectScene(st.sc, shadowRay, st.cache)
		if !cast || !light.Shadow(caster.T) {
			return lcolor
		}

		if st.sc.Quality.Has(scene.QualityTransparency) {
			shadowState := *st
			initIntersection(&shadowState, caster)
			shadePigment(&shadowState)

			if shadowState.pigment.Trans >= epsilon {
				if st.sc.Quality.Has(scene.QualityReflection) && shadowState.texture.Finish.Reflection != nil {
					reflected := shadowState.texture.Finish.Reflection.Apply(
						lcolor, shadowState.pigment, shadowState.reflected, shadowState.intersection.Normal)
					lcolor = lcolor.Sub(reflected)
				}

				lcolor = color.FilterLight(lcolor, shadowState.pigment)

				newOrigin := shadowRay.Point(caster.T)
				newDir := light.Direction(newOrigin)
				shadowRay = geom.NewRay(newOrigin, newDir).AddEpsilon()
				continue
			}
		}
		break
	}

	return color.Black
}

// lighting is dmnsn_raytrace_lighting: the ambient term plus every
// light's diffuse/specular contribution, each attenuated first by
// whatever fraction of it the surface's own reflection finish steals.
func lighting(st *state) {
	st.diffuse = color.Black

	finish := &st.texture.Finish
	if finish.Ambient != nil {
		st.diffuse = finish.Ambient.Apply(st.pigment)
	}

	for _, light := range st.sc.Lights {
		lcolor := lightRay(st, light)
		if isBlack(lcolor) {
			continue
		}

		if !st.sc.Quality.Has(scene.QualityFinish) {
			d := st.pigment
			d.Trans = 0
			d.Filter = 0
			st.diffuse = d
			continue
		}

		if st.sc.Quality.Has(scene.QualityReflection) && finish.Reflection != nil {
			reflected := finish.Reflection.Apply(lcolor, st.pigment, st.reflected, st.intersection.Normal)
			lcolor = lcolor.Sub(reflected)
		}

		diffuse := color.Black
		if finish.Diffuse != nil {
			diffuse = finish.Diffuse.Apply(lcolor, st.pigment, st.light, st.intersection.Normal)
		}
		specular := color.Black
		if finish.Specular != nil {
			specular = finish.Specular.Apply(lcolor, st.pigment, st.light, st.intersection.Normal, st.viewer)
		}

		st.diffuse = diffuse.Add(st.diffuse)
		st.additional = specular.Add(st.additional)
	}
}

// reflection shoots the recursive reflected ray and attenuates both the
// outgoing color and the recursion's own ADC budget by the surface's
// reflection finish, matching dmnsn_raytrace_reflection.
func reflection(st *state) color.Tcolor {
	ref := st.texture.Finish.Reflection
	if ref == nil {
		return color.Black
	}

	reflRay := geom.NewRay(st.r, st.reflected).AddEpsilon()

	recursive := *st
	recursive.adcValue = ref.Apply(st.adcValue, st.pigment, st.reflected, st.intersection.Normal)

	if st.stats != nil {
		st.stats.Reflections.Add(1)
	}
	rec := shoot(&recursive, reflRay)
	reflected := ref.Apply(rec, st.pigment, st.reflected, st.intersection.Normal)
	reflected.Trans = 0
	reflected.Filter = 0
	return reflected
}

// transparency shoots the recursive refracted ray, threading the stack
// of refractive indices through recursive.parent so a later exit ray
// knows what medium it's returning to, matching
// dmnsn_raytrace_transparency including its total-internal-reflection
// early return. Must run after lighting/reflection have set st.diffuse.
func transparency(st *state) {
	if st.pigment.Trans < epsilon {
		return
	}

	transRay := geom.NewRay(st.r, st.intersection.Ray.Dir).AddEpsilon()

	r := &lin.V3{}
	r.Set(transRay.Dir)
	r = r.Unit()
	n := st.intersection.Normal

	recursive := *st

	if r.Dot(n) < 0.0 {
		recursive.ior = st.interior.IOR
		recursive.parent = st
	} else if st.parent != nil {
		recursive.ior = st.parent.ior
		recursive.parent = st.parent.parent
	} else {
		recursive.ior = 1.0
		recursive.parent = nil
	}

	iorr := st.ior / recursive.ior
	c1 := -r.Dot(n)
	c2 := 1.0 - iorr*iorr*(1.0-c1*c1)
	if c2 <= 0.0 {
		return // total internal reflection
	}
	c2 = math.Sqrt(c2)

	a := &lin.V3{}
	a.Scale(r, iorr)
	b := &lin.V3{}
	if c1 >= 0.0 {
		b.Scale(n, iorr*c1-c2)
	} else {
		b.Scale(n, iorr*c1+c2)
	}
	transDir := &lin.V3{}
	transDir.Add(a, b)
	transRay = geom.NewRay(transRay.Origin, transDir)

	recursive.adcValue = color.FilterLight(st.adcValue, st.pigment)

	if st.stats != nil {
		st.stats.Refractions.Add(1)
	}
	rec := shoot(&recursive, transRay)
	filtered := color.FilterLight(rec, st.pigment)

	if st.sc.Quality.Has(scene.QualityReflection) && st.texture.Finish.Reflection != nil {
		reflected := st.texture.Finish.Reflection.Apply(filtered, st.pigment, st.reflected, st.intersection.Normal)
		filtered = filtered.Sub(reflected)
	}

	st.diffuse.Filter = st.pigment.Filter
	st.diffuse.Trans = st.pigment.Trans
	st.diffuse = color.ApplyTransparency(filtered, st.diffuse)
}
