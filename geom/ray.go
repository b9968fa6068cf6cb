// Package geom provides the ray and axis-aligned bounding box primitives
// shared by the acceleration structure and the object intersection tests.
// It follows the allocation discipline of vu/math/lin: value-ish structs,
// pointer receivers, and no hidden allocation on the hot intersection path.
package geom

import "github.com/dimension/dimension/math/lin"

// Ray is a parametric line x(t) = Origin + t*Dir used for every
// intersection test in the renderer, from primary rays through shadow
// feelers and reflection/refraction rays.
type Ray struct {
	Origin *lin.V3
	Dir    *lin.V3
}

// NewRay returns a ray with the given origin and direction. The direction
// is not required to be a unit vector: object intersection callbacks return
// a parametric t in the units of Dir's own length, matching the reference
// renderer's convention of leaving rays unnormalized between reflection
// bounces to avoid redundant sqrt calls.
func NewRay(origin, dir *lin.V3) *Ray {
	return &Ray{Origin: origin, Dir: dir}
}

// Point returns the point at parameter t along the ray.
func (r *Ray) Point(t float64) *lin.V3 {
	p := &lin.V3{}
	p.Scale(r.Dir, t)
	p.Add(p, r.Origin)
	return p
}

// AddEpsilon nudges the ray's origin forward by a relative amount along its
// own direction, used after a CSG or shadow-feeler test walks to a new
// candidate t so the next intersection test isn't immediately re-fooled by
// the surface it just left.
func (r *Ray) AddEpsilon() *Ray {
	mag := r.Dir.Len()
	if mag < lin.Epsilon {
		mag = 1
	}
	shift := &lin.V3{}
	shift.Scale(r.Dir, lin.Epsilon/mag)
	origin := &lin.V3{}
	origin.Add(r.Origin, shift)
	return &Ray{Origin: origin, Dir: r.Dir}
}

// Transform returns the ray obtained by applying affine f to the ray's
// origin and direction (direction only via the linear part, no
// translation).
func (r *Ray) Transform(f *lin.Affine) *Ray {
	return &Ray{Origin: f.Point(r.Origin), Dir: f.Dir(r.Dir)}
}
