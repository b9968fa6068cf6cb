package scene

import (
	"github.com/dimension/dimension/geom"
	"github.com/dimension/dimension/math/lin"
)

// Camera turns a canvas-normalized point into a world-space ray, the way
// dmnsn_camera's ray_fn vtable entry does: x and y each range over
// [0,1], with <0.5,0.5> the center of the frame.
type Camera interface {
	Ray(x, y float64) *geom.Ray
}

// PerspectiveCamera casts rays from a single eye point through a screen
// one unit away, exactly like dmnsn_perspective_camera_ray_fn: the local
// ray originates at the origin and aims at <x-0.5, y-0.5, 1.0> on the
// z=1 plane, then Trans carries the whole frustum into the scene (moving
// the eye, rotating the view direction, and applying any aspect-ratio
// scale baked into the matrix by the scene builder).
type PerspectiveCamera struct {
	Trans *lin.Affine
}

// NewPerspectiveCamera returns a perspective camera whose eye and view
// direction are given entirely by trans, following dmnsn_new_perspective_camera.
func NewPerspectiveCamera(trans *lin.Affine) *PerspectiveCamera {
	return &PerspectiveCamera{Trans: trans}
}

func (c *PerspectiveCamera) Ray(x, y float64) *geom.Ray {
	local := geom.NewRay(&lin.V3{}, &lin.V3{X: x - 0.5, Y: y - 0.5, Z: 1.0})
	return local.Transform(c.Trans)
}

// OrthographicCamera casts parallel rays, all aimed straight down the
// local z axis but originating across the x/y frame instead of
// converging on a single eye point -- there is no direct reference
// source for this camera (the reference renderer is perspective-only),
// so it follows the same local-ray/Trans shape as PerspectiveCamera.
type OrthographicCamera struct {
	Trans *lin.Affine
}

// NewOrthographicCamera returns an orthographic camera using trans to
// place and scale its parallel rays in the scene.
func NewOrthographicCamera(trans *lin.Affine) *OrthographicCamera {
	return &OrthographicCamera{Trans: trans}
}

func (c *OrthographicCamera) Ray(x, y float64) *geom.Ray {
	local := geom.NewRay(&lin.V3{X: x - 0.5, Y: y - 0.5, Z: 0.0}, &lin.V3{Z: 1.0})
	return local.Transform(c.Trans)
}
