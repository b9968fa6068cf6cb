// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Affine is a 3x4 affine transform: a 3x3 linear part (rotation, scale,
// shear) plus a translation. It carries the full linear map a
// constructive-solid renderer needs to squash a unit sphere into an
// ellipsoid or shear a box.
//
// The implicit fourth row is always (0, 0, 0, 1), so Affine never
// represents a projective transform.
type Affine struct {
	Linear *M3 // rotation/scale/shear.
	Move   *V3 // translation.
}

// NewAffineI returns the identity affine transform.
func NewAffineI() *Affine {
	return &Affine{Linear: NewM3I(), Move: &V3{}}
}

// Set (=, copy, clone) assigns the element values of a to affine f.
// The updated affine f is returned.
func (f *Affine) Set(a *Affine) *Affine {
	f.Linear.Set(a.Linear)
	f.Move.Set(a.Move)
	return f
}

// SetI resets affine f to the identity transform.
func (f *Affine) SetI() *Affine {
	f.Linear.Set(NewM3I())
	f.Move.SetS(0, 0, 0)
	return f
}

// SetTranslate sets f to a pure translation by (x, y, z).
func (f *Affine) SetTranslate(x, y, z float64) *Affine {
	f.Linear.Set(NewM3I())
	f.Move.SetS(x, y, z)
	return f
}

// SetScale sets f to a pure, possibly non-uniform, scale.
func (f *Affine) SetScale(x, y, z float64) *Affine {
	f.Linear.ScaleS(x, y, z)
	f.Move.SetS(0, 0, 0)
	return f
}

// SetRotate sets f to a pure rotation given by the unit quaternion q, for
// callers (camera placement, object orientation) that find axis-angle or
// quaternion input more natural than filling in a rotation matrix by hand.
func (f *Affine) SetRotate(q *Q) *Affine {
	f.Linear.SetQ(q)
	f.Move.SetS(0, 0, 0)
	return f
}

// Mult (*) sets f = a*b, the affine transform that applies b first, then a.
// f may alias a or b.
func (f *Affine) Mult(a, b *Affine) *Affine {
	linear := NewM3().Mult(a.Linear, b.Linear)
	move := &V3{}
	move.MultMv(a.Linear, b.Move)
	move.Add(move, a.Move)
	f.Linear.Set(linear)
	f.Move.Set(move)
	return f
}

// Point applies f to the point p, returning a new point.
func (f *Affine) Point(p *V3) *V3 {
	out := &V3{}
	out.MultMv(f.Linear, p)
	out.Add(out, f.Move)
	return out
}

// Dir applies only the linear part of f to the direction v, returning a new
// vector. Translation never affects directions.
func (f *Affine) Dir(v *V3) *V3 {
	out := &V3{}
	out.MultMv(f.Linear, v)
	return out
}

// Normal transforms a surface normal by f: normals use the inverse-transpose
// of the linear part, not the linear part itself, so that non-uniform scale
// and shear don't tilt the normal off the surface.
//
// inv should be the Inv() of this same affine (callers that already have
// it, as the precompute step does, pass it in to avoid recomputing it per
// normal).
func (inv *Affine) Normal(v *V3) *V3 {
	out := &V3{}
	// inverse-transpose: row i of transpose(inv.Linear) dotted with v is
	// column i of inv.Linear dotted with v.
	out.X = inv.Linear.Xx*v.X + inv.Linear.Yx*v.Y + inv.Linear.Zx*v.Z
	out.Y = inv.Linear.Xy*v.X + inv.Linear.Yy*v.Y + inv.Linear.Zy*v.Z
	out.Z = inv.Linear.Xz*v.X + inv.Linear.Yz*v.Y + inv.Linear.Zz*v.Z
	return out
}

// Inv returns the inverse of affine f.
//
// Because the implicit bottom row of a 4x4 affine matrix is always
// (0, 0, 0, 1), the classic 2x2 block-partition inverse
//
//	[P Q]^-1   [P^-1        -P^-1*Q*S^-1]
//	[R S]    = [0            S^-1       ]   (R=0, S=1)
//
// collapses to inverting the 3x3 linear block P and right-multiplying the
// negated translation by that inverse. M3.Inv already performs the
// cofactor-expansion the reference implementation falls back to when the
// fast 2x2-partition path is numerically unsafe, so that single inversion
// covers both paths here. A singular linear part has no inverse; Inv then
// returns the identity transform.
func (f *Affine) Inv() *Affine {
	if f.Linear.Det() == 0 {
		return NewAffineI()
	}
	linv := NewM3().Inv(f.Linear)
	move := &V3{}
	move.MultMv(linv, f.Move)
	move.Neg(move)
	return &Affine{Linear: linv, Move: move}
}

// Eq (==) returns true if f and a have identical elements.
func (f *Affine) Eq(a *Affine) bool { return f.Linear.Eq(a.Linear) && f.Move.Eq(a.Move) }

// Aeq (~=) almost-equals, see V3.Aeq.
func (f *Affine) Aeq(a *Affine) bool { return f.Linear.Aeq(a.Linear) && f.Move.Aeq(a.Move) }
