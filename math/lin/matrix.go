// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Matrix functions deal with 3x3 matrices expected to be used in CPU-side
// affine transforms (see Affine, which pairs an M3 with a translation).
//
// Row or Column Major order? No matter the convention, the end result of a
// vector point (x, y, z) multiplied with a transform matrix must be:
//   x' = Xx*x + Xy*y + Xz*z
//   y' = Yx*x + Yy*y + Yz*z
//	 z' = Zx*x + Zy*y + Zz*z
// Where x, y, z is the original vector and X, Y, Z are the three axes of the
// coordinate system.
//
// This matrix implementation uses explicitly indexed, Row-Major, matrix
// members as follows:
//          3x3 M3
//	     [Xx, Xy, Xz]  X-Axis
//	     [Yx, Yy, Yz]  Y-Axis
//	     [Zx, Zy, Zz]  Z-Axis
//
// See appendix G of OpenGL Red Book for matrix algorithms. Also see:
// http://steve.hollasch.net/cgindex/math/matrix/column-vec.html

import (
	"log"
)

// M3 is a 3x3 matrix where the matrix elements are individually addressable.
type M3 struct {
	Xx, Xy, Xz float64 // indices 0, 1, 2  [00, 01, 02]  X-Axis
	Yx, Yy, Yz float64 // indices 3, 4, 5  [10, 11, 12]  Y-Axis
	Zx, Zy, Zz float64 // indices 6, 7, 8  [20, 21, 22]  Z-Axis
}

// M3I is the identity matrix.
var M3I = &M3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// Eq (==) returns true if each element in matrix m has the same value as
// the corresponding element in matrix a.
func (m *M3) Eq(a *M3) bool {
	return m.Xx == a.Xx && m.Xy == a.Xy && m.Xz == a.Xz &&
		m.Yx == a.Yx && m.Yy == a.Yy && m.Yz == a.Yz &&
		m.Zx == a.Zx && m.Zy == a.Zy && m.Zz == a.Zz
}

// Aeq (~=) almost-equals returns true if all the elements in matrix m have
// essentially the same value as the corresponding elements in matrix a.
// Used where a direct comparison is unlikely to return true due to floats.
func (m *M3) Aeq(a *M3) bool {
	return Aeq(m.Xx, a.Xx) && Aeq(m.Xy, a.Xy) && Aeq(m.Xz, a.Xz) &&
		Aeq(m.Yx, a.Yx) && Aeq(m.Yy, a.Yy) && Aeq(m.Yz, a.Yz) &&
		Aeq(m.Zx, a.Zx) && Aeq(m.Zy, a.Zy) && Aeq(m.Zz, a.Zz)
}

// SetS (=) explicitly sets each of the 9 matrix values.
// The updated matrix m is returned.
func (m *M3) SetS(Xx, Xy, Xz, Yx, Yy, Yz, Zx, Zy, Zz float64) *M3 {
	m.Xx, m.Xy, m.Xz = Xx, Xy, Xz
	m.Yx, m.Yy, m.Yz = Yx, Yy, Yz
	m.Zx, m.Zy, m.Zz = Zx, Zy, Zz
	return m
}

// Set (=, copy, clone) assigns the element values of a to matrix m.
// The updated matrix m is returned.
func (m *M3) Set(a *M3) *M3 {
	m.Xx, m.Xy, m.Xz = a.Xx, a.Xy, a.Xz
	m.Yx, m.Yy, m.Yz = a.Yx, a.Yy, a.Yz
	m.Zx, m.Zy, m.Zz = a.Zx, a.Zy, a.Zz
	return m
}

// Mult (*) multiplies matrices l and r storing the result in m.
// Matrix m may be used as one or both of the input matrices.
// For example (*=) is
//     m.Mult(m, r)
// The updated matrix m is returned.
func (m *M3) Mult(l, r *M3) *M3 {
	Xx := l.Xx*r.Xx + l.Xy*r.Yx + l.Xz*r.Zx
	Xy := l.Xx*r.Xy + l.Xy*r.Yy + l.Xz*r.Zy
	Xz := l.Xx*r.Xz + l.Xy*r.Yz + l.Xz*r.Zz
	Yx := l.Yx*r.Xx + l.Yy*r.Yx + l.Yz*r.Zx
	Yy := l.Yx*r.Xy + l.Yy*r.Yy + l.Yz*r.Zy
	Yz := l.Yx*r.Xz + l.Yy*r.Yz + l.Yz*r.Zz
	Zx := l.Zx*r.Xx + l.Zy*r.Yx + l.Zz*r.Zx
	Zy := l.Zx*r.Xy + l.Zy*r.Yy + l.Zz*r.Zy
	Zz := l.Zx*r.Xz + l.Zy*r.Yz + l.Zz*r.Zz
	m.Xx, m.Xy, m.Xz = Xx, Xy, Xz
	m.Yx, m.Yy, m.Yz = Yx, Yy, Yz
	m.Zx, m.Zy, m.Zz = Zx, Zy, Zz
	return m
}

// ScaleS updates matrix m to be a scaling matrix using the scale factors
// x, y, z along the respective axis. The updated matrix m is returned.
func (m *M3) ScaleS(x, y, z float64) *M3 {
	m.Xx, m.Xy, m.Xz = x, 0, 0
	m.Yx, m.Yy, m.Yz = 0, y, 0
	m.Zx, m.Zy, m.Zz = 0, 0, z
	return m
}

// SetQ updates matrix m to be the rotation matrix represented by
// quaternion q. See:
//     http://www.j3d.org/matrix_faq/matrfaq_latest.html#Q54
// The updated matrix m is returned.
func (m *M3) SetQ(q *Q) *M3 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	m.Xx, m.Xy, m.Xz = 1-(yy+zz), xy-wz, xz+wy
	m.Yx, m.Yy, m.Yz = xy+wz, 1-(xx+zz), yz-wx
	m.Zx, m.Zy, m.Zz = xz-wy, yz+wx, 1-(xx+yy)
	return m
}

// Det returns the determinant of matrix m.
func (m *M3) Det() float64 {
	return m.Xx*(m.Yy*m.Zz-m.Yz*m.Zy) -
		m.Xy*(m.Yx*m.Zz-m.Yz*m.Zx) +
		m.Xz*(m.Yx*m.Zy-m.Yy*m.Zx)
}

// Cof returns the cofactor of matrix m given by the row and column of the
// removed minor, where row, col are both expected to be one of 0, 1, 2.
func (m *M3) Cof(row, col int) float64 {
	minor := row*10 + col
	switch minor {
	case 00:
		return m.Yy*m.Zz - m.Yz*m.Zy
	case 01:
		return m.Yz*m.Zx - m.Yx*m.Zz // flip to negate.
	case 02:
		return m.Yx*m.Zy - m.Yy*m.Zx
	case 10:
		return m.Xz*m.Zy - m.Xy*m.Zz // flip to negate.
	case 11:
		return m.Xx*m.Zz - m.Xz*m.Zx
	case 12:
		return m.Xy*m.Zx - m.Xx*m.Zy // flip to negate.
	case 20:
		return m.Xy*m.Yz - m.Xz*m.Yy
	case 21:
		return m.Xz*m.Yx - m.Xx*m.Yz // flip to negate.
	case 22:
		return m.Xx*m.Yy - m.Xy*m.Yx
	}
	log.Printf("matrix M3.Cof developer error %d", minor)
	return 0
}

// Adj updates m to be the adjoint (transpose of the cofactor matrix) of
// matrix a. The updated matrix m is returned.
func (m *M3) Adj(a *M3) *M3 {
	xx, xy, xz := a.Cof(0, 0), a.Cof(1, 0), a.Cof(2, 0)
	yx, yy, yz := a.Cof(0, 1), a.Cof(1, 1), a.Cof(2, 1)
	zx, zy, zz := a.Cof(0, 2), a.Cof(1, 2), a.Cof(2, 2)
	m.Xx, m.Xy, m.Xz = xx, xy, xz
	m.Yx, m.Yy, m.Yz = yx, yy, yz
	m.Zx, m.Zy, m.Zz = zx, zy, zz
	return m
}

// Inv updates m to be the inverse of matrix a. The updated matrix m is returned.
// Matrix m is unchanged if a is singular (has a zero determinant).
func (m *M3) Inv(a *M3) *M3 {
	det := a.Det()
	if det != 0 {
		s := 1 / det
		xx, xy, xz := a.Cof(0, 0)*s, a.Cof(1, 0)*s, a.Cof(2, 0)*s
		yx, yy, yz := a.Cof(0, 1)*s, a.Cof(1, 1)*s, a.Cof(2, 1)*s
		zx, zy, zz := a.Cof(0, 2)*s, a.Cof(1, 2)*s, a.Cof(2, 2)*s
		m.Xx, m.Xy, m.Xz = xx, xy, xz
		m.Yx, m.Yy, m.Yz = yx, yy, yz
		m.Zx, m.Zy, m.Zz = zx, zy, zz
	}
	return m
}

// methods above do not allocate memory.
// ============================================================================
// convenience functions for allocating matrices. Nothing else should allocate.

// NewM3 creates a new, all zero, 3x3 matrix.
func NewM3() *M3 { return &M3{} }

// NewM3I creates a new 3x3 identity matrix.
func NewM3I() *M3 { return &M3{Xx: 1, Yy: 1, Zz: 1} }
