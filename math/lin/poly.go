// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// SolvePoly finds the real roots of the polynomial whose coefficients are
// given lowest-degree first (coeffs[0] + coeffs[1]*x + ... + coeffs[degree]
// *x^degree), for degree 0 through 4. It writes the roots found into out
// (which must have room for degree entries) and returns how many were
// found. Complex roots are discarded; a degenerate leading coefficient
// (coeffs[degree] ~= 0) falls through to the next lower degree, matching
// the quadric/quartic solvers used by torus and sphere intersection.
func SolvePoly(coeffs []float64, degree int, out []float64) int {
	for degree > 0 && Aeq(coeffs[degree], 0) {
		degree--
	}
	switch degree {
	case 0:
		return 0
	case 1:
		return solveLinear(coeffs, out)
	case 2:
		return solveQuadratic(coeffs, out)
	case 3:
		return solveCubic(coeffs, out)
	case 4:
		return solveQuartic(coeffs, out)
	default:
		return 0
	}
}

func solveLinear(c []float64, out []float64) int {
	out[0] = -c[0] / c[1]
	return 1
}

// solveQuadratic solves c[0] + c[1]*x + c[2]*x^2 = 0 using the numerically
// stable form that avoids cancellation between -b and sqrt(disc).
func solveQuadratic(c []float64, out []float64) int {
	a, b, cc := c[2], c[1], c[0]
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	var q float64
	if b < 0 {
		q = -0.5 * (b - sq)
	} else {
		q = -0.5 * (b + sq)
	}
	if Aeq(q, 0) {
		out[0] = -b / (2 * a)
		return 1
	}
	out[0] = q / a
	out[1] = cc / q
	return 2
}

// solveCubic solves c[0] + c[1]*x + c[2]*x^2 + c[3]*x^3 = 0 via the
// standard depressed-cubic substitution (Cardano's method).
func solveCubic(c []float64, out []float64) int {
	a3, a2, a1, a0 := c[3], c[2], c[1], c[0]
	a2, a1, a0 = a2/a3, a1/a3, a0/a3

	q := (3*a1 - a2*a2) / 9
	r := (9*a2*a1 - 27*a0 - 2*a2*a2*a2) / 54
	disc := q*q*q + r*r
	shift := a2 / 3

	if disc > 0 {
		s := math.Cbrt(r + math.Sqrt(disc))
		t := math.Cbrt(r - math.Sqrt(disc))
		out[0] = s + t - shift
		return 1
	}
	if Aeq(disc, 0) {
		s := math.Cbrt(r)
		out[0] = 2*s - shift
		out[1] = -s - shift
		return 2
	}
	theta := math.Acos(r / math.Sqrt(-q*q*q))
	sq := 2 * math.Sqrt(-q)
	out[0] = sq*math.Cos(theta/3) - shift
	out[1] = sq*math.Cos((theta+2*PI)/3) - shift
	out[2] = sq*math.Cos((theta+4*PI)/3) - shift
	return 3
}

// solveQuartic solves c[0]..c[4] via Ferrari's method: reduce to a
// depressed quartic, find a real root of the resolvent cubic, then factor
// into two quadratics.
func solveQuartic(c []float64, out []float64) int {
	a4, a3, a2, a1, a0 := c[4], c[3], c[2], c[1], c[0]
	a3, a2, a1, a0 = a3/a4, a2/a4, a1/a4, a0/a4

	// depress: x = y - a3/4
	shift := a3 / 4
	p := a2 - 3*a3*a3/8
	q := a1 - a2*a3/2 + a3*a3*a3/8
	r := a0 - a1*a3/4 + a2*a3*a3/16 - 3*a3*a3*a3*a3/256

	if Aeq(q, 0) {
		// biquadratic: y^4 + p*y^2 + r = 0
		bq := []float64{r, p, 1}
		roots := make([]float64, 2)
		n := solveQuadratic(bq, roots)
		count := 0
		for i := 0; i < n; i++ {
			if roots[i] >= 0 {
				sq := math.Sqrt(roots[i])
				out[count] = sq - shift
				count++
				out[count] = -sq - shift
				count++
			} else if Aeq(roots[i], 0) {
				out[count] = -shift
				count++
			}
		}
		return count
	}

	// resolvent cubic: m^3 + (5/2)p*m^2 + (2p^2-r)*m + (p^3/2 - p*r/2 - q^2/8) = 0
	resolvent := []float64{
		p*p*p/2 - p*r/2 - q*q/8,
		2*p*p - r,
		5 * p / 2,
		1,
	}
	roots := make([]float64, 3)
	n := solveCubic(resolvent, roots)
	m := roots[0]
	for i := 1; i < n; i++ {
		if roots[i] > m {
			m = roots[i]
		}
	}
	if p+2*m < 0 {
		return 0
	}
	sq2m := math.Sqrt(p + 2*m)
	count := 0
	if Aeq(sq2m, 0) {
		// p+2m ~= 0 leaves no linear term in either quadratic factor, so
		// solve the biquadratic y^4 + p*y^2 + r = 0 for y^2 instead of
		// dividing by sq2m.
		rts := make([]float64, 2)
		n2 := solveQuadratic([]float64{r, p, 1}, rts)
		for i := 0; i < n2; i++ {
			if rts[i] >= 0 {
				out[count], out[count+1] = math.Sqrt(rts[i])-shift, -math.Sqrt(rts[i])-shift
				count += 2
			}
		}
		return count
	}

	qOverSq := q / (2 * sq2m)
	quad1 := []float64{p + m - qOverSq, sq2m, 1}
	quad2 := []float64{p + m + qOverSq, -sq2m, 1}

	rts := make([]float64, 2)
	n1 := solveQuadratic(quad1, rts)
	for i := 0; i < n1; i++ {
		out[count] = rts[i] - shift
		count++
	}
	n2 := solveQuadratic(quad2, rts)
	for i := 0; i < n2; i++ {
		out[count] = rts[i] - shift
		count++
	}
	return count
}
