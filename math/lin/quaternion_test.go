// Copyright © 2013-2024 Galvanized Logic Inc.

package lin

import (
	"math"
	"testing"
)

func TestSetAaZeroAxisIsIdentity(t *testing.T) {
	q := (&Q{X: 1, Y: 1, Z: 1, W: 1}).SetAa(0, 0, 0, Rad(90))
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("zero-length axis should yield identity, got %+v", q)
	}
}

func TestSetAaIsUnitLength(t *testing.T) {
	for deg := 0; deg <= 360; deg += 15 {
		q := (&Q{}).SetAa(0, 1, 0, Rad(float64(deg)))
		length := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
		if !Aeq(length, 1) {
			t.Errorf("SetAa(%d deg) length = %f, want 1", deg, length)
		}
	}
}

func TestSetAaMatchesHalfAngleFormula(t *testing.T) {
	q := (&Q{}).SetAa(0, 0, 1, Rad(90))
	want := &Q{X: 0, Y: 0, Z: math.Sin(Rad(45)), W: math.Cos(Rad(45))}
	if !Aeq(q.X, want.X) || !Aeq(q.Y, want.Y) || !Aeq(q.Z, want.Z) || !Aeq(q.W, want.W) {
		t.Errorf("SetAa(z, 90deg) = %+v, want %+v", q, want)
	}
}
