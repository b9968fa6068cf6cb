// SPDX-FileCopyrightText : © 2014-2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lin

import "testing"

// While the functions below are not complicated, they are foundational such that it is
// better to test each one of them then have the bugs discovered later from other code.
// Where applicable, check that the output vector can also be used as one or both
// of the input vectors.

func TestSetV3(t *testing.T) {
	v, a := &V3{}, &V3{1, 2, 3}
	if !v.Set(a).Eq(a) {
		t.Errorf("%s is not the same as %s", v.Dump(), a.Dump())
	}
}

func TestMinimumV3(t *testing.T) {
	v, a, want := &V3{1, -2, 3}, &V3{-1, 2, -3}, &V3{-1, -2, -3}
	if !v.Min(v, a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestMaxiumumV3(t *testing.T) {
	v, a, want := &V3{1, -2, 3}, &V3{-1, 2, -3}, &V3{1, 2, 3}
	if !v.Max(v, a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestNegV3(t *testing.T) {
	v, a, want := &V3{}, &V3{1, -2, 3}, &V3{-1, 2, -3}
	if !v.Neg(a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestAddV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{1, 2, 3}, &V3{4, 5, 6}, &V3{5, 7, 9}
	if !v.Add(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestSubV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{5, 7, 9}, &V3{4, 5, 6}, &V3{1, 2, 3}
	if !v.Sub(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestScaleV3(t *testing.T) {
	v, a, want := &V3{}, &V3{1, 2, 3}, &V3{2, 4, 6}
	if !v.Scale(a, 2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestDivV3(t *testing.T) {
	v, want := &V3{2, 4, 6}, &V3{1, 2, 3}
	if !v.Div(2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
	v, unchanged := &V3{1, 2, 3}, &V3{1, 2, 3}
	if !v.Div(0).Eq(unchanged) {
		t.Errorf("Div by zero should leave v unchanged, got %s", v.Dump())
	}
}

func TestDotV3(t *testing.T) {
	v, a := &V3{1, 2, 3}, &V3{4, 5, 6}
	if v.Dot(a) != 32 {
		t.Errorf("Dot = %f, want 32", v.Dot(a))
	}
}

func TestLenV3(t *testing.T) {
	v := &V3{3, 4, 0}
	if v.Len() != 5 {
		t.Errorf("Len = %f, want 5", v.Len())
	}
}

func TestUnitV3(t *testing.T) {
	v := &V3{3, 4, 0}
	if !Aeq(v.Unit().Len(), 1) {
		t.Errorf("Unit length = %f, want 1", v.Len())
	}
	zero := &V3{}
	if !zero.Unit().Eq(&V3{}) {
		t.Error("Unit of the zero vector should stay zero")
	}
}

func TestCrossV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{1, 0, 0}, &V3{0, 1, 0}, &V3{0, 0, 1}
	if !v.Cross(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestMultMv(t *testing.T) {
	v, m, cv := &V3{}, NewM3I(), &V3{1, 2, 3}
	if !v.MultMv(m, cv).Eq(cv) {
		t.Errorf("identity matrix should leave vector unchanged, got %s", v.Dump())
	}
}
